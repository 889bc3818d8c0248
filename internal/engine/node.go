package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform change bits, ORed into Node.ChangedFlags so downstream
// consumers (lighting, packed uniform refresh) know what to re-read.
const (
	TransformPosition uint32 = 1 << iota
	TransformRotation
	TransformScale
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Node is one element of the transform hierarchy. Scene entities
// (models, lights, cameras, UI elements) reference a Node; the scene
// itself never owns the hierarchy.
type Node struct {
	Name         string
	Transform    Transform
	Active       bool
	Layer        uint32
	ChangedFlags uint32
	Parent       *Node
	Children     []*Node
	components   []Component
}

func NewNode(name string) *Node {
	return &Node{
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*Node, 0),
	}
}

func (n *Node) AddComponent(c Component) {
	c.SetNode(n)
	n.components = append(n.components, c)
}

// GetComponent returns the first component of the requested type.
func GetComponent[T Component](n *Node) T {
	var zero T
	for _, c := range n.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (n *Node) Components() []Component {
	return n.components
}

func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetChanged marks transform bits dirty; cleared by ClearChanged once
// consumers have refreshed.
func (n *Node) SetChanged(bits uint32) {
	n.ChangedFlags |= bits
}

func (n *Node) ClearChanged() {
	n.ChangedFlags = 0
}

func (n *Node) WorldPosition() rl.Vector3 {
	if n.Parent == nil {
		return n.Transform.Position
	}
	parentPos := n.Parent.WorldPosition()
	parentRot := n.Parent.WorldRotation()
	parentScale := n.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: n.Transform.Position.X * parentScale.X,
		Y: n.Transform.Position.Y * parentScale.Y,
		Z: n.Transform.Position.Z * parentScale.Z,
	}

	// Rotate by parent rotation (X then Y then Z, same convention as WorldMatrix)
	rotX := rl.MatrixRotateX(parentRot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(parentRot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(parentRot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	rotated := rl.Vector3Transform(scaled, rotMatrix)
	return rl.Vector3Add(parentPos, rotated)
}

func (n *Node) WorldRotation() rl.Vector3 {
	if n.Parent == nil {
		return n.Transform.Rotation
	}
	return rl.Vector3Add(n.Parent.WorldRotation(), n.Transform.Rotation)
}

func (n *Node) WorldScale() rl.Vector3 {
	if n.Parent == nil {
		return n.Transform.Scale
	}
	ps := n.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * n.Transform.Scale.X,
		Y: ps.Y * n.Transform.Scale.Y,
		Z: ps.Z * n.Transform.Scale.Z,
	}
}

// WorldMatrix composes the node's world transform as scale, then
// rotation X/Y/Z, then translation.
func (n *Node) WorldMatrix() rl.Matrix {
	worldPos := n.WorldPosition()
	worldRot := n.WorldRotation()
	worldScale := n.WorldScale()

	scaleMatrix := rl.MatrixScale(worldScale.X, worldScale.Y, worldScale.Z)
	rotX := rl.MatrixRotateX(worldRot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(worldRot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(worldRot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	transMatrix := rl.MatrixTranslate(worldPos.X, worldPos.Y, worldPos.Z)

	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}
