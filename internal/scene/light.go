package scene

import (
	"scene3d/internal/engine"
	"scene3d/internal/pool"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// LightRecord is the packed per-light uniform mirrored for the
// renderer. Sphere and spot lights each own a record slot; the scene's
// packed light arrays list those slots in logical-list order.
type LightRecord struct {
	Position  rl.Vector3
	Direction rl.Vector3
	Color     rl.Vector3
	Intensity float32
	Range     float32
	Size      float32
	InnerCone float32 // stored as cos(angle in radians)
	OuterCone float32 // stored as cos(angle in radians)
}

func colorToFloat(c rl.Color) rl.Vector3 {
	return rl.Vector3{
		X: float32(c.R) / 255.0,
		Y: float32(c.G) / 255.0,
		Z: float32(c.B) / 255.0,
	}
}

// forwardFromNode rotates the -Z forward axis by the node's world
// rotation, giving the light's facing direction.
func forwardFromNode(n *engine.Node) rl.Vector3 {
	rot := n.WorldRotation()
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
	return rl.Vector3Normalize(rl.Vector3Transform(rl.Vector3{Z: -1}, rotMatrix))
}

// DirectionalLight lights the whole scene from a direction, like the
// sun. Directional lights are tracked on the logical list only; the one
// designated as main is published through the scene record.
type DirectionalLight struct {
	Node      *engine.Node
	Direction rl.Vector3
	Color     rl.Color
	Intensity float32

	scene *RenderScene
}

func NewDirectionalLight() *DirectionalLight {
	return &DirectionalLight{
		Direction: rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
		Color:     rl.White,
		Intensity: 1.0,
	}
}

func (l *DirectionalLight) AttachToScene(s *RenderScene) {
	l.scene = s
}

func (l *DirectionalLight) DetachFromScene() {
	l.scene = nil
}

// Update refreshes the direction from the node when its rotation
// changed since the last frame.
func (l *DirectionalLight) Update() {
	if l.Node == nil {
		return
	}
	if l.Node.ChangedFlags&engine.TransformRotation != 0 {
		l.Direction = forwardFromNode(l.Node)
	}
}

// SphereLight is an omnidirectional light with a position, an emitter
// size and a falloff range. It owns a slot in the scene's packed light
// store while attached.
type SphereLight struct {
	Node      *engine.Node
	Color     rl.Color
	Intensity float32
	Size      float32
	Range     float32

	handle pool.Handle
	scene  *RenderScene
}

func NewSphereLight() *SphereLight {
	return &SphereLight{
		Color:     rl.White,
		Intensity: 1.0,
		Size:      0.15,
		Range:     10.0,
		handle:    pool.Nil,
	}
}

func (l *SphereLight) AttachToScene(s *RenderScene) {
	l.scene = s
	l.handle = s.lightRecords.Alloc()
}

func (l *SphereLight) DetachFromScene() {
	if l.scene != nil {
		l.scene.lightRecords.Free(l.handle)
	}
	l.handle = pool.Nil
	l.scene = nil
}

// Handle returns the light's packed record slot, Nil when detached.
func (l *SphereLight) Handle() pool.Handle {
	return l.handle
}

// Update refreshes the packed record from the node and light fields.
// Each light is refreshed independently of every other light.
func (l *SphereLight) Update() {
	if l.scene == nil {
		return
	}
	rec := LightRecord{
		Color:     colorToFloat(l.Color),
		Intensity: l.Intensity,
		Size:      l.Size,
		Range:     l.Range,
	}
	if l.Node != nil {
		rec.Position = l.Node.WorldPosition()
	}
	l.scene.lightRecords.Set(l.handle, rec)
}

// SpotLight is a sphere light constrained to a cone along the node's
// facing direction.
type SpotLight struct {
	Node      *engine.Node
	Color     rl.Color
	Intensity float32
	Size      float32
	Range     float32
	Direction rl.Vector3
	InnerCone float32 // cos(inner angle)
	OuterCone float32 // cos(outer angle)

	handle pool.Handle
	scene  *RenderScene
}

func NewSpotLight() *SpotLight {
	return &SpotLight{
		Color:     rl.White,
		Intensity: 1.0,
		Size:      0.15,
		Range:     10.0,
		Direction: rl.Vector3{Z: -1},
		InnerCone: 0.97, // ~14 degrees
		OuterCone: 0.90, // ~26 degrees
		handle:    pool.Nil,
	}
}

func (l *SpotLight) AttachToScene(s *RenderScene) {
	l.scene = s
	l.handle = s.lightRecords.Alloc()
}

func (l *SpotLight) DetachFromScene() {
	if l.scene != nil {
		l.scene.lightRecords.Free(l.handle)
	}
	l.handle = pool.Nil
	l.scene = nil
}

func (l *SpotLight) Handle() pool.Handle {
	return l.handle
}

func (l *SpotLight) Update() {
	if l.scene == nil {
		return
	}
	if l.Node != nil && l.Node.ChangedFlags&engine.TransformRotation != 0 {
		l.Direction = forwardFromNode(l.Node)
	}
	rec := LightRecord{
		Direction: l.Direction,
		Color:     colorToFloat(l.Color),
		Intensity: l.Intensity,
		Size:      l.Size,
		Range:     l.Range,
		InnerCone: l.InnerCone,
		OuterCone: l.OuterCone,
	}
	if l.Node != nil {
		rec.Position = l.Node.WorldPosition()
	}
	l.scene.lightRecords.Set(l.handle, rec)
}
