package ui

import (
	"scene3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Anchor presets for common UI layouts (like Unity)
type AnchorPreset int

const (
	AnchorTopLeft AnchorPreset = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorMiddleCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
	AnchorStretchAll
)

// UITransform positions UI elements with anchoring support. Anchors
// define position relative to the parent rect, offsets define the
// actual size/position relative to those anchors. It also exposes the
// element's bounding box for ray picking.
type UITransform struct {
	engine.BaseComponent

	// Anchor points (0-1 range, relative to parent)
	AnchorMin rl.Vector2
	AnchorMax rl.Vector2

	// Pivot point within the element (0-1 range)
	Pivot rl.Vector2

	// Position offset from anchor (point anchor) or inset from edges
	// (stretched anchor)
	AnchoredPosition rl.Vector2

	// Size of the element when anchors are a single point
	SizeDelta rl.Vector2

	// Computed rect in canvas space, refreshed by Canvas.Layout
	rect rl.Rectangle
}

func NewUITransform() *UITransform {
	return &UITransform{
		AnchorMin:        rl.Vector2{X: 0.5, Y: 0.5},
		AnchorMax:        rl.Vector2{X: 0.5, Y: 0.5},
		Pivot:            rl.Vector2{X: 0.5, Y: 0.5},
		AnchoredPosition: rl.Vector2{X: 0, Y: 0},
		SizeDelta:        rl.Vector2{X: 100, Y: 30},
	}
}

// SetAnchorPreset configures anchors using common presets
func (ut *UITransform) SetAnchorPreset(preset AnchorPreset) {
	switch preset {
	case AnchorTopLeft:
		ut.setAnchors(0, 0)
	case AnchorTopCenter:
		ut.setAnchors(0.5, 0)
	case AnchorTopRight:
		ut.setAnchors(1, 0)
	case AnchorMiddleLeft:
		ut.setAnchors(0, 0.5)
	case AnchorMiddleCenter:
		ut.setAnchors(0.5, 0.5)
	case AnchorMiddleRight:
		ut.setAnchors(1, 0.5)
	case AnchorBottomLeft:
		ut.setAnchors(0, 1)
	case AnchorBottomCenter:
		ut.setAnchors(0.5, 1)
	case AnchorBottomRight:
		ut.setAnchors(1, 1)
	case AnchorStretchAll:
		ut.AnchorMin = rl.Vector2{X: 0, Y: 0}
		ut.AnchorMax = rl.Vector2{X: 1, Y: 1}
		ut.Pivot = rl.Vector2{X: 0.5, Y: 0.5}
	}
}

func (ut *UITransform) setAnchors(x, y float32) {
	ut.AnchorMin = rl.Vector2{X: x, Y: y}
	ut.AnchorMax = rl.Vector2{X: x, Y: y}
	ut.Pivot = rl.Vector2{X: x, Y: y}
}

// Rect returns the computed canvas-space rectangle
func (ut *UITransform) Rect() rl.Rectangle {
	return ut.rect
}

// CalculateRect computes the element rect based on parent rect and anchors
func (ut *UITransform) CalculateRect(parentRect rl.Rectangle) {
	anchorMinX := parentRect.X + parentRect.Width*ut.AnchorMin.X
	anchorMinY := parentRect.Y + parentRect.Height*ut.AnchorMin.Y
	anchorMaxX := parentRect.X + parentRect.Width*ut.AnchorMax.X
	anchorMaxY := parentRect.Y + parentRect.Height*ut.AnchorMax.Y

	var x, y, width, height float32

	if ut.AnchorMin.X == ut.AnchorMax.X && ut.AnchorMin.Y == ut.AnchorMax.Y {
		// Point anchor - position relative to anchor point
		width = ut.SizeDelta.X
		height = ut.SizeDelta.Y
		x = anchorMinX + ut.AnchoredPosition.X - width*ut.Pivot.X
		y = anchorMinY + ut.AnchoredPosition.Y - height*ut.Pivot.Y
	} else {
		// Stretched anchors - SizeDelta acts as insets
		x = anchorMinX + ut.AnchoredPosition.X
		y = anchorMinY + ut.AnchoredPosition.Y
		width = (anchorMaxX - anchorMinX) + ut.SizeDelta.X
		height = (anchorMaxY - anchorMinY) + ut.SizeDelta.Y
	}

	ut.rect = rl.Rectangle{X: x, Y: y, Width: width, Height: height}
}

// ComputeAABB fills out with the element's bounding box: the computed
// rect lifted onto the owning node's world XY plane. UI boxes are
// already tight, so ray queries test them directly with no narrow phase.
func (ut *UITransform) ComputeAABB(out *rl.BoundingBox) {
	z := float32(0)
	if n := ut.GetNode(); n != nil {
		z = n.WorldPosition().Z
	}
	out.Min = rl.Vector3{X: ut.rect.X, Y: ut.rect.Y, Z: z}
	out.Max = rl.Vector3{X: ut.rect.X + ut.rect.Width, Y: ut.rect.Y + ut.rect.Height, Z: z}
}

// ContainsPoint checks if a canvas-space point is inside this rect
func (ut *UITransform) ContainsPoint(point rl.Vector2) bool {
	return point.X >= ut.rect.X && point.X <= ut.rect.X+ut.rect.Width &&
		point.Y >= ut.rect.Y && point.Y <= ut.rect.Y+ut.rect.Height
}
