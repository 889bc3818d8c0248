package ui

import (
	"testing"

	"scene3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func buildCanvas(rect rl.Rectangle) (*engine.Node, *Canvas) {
	root := engine.NewNode("canvas")
	c := NewCanvas(rect)
	root.AddComponent(c)
	return root, c
}

func TestPointAnchorCentersElement(t *testing.T) {
	root, c := buildCanvas(rl.Rectangle{Width: 800, Height: 600})

	n := engine.NewNode("element")
	ut := NewUITransform()
	ut.SizeDelta = rl.Vector2{X: 200, Y: 100}
	n.AddComponent(ut)
	root.AddChild(n)

	c.Layout()

	r := ut.Rect()
	if r.X != 300 || r.Y != 250 {
		t.Errorf("Expected rect at (300,250), got (%f,%f)", r.X, r.Y)
	}
	if r.Width != 200 || r.Height != 100 {
		t.Errorf("Expected size 200x100, got %fx%f", r.Width, r.Height)
	}
}

func TestStretchedAnchorsFillParent(t *testing.T) {
	root, c := buildCanvas(rl.Rectangle{Width: 800, Height: 600})

	n := engine.NewNode("element")
	ut := NewUITransform()
	ut.SetAnchorPreset(AnchorStretchAll)
	ut.SizeDelta = rl.Vector2{}
	n.AddComponent(ut)
	root.AddChild(n)

	c.Layout()

	r := ut.Rect()
	if r.Width != 800 || r.Height != 600 {
		t.Errorf("Expected stretched element 800x600, got %fx%f", r.Width, r.Height)
	}
}

func TestLayoutSkipsInactiveSubtree(t *testing.T) {
	root, c := buildCanvas(rl.Rectangle{Width: 800, Height: 600})

	n := engine.NewNode("element")
	n.Active = false
	ut := NewUITransform()
	n.AddComponent(ut)
	root.AddChild(n)

	c.Layout()

	if ut.Rect().Width != 0 {
		t.Error("Inactive element should keep its zero rect")
	}
}

func TestComputeAABBLiftsRectToNodePlane(t *testing.T) {
	root, c := buildCanvas(rl.Rectangle{Width: 800, Height: 600})

	n := engine.NewNode("element")
	n.Transform.Position.Z = 4
	ut := NewUITransform()
	n.AddComponent(ut)
	root.AddChild(n)
	c.Layout()

	var box rl.BoundingBox
	ut.ComputeAABB(&box)
	if box.Min.Z != 4 || box.Max.Z != 4 {
		t.Errorf("Expected flat box at z=4, got %f..%f", box.Min.Z, box.Max.Z)
	}
	if box.Max.X-box.Min.X != ut.Rect().Width {
		t.Error("Box width should match the computed rect")
	}
}

func TestContainsPoint(t *testing.T) {
	root, c := buildCanvas(rl.Rectangle{Width: 800, Height: 600})

	n := engine.NewNode("element")
	ut := NewUITransform()
	n.AddComponent(ut)
	root.AddChild(n)
	c.Layout()

	if !ut.ContainsPoint(rl.Vector2{X: 400, Y: 300}) {
		t.Error("Center point should be inside the centered element")
	}
	if ut.ContainsPoint(rl.Vector2{X: 10, Y: 10}) {
		t.Error("Far corner should be outside the centered element")
	}
}
