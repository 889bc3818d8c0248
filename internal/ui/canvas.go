package ui

import (
	"scene3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Canvas is the root container for UI elements. Attach to a node and
// add UI element children; the canvas recalculates their rects from a
// root rect so ray queries and drawing see consistent bounds.
type Canvas struct {
	engine.BaseComponent

	SortOrder int // Higher values render on top

	// Root rect the layout is resolved against, typically the screen
	Rect rl.Rectangle
}

func NewCanvas(rect rl.Rectangle) *Canvas {
	return &Canvas{Rect: rect}
}

// Layout recomputes the rects of every active element under the canvas.
func (c *Canvas) Layout() {
	n := c.GetNode()
	if n == nil {
		return
	}
	c.layoutElement(n, c.Rect)
}

// layoutElement recursively resolves a UI element and its children
func (c *Canvas) layoutElement(n *engine.Node, parentRect rl.Rectangle) {
	if n == nil || !n.Active {
		return
	}

	currentRect := parentRect
	if ut := engine.GetComponent[*UITransform](n); ut != nil {
		ut.CalculateRect(parentRect)
		currentRect = ut.Rect()
	}

	for _, child := range n.Children {
		c.layoutElement(child, currentRect)
	}
}
