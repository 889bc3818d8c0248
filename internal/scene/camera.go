package scene

import (
	"scene3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a scene-attached view entity. Projection state lives here;
// position and orientation come from the node.
type Camera struct {
	Node       *engine.Node
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
	IsMain     bool

	scene *RenderScene
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) AttachToScene(s *RenderScene) {
	c.scene = s
}

func (c *Camera) DetachFromScene() {
	c.scene = nil
}

// Scene returns the scene the camera is attached to, nil when detached.
func (c *Camera) Scene() *RenderScene {
	return c.scene
}
