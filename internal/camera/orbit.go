package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a target point, driven by right-mouse drag and
// the scroll wheel. It is the inspection camera of the debug viewer.
type OrbitCamera struct {
	Target    rl.Vector3
	Distance  float32
	Yaw       float32
	Pitch     float32
	LookSpeed float32
	ZoomSpeed float32
}

func New(target rl.Vector3) *OrbitCamera {
	return &OrbitCamera{
		Target:    target,
		Distance:  15.0,
		Yaw:       -135.0,
		Pitch:     -30.0,
		LookSpeed: 0.25,
		ZoomSpeed: 1.0,
	}
}

func (c *OrbitCamera) Update() {
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		mouseDelta := rl.GetMouseDelta()
		c.Yaw += mouseDelta.X * c.LookSpeed
		c.Pitch -= mouseDelta.Y * c.LookSpeed
	}

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	c.Distance -= rl.GetMouseWheelMove() * c.ZoomSpeed
	if c.Distance < 2 {
		c.Distance = 2
	}
	if c.Distance > 100 {
		c.Distance = 100
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	offset := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	return rl.Camera3D{
		Position:   rl.Vector3Subtract(c.Target, rl.Vector3Scale(offset, c.Distance)),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}
