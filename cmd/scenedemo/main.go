package main

import (
	"flag"
	"fmt"

	"scene3d/internal/camera"
	"scene3d/internal/engine"
	"scene3d/internal/render"
	"scene3d/internal/scene"
	"scene3d/internal/ui"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	width  = flag.Int("width", 1280, "window width")
	height = flag.Int("height", 720, "window height")
	fps    = flag.Int("fps", 120, "target frames per second")
)

// cubeSurface builds a unit cube as an indexed triangle list, faces
// wound counter-clockwise from outside.
func cubeSurface() *scene.MeshSurface {
	return &scene.MeshSurface{
		Positions: []float32{
			-0.5, -0.5, -0.5,
			0.5, -0.5, -0.5,
			0.5, 0.5, -0.5,
			-0.5, 0.5, -0.5,
			-0.5, -0.5, 0.5,
			0.5, -0.5, 0.5,
			0.5, 0.5, 0.5,
			-0.5, 0.5, 0.5,
		},
		Indices: []uint32{
			4, 5, 6, 4, 6, 7, // front
			1, 0, 3, 1, 3, 2, // back
			0, 4, 7, 0, 7, 3, // left
			5, 1, 2, 5, 2, 6, // right
			7, 6, 2, 7, 2, 3, // top
			0, 1, 5, 0, 5, 4, // bottom
		},
		Mode: scene.TriangleList,
	}
}

// groundSurface builds a unit quad in the XZ plane facing up.
func groundSurface() *scene.MeshSurface {
	return &scene.MeshSurface{
		Positions: []float32{
			-0.5, 0, -0.5,
			-0.5, 0, 0.5,
			0.5, 0, 0.5,
			0.5, 0, -0.5,
		},
		Indices:     []uint32{0, 1, 2, 0, 2, 3},
		Mode:        scene.TriangleList,
		DoubleSided: true,
	}
}

func addCube(s *scene.RenderScene, name string, pos rl.Vector3, rotY float32) *scene.Model {
	m := scene.NewModel()
	m.Node = engine.NewNode(name)
	m.Node.Transform.Position = pos
	m.Node.Transform.Rotation.Y = rotY
	m.AddSubModel(&scene.SubModel{Surface: cubeSurface()})
	s.AddModel(m)
	return m
}

func buildScene(f *scene.Factory) *scene.RenderScene {
	s := f.CreateScene("demo")

	ground := scene.NewModel()
	ground.Node = engine.NewNode("Ground")
	ground.Node.Transform.Scale = rl.Vector3{X: 20, Y: 1, Z: 20}
	ground.AddSubModel(&scene.SubModel{Surface: groundSurface()})
	s.AddModel(ground)

	addCube(s, "Cube A", rl.Vector3{X: -3, Y: 0.5, Z: 0}, 0)
	addCube(s, "Cube B", rl.Vector3{X: 0, Y: 0.5, Z: 2}, 30)
	big := addCube(s, "Cube C", rl.Vector3{X: 3, Y: 1, Z: -1}, 0)
	big.Node.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	sun := scene.NewDirectionalLight()
	sun.Node = engine.NewNode("Sun")
	s.AddDirectionalLight(sun)
	s.SetMainLight(sun)

	lamp := scene.NewSphereLight()
	lamp.Node = engine.NewNode("Lamp")
	lamp.Node.Transform.Position = rl.Vector3{X: -2, Y: 3, Z: 2}
	lamp.Color = rl.Orange
	s.AddSphereLight(lamp)

	spot := scene.NewSpotLight()
	spot.Node = engine.NewNode("Spot")
	spot.Node.Transform.Position = rl.Vector3{X: 2, Y: 4, Z: 2}
	spot.Node.Transform.Rotation.X = -60
	spot.Range = 6
	s.AddSpotLight(spot)

	canvasNode := engine.NewNode("Canvas")
	canvasNode.AddComponent(ui.NewCanvas(rl.Rectangle{Width: float32(*width), Height: float32(*height)}))
	button := engine.NewNode("Button")
	button.Layer = scene.LayerUI2D
	button.AddComponent(ui.NewUITransform())
	canvasNode.AddChild(button)
	engine.GetComponent[*ui.Canvas](canvasNode).Layout()
	s.AddCanvas(canvasNode)

	return s
}

func main() {
	flag.Parse()

	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(int32(*width), int32(*height), "Scene Raycast Viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(*fps))

	f := scene.NewFactory()
	s := buildScene(f)
	defer s.Destroy()

	cam := camera.New(rl.Vector3{Y: 1})
	renderer := render.NewDebugRenderer()

	var lastRay rl.Ray
	haveRay := false
	lastHit := "click to pick"

	for !rl.WindowShouldClose() {
		cam.Update()
		s.Update(float32(rl.GetTime()))

		rlCam := cam.GetRaylibCamera()

		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			lastRay = rl.GetScreenToWorldRay(rl.GetMousePosition(), rlCam)
			haveRay = true
			if s.RaycastAllModels(lastRay, scene.DefaultRaycastMask, scene.MaxRayDistance) {
				closest := s.RayResultModels()[0]
				for _, r := range s.RayResultModels() {
					if r.Distance < closest.Distance {
						closest = r
					}
				}
				lastHit = fmt.Sprintf("%s at %.2f", closest.Node.Name, closest.Distance)
			} else {
				lastHit = "miss"
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.DarkGray)

		rl.BeginMode3D(rlCam)
		rl.DrawGrid(40, 1)
		renderer.Draw(s)
		if haveRay {
			renderer.DrawHits(lastRay, s.RayResultModels())
		}
		rl.EndMode3D()

		renderer.DrawBounds = gui.CheckBox(rl.Rectangle{X: 10, Y: 10, Width: 20, Height: 20}, "Bounds", renderer.DrawBounds)
		renderer.DrawLights = gui.CheckBox(rl.Rectangle{X: 10, Y: 36, Width: 20, Height: 20}, "Lights", renderer.DrawLights)
		gui.Label(rl.Rectangle{X: 10, Y: 62, Width: 300, Height: 20}, lastHit)
		rl.DrawFPS(int32(*width)-100, 10)

		rl.EndDrawing()
	}
}
