package scene

import (
	"testing"

	"scene3d/internal/engine"
	"scene3d/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// unitQuadSurface builds a unit quad in the local XY plane at z=0,
// front face toward +Z, as a triangle list.
func unitQuadSurface() *MeshSurface {
	return &MeshSurface{
		Positions: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			0.5, 0.5, 0,
			-0.5, 0.5, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Mode:    TriangleList,
	}
}

func downZRay(x, y, z float32) rl.Ray {
	return rl.Ray{
		Position:  rl.Vector3{X: x, Y: y, Z: z},
		Direction: rl.Vector3{Z: -1},
	}
}

func addQuadModel(s *RenderScene, name string, z float32) *Model {
	m := NewModel()
	m.Node = engine.NewNode(name)
	m.Node.Transform.Position.Z = z
	m.AddSubModel(&SubModel{Surface: unitQuadSurface()})
	s.AddModel(m)
	return m
}

func TestRaycastAllModelsFindsClosestTriangleHit(t *testing.T) {
	s := NewRenderScene("test")
	near := addQuadModel(s, "near", 2)
	addQuadModel(s, "far", -3)
	s.Update(0)

	if !s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected ray to hit both quads")
	}
	results := s.RayResultModels()
	if len(results) != 2 {
		t.Fatalf("Expected 2 hits, got %d", len(results))
	}
	var nearHit *RayResult
	for _, r := range results {
		if r.Node == near.Node {
			nearHit = r
		}
	}
	if nearHit == nil {
		t.Fatal("Expected a hit on the near quad")
	}
	if nearHit.Distance < 2.99 || nearHit.Distance > 3.01 {
		t.Errorf("Expected near hit distance 3, got %f", nearHit.Distance)
	}
}

func TestRaycastRespectsLayerMask(t *testing.T) {
	s := NewRenderScene("test")
	visible := addQuadModel(s, "visible", 0)
	hidden := addQuadModel(s, "hidden", 1)
	hidden.VisFlags = LayerUI2D
	ignored := addQuadModel(s, "ignored", 2)
	ignored.VisFlags = LayerDefault | LayerIgnoreRaycast
	s.Update(0)

	if !s.RaycastAllModels(downZRay(0, 0, 5), LayerDefault, MaxRayDistance) {
		t.Fatal("Expected at least one hit")
	}
	results := s.RayResultModels()
	if len(results) != 1 {
		t.Fatalf("Expected 1 hit, got %d", len(results))
	}
	if results[0].Node != visible.Node {
		t.Error("Expected only the default-layer model to be hit")
	}
}

func TestRaycastSkipsDisabledModels(t *testing.T) {
	s := NewRenderScene("test")
	m := addQuadModel(s, "quad", 0)
	s.Update(0)
	m.Enabled = false

	if s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Error("Disabled model must not be hit")
	}
}

func TestRaycastHonorsMaxDistance(t *testing.T) {
	s := NewRenderScene("test")
	addQuadModel(s, "quad", 0)
	s.Update(0)

	if s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, 4) {
		t.Error("Hit at distance 5 must be discarded by a max distance of 4")
	}
	if !s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, 6) {
		t.Error("Hit at distance 5 must pass a max distance of 6")
	}
}

func TestRaycastUISpriteUsesBroadPhaseDistance(t *testing.T) {
	s := NewRenderScene("test")
	m := addQuadModel(s, "sprite", 0)
	m.Type = ModelUISprite
	m.VisFlags = LayerUI2D
	s.Update(0)

	if !s.RaycastAllModels(downZRay(0, 0, 5), LayerUI2D, MaxRayDistance) {
		t.Fatal("Expected the sprite's bounds to be hit")
	}
	r := s.RayResultModels()[0]
	if r.Distance < 4.99 || r.Distance > 5.01 {
		t.Errorf("Expected broad-phase distance 5, got %f", r.Distance)
	}
}

func TestRaycastScaledModelReportsWorldDistance(t *testing.T) {
	s := NewRenderScene("test")
	m := NewModel()
	m.Node = engine.NewNode("scaled")
	m.Node.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	surface := unitQuadSurface()
	// Push the quad to local z=1 so scaling moves the hit plane.
	for i := 2; i < len(surface.Positions); i += 3 {
		surface.Positions[i] = 1
	}
	m.AddSubModel(&SubModel{Surface: surface})
	s.AddModel(m)
	s.Update(0)

	// Quad plane sits at world z=2; ray starts at z=5.
	if !s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit on the scaled quad")
	}
	dist := s.RayResultModels()[0].Distance
	if dist < 2.99 || dist > 3.01 {
		t.Errorf("Expected world distance 3, got %f", dist)
	}
}

func TestRaycastBackfaceCulling(t *testing.T) {
	s := NewRenderScene("test")
	m := addQuadModel(s, "quad", 0)
	s.Update(0)

	// From behind, against the winding.
	behind := rl.Ray{Position: rl.Vector3{Z: -5}, Direction: rl.Vector3{Z: 1}}
	if s.RaycastAllModels(behind, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Single-sided quad must cull the back-face hit")
	}

	m.SubModels[0].Surface.DoubleSided = true
	if !s.RaycastAllModels(behind, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Double-sided quad must accept the back-face hit")
	}
}

func TestRaycastTriangleStrip(t *testing.T) {
	s := NewRenderScene("test")
	m := NewModel()
	m.Node = engine.NewNode("strip")
	m.AddSubModel(&SubModel{Surface: &MeshSurface{
		Positions: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			-0.5, 0.5, 0,
			0.5, 0.5, 0,
		},
		Indices: []uint32{0, 1, 2, 3},
		Mode:    TriangleStrip,
	}})
	s.AddModel(m)
	s.Update(0)

	// The second strip triangle covers the upper-right half; hitting it
	// single-sided proves the winding flip on odd steps.
	if !s.RaycastAllModels(downZRay(0.3, 0.3, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Error("Expected a front-face hit on the second strip triangle")
	}
	if !s.RaycastAllModels(downZRay(-0.3, -0.3, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Error("Expected a front-face hit on the first strip triangle")
	}
}

func TestRaycastTriangleFan(t *testing.T) {
	s := NewRenderScene("test")
	m := NewModel()
	m.Node = engine.NewNode("fan")
	m.AddSubModel(&SubModel{Surface: &MeshSurface{
		Positions: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			0.5, 0.5, 0,
			-0.5, 0.5, 0,
		},
		Indices: []uint32{0, 1, 2, 3},
		Mode:    TriangleFan,
	}})
	s.AddModel(m)
	s.Update(0)

	if !s.RaycastAllModels(downZRay(-0.3, 0.3, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Error("Expected a hit on the fan's second triangle")
	}
}

func TestRaycastResultsAreRecycled(t *testing.T) {
	s := NewRenderScene("test")
	addQuadModel(s, "quad", 0)
	s.Update(0)

	ray := downZRay(0, 0, 5)
	if !s.RaycastAllModels(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit")
	}
	first := s.RayResultModels()[0]
	if !s.RaycastAllModels(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit on the second query")
	}
	second := s.RayResultModels()[0]
	if first != second {
		t.Error("Consecutive queries should reuse the same pooled result object")
	}
}

func TestRaycastSingleModel(t *testing.T) {
	s := NewRenderScene("test")
	m := addQuadModel(s, "quad", 0)
	s.Update(0)

	ray := downZRay(0, 0, 5)
	if !s.RaycastSingleModel(ray, m, DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit on the quad")
	}
	results := s.RayResultSingleModel()
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Distance < 4.99 || results[0].Distance > 5.01 {
		t.Errorf("Expected distance 5, got %f", results[0].Distance)
	}

	if s.RaycastSingleModel(ray, m, LayerUI2D, MaxRayDistance) {
		t.Error("Model outside the mask must not be hit")
	}
	m.VisFlags = LayerDefault | LayerIgnoreRaycast
	if s.RaycastSingleModel(ray, m, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Ignore-raycast model must not be hit")
	}

	if s.RaycastSingleModel(ray, nil, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Nil model must report no hit")
	}
}

func TestRaycastRecordsNearestTriangleWithinModel(t *testing.T) {
	s := NewRenderScene("test")
	m := NewModel()
	m.Node = engine.NewNode("layered")
	// Two parallel quads in one surface, z=0 and z=3, both facing +Z.
	m.AddSubModel(&SubModel{Surface: &MeshSurface{
		Positions: []float32{
			-0.5, -0.5, 0,
			0.5, -0.5, 0,
			0.5, 0.5, 0,
			-0.5, 0.5, 0,
			-0.5, -0.5, 3,
			0.5, -0.5, 3,
			0.5, 0.5, 3,
			-0.5, 0.5, 3,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7},
		Mode:    TriangleList,
	}})
	s.AddModel(m)
	s.Update(0)

	// From z=5 the near quad sits at distance 2, the far one at 5.
	if !s.RaycastAllModels(downZRay(0, 0, 5), DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit on the layered model")
	}
	results := s.RayResultModels()
	if len(results) != 1 {
		t.Fatalf("Expected 1 result for the model, got %d", len(results))
	}
	if results[0].Distance < 1.99 || results[0].Distance > 2.01 {
		t.Errorf("Expected the nearer quad's distance 2, got %f", results[0].Distance)
	}
}

func buildTestCanvas(s *RenderScene) (*engine.Node, *engine.Node) {
	root := engine.NewNode("canvas")
	root.AddComponent(ui.NewCanvas(rl.Rectangle{Width: 800, Height: 600}))

	button := engine.NewNode("button")
	button.Layer = LayerUI2D
	ut := ui.NewUITransform()
	button.AddComponent(ut)
	root.AddChild(button)

	engine.GetComponent[*ui.Canvas](root).Layout()
	s.AddCanvas(root)
	return root, button
}

func TestRaycastAllCanvas(t *testing.T) {
	s := NewRenderScene("test")
	_, button := buildTestCanvas(s)

	// The button rect is centered at (400,300) on the z=0 plane.
	ray := rl.Ray{Position: rl.Vector3{X: 400, Y: 300, Z: -5}, Direction: rl.Vector3{Z: 1}}
	if !s.RaycastAllCanvas(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected a hit on the button")
	}
	results := s.RayResultCanvas()
	if len(results) != 1 {
		t.Fatalf("Expected 1 canvas hit, got %d", len(results))
	}
	if results[0].Node != button {
		t.Error("Expected the button node in the result")
	}
	if results[0].Distance < 4.99 || results[0].Distance > 5.01 {
		t.Errorf("Expected distance 5, got %f", results[0].Distance)
	}

	miss := rl.Ray{Position: rl.Vector3{X: 100, Y: 100, Z: -5}, Direction: rl.Vector3{Z: 1}}
	if s.RaycastAllCanvas(miss, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Ray outside the button rect must miss")
	}
}

func TestRaycastCanvasMaskGatesRecordingOnly(t *testing.T) {
	s := NewRenderScene("test")
	_, button := buildTestCanvas(s)
	button.Layer = LayerIgnoreRaycast

	ray := rl.Ray{Position: rl.Vector3{X: 400, Y: 300, Z: -5}, Direction: rl.Vector3{Z: 1}}
	if s.RaycastAllCanvas(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Ignore-raycast UI element must not be recorded")
	}
}

func TestRaycastCanvasSkipsInactiveSubtree(t *testing.T) {
	s := NewRenderScene("test")
	_, button := buildTestCanvas(s)
	button.Active = false

	ray := rl.Ray{Position: rl.Vector3{X: 400, Y: 300, Z: -5}, Direction: rl.Vector3{Z: 1}}
	if s.RaycastAllCanvas(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Error("Inactive UI element must not be hit")
	}
}

func TestRaycastAllCombinesModelAndCanvasHits(t *testing.T) {
	s := NewRenderScene("test")
	m := NewModel()
	m.Node = engine.NewNode("quad")
	m.Node.Transform.Position = rl.Vector3{X: 400, Y: 300, Z: 10}
	m.AddSubModel(&SubModel{Surface: unitQuadSurface()})
	s.AddModel(m)
	buildTestCanvas(s)
	s.Update(0)

	// One ray through both the quad (front face at z=10) and the
	// button's flat AABB on the z=0 plane.
	ray := rl.Ray{Position: rl.Vector3{X: 400, Y: 300, Z: 15}, Direction: rl.Vector3{Z: -1}}
	if !s.RaycastAll(ray, DefaultRaycastMask, MaxRayDistance) {
		t.Fatal("Expected hits from both tiers")
	}
	all := s.RayResultAll()
	if len(all) != 2 {
		t.Fatalf("Expected 2 combined hits, got %d", len(all))
	}
	if len(s.RayResultModels()) != 1 || len(s.RayResultCanvas()) != 1 {
		t.Error("Expected one model hit and one canvas hit")
	}
	if all[0] != s.RayResultModels()[0] || all[1] != s.RayResultCanvas()[0] {
		t.Error("Combined list should hold model hits followed by canvas hits")
	}
}
