package render

import (
	"scene3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DebugRenderer visualizes a scene from its packed stores: model bounds
// and geometry, light markers and ray hit points. It reads the same
// records a full renderer would consume.
type DebugRenderer struct {
	BoundsColor   rl.Color
	GeometryColor rl.Color
	HitColor      rl.Color
	LightColor    rl.Color

	DrawBounds   bool
	DrawGeometry bool
	DrawLights   bool
}

func NewDebugRenderer() *DebugRenderer {
	return &DebugRenderer{
		BoundsColor:   rl.Green,
		GeometryColor: rl.LightGray,
		HitColor:      rl.Red,
		LightColor:    rl.Yellow,
		DrawBounds:    true,
		DrawGeometry:  true,
		DrawLights:    true,
	}
}

// Draw renders the scene's debug view. Call inside BeginMode3D.
func (r *DebugRenderer) Draw(s *scene.RenderScene) {
	if r.DrawGeometry {
		r.drawGeometry(s)
	}
	if r.DrawBounds {
		r.drawBounds(s)
	}
	if r.DrawLights {
		r.drawLights(s)
	}
}

// drawBounds walks the packed model array and draws each enabled
// model's world bounds.
func (r *DebugRenderer) drawBounds(s *scene.RenderScene) {
	for _, h := range s.ModelHandles() {
		rec := s.ModelRecord(h)
		if rec == nil || !rec.Enabled {
			continue
		}
		rl.DrawBoundingBox(rl.BoundingBox{Min: rec.BoundsMin, Max: rec.BoundsMax}, r.BoundsColor)
	}
}

// drawGeometry draws every model's triangles transformed by the packed
// world matrix.
func (r *DebugRenderer) drawGeometry(s *scene.RenderScene) {
	for _, m := range s.Models() {
		if !m.Enabled {
			continue
		}
		rec := s.ModelRecord(m.Handle())
		if rec == nil {
			continue
		}
		for _, sm := range m.SubModels {
			if sm.Surface != nil {
				r.drawSurface(sm.Surface, rec.WorldMatrix)
			}
		}
	}
}

func (r *DebugRenderer) drawSurface(surf *scene.MeshSurface, world rl.Matrix) {
	ib := surf.Indices
	switch surf.Mode {
	case scene.TriangleList:
		for i := 0; i+2 < len(ib); i += 3 {
			r.drawTriangle(surf, world, ib[i], ib[i+1], ib[i+2])
		}
	case scene.TriangleStrip:
		rev := 0
		for i := 0; i+2 < len(ib); i++ {
			r.drawTriangle(surf, world, ib[i+rev], ib[i+1-rev], ib[i+2])
			rev = ^rev & 1
		}
	case scene.TriangleFan:
		for i := 1; i+1 < len(ib); i++ {
			r.drawTriangle(surf, world, ib[0], ib[i], ib[i+1])
		}
	}
}

func (r *DebugRenderer) drawTriangle(surf *scene.MeshSurface, world rl.Matrix, i0, i1, i2 uint32) {
	v0 := rl.Vector3Transform(surf.Position(i0), world)
	v1 := rl.Vector3Transform(surf.Position(i1), world)
	v2 := rl.Vector3Transform(surf.Position(i2), world)
	// raylib's triangle winding is counter-clockwise front.
	rl.DrawTriangle3D(v0, v1, v2, r.GeometryColor)
	if surf.DoubleSided {
		rl.DrawTriangle3D(v0, v2, v1, r.GeometryColor)
	}
}

// drawLights draws markers from the packed light records plus the main
// light's direction through the origin.
func (r *DebugRenderer) drawLights(s *scene.RenderScene) {
	for _, h := range s.SphereLightHandles() {
		rec := s.LightRecord(h)
		if rec == nil {
			continue
		}
		rl.DrawSphereWires(rec.Position, rec.Size, 8, 8, r.LightColor)
	}
	for _, h := range s.SpotLightHandles() {
		rec := s.LightRecord(h)
		if rec == nil {
			continue
		}
		rl.DrawSphereWires(rec.Position, rec.Size, 8, 8, r.LightColor)
		tip := rl.Vector3Add(rec.Position, rl.Vector3Scale(rec.Direction, rec.Range))
		rl.DrawLine3D(rec.Position, tip, r.LightColor)
	}
	if main := s.MainLight(); main != nil {
		from := rl.Vector3Scale(main.Direction, -20)
		rl.DrawSphere(from, 0.5, r.LightColor)
		rl.DrawLine3D(from, rl.Vector3Zero(), r.LightColor)
	}
}

// DrawHits marks each result's hit point along the ray.
func (r *DebugRenderer) DrawHits(ray rl.Ray, results []*scene.RayResult) {
	for _, hit := range results {
		p := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, hit.Distance))
		rl.DrawSphere(p, 0.08, r.HitColor)
	}
}
