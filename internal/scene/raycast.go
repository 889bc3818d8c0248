package scene

import (
	"scene3d/internal/engine"
	"scene3d/internal/ui"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RayResult is one ray hit: the node that was struck and the distance
// from the ray origin along the ray direction, in world units. Results
// come out of per-scene recycle pools and are only valid until the next
// query of the same kind on the same scene.
type RayResult struct {
	Node     *engine.Node
	Distance float32
}

// Query scratch. Ray queries run on the render thread only, so a single
// set of package-level temporaries is reused across calls instead of
// allocating per query.
var (
	scratchOrigin rl.Vector3
	scratchDir    rl.Vector3
	scratchBox    rl.BoundingBox
	narrowBest    float32
)

// rayBoxDistance runs the slab test of ray against box and reports the
// entry distance. A ray starting inside the box hits at distance 0.
func rayBoxDistance(origin, dir rl.Vector3, box rl.BoundingBox) (float32, bool) {
	tMin := float32(0)
	tMax := float32(MaxRayDistance)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	bMin := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	bMax := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(d[axis]) < 1e-8 {
			if o[axis] < bMin[axis] || o[axis] > bMax[axis] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / d[axis]
		t1 := (bMin[axis] - o[axis]) * inv
		t2 := (bMax[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// rayTriangle intersects a ray with one triangle (Moller-Trumbore).
// Single-sided triangles reject back-facing hits; double-sided ones
// accept either winding.
func rayTriangle(origin, dir, v0, v1, v2 rl.Vector3, doubleSided bool) (float32, bool) {
	const epsilon = 1e-8

	edge1 := rl.Vector3Subtract(v1, v0)
	edge2 := rl.Vector3Subtract(v2, v0)
	p := rl.Vector3CrossProduct(dir, edge2)
	det := rl.Vector3DotProduct(edge1, p)

	if doubleSided {
		if math32.Abs(det) < epsilon {
			return 0, false
		}
	} else if det < epsilon {
		return 0, false
	}

	invDet := 1.0 / det
	tv := rl.Vector3Subtract(origin, v0)
	u := rl.Vector3DotProduct(tv, p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := rl.Vector3CrossProduct(tv, edge1)
	v := rl.Vector3DotProduct(dir, q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := rl.Vector3DotProduct(edge2, q) * invDet
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// raycastSurface walks the surface's triangles in model space and folds
// the closest hit into narrowBest. The index buffer is interpreted per
// the surface's primitive mode.
func raycastSurface(s *MeshSurface, origin, dir rl.Vector3) {
	ib := s.Indices
	switch s.Mode {
	case TriangleList:
		for i := 0; i+2 < len(ib); i += 3 {
			testTriangle(s, origin, dir, ib[i], ib[i+1], ib[i+2])
		}
	case TriangleStrip:
		// Sliding window; every odd step swaps the leading pair to
		// keep the winding consistent.
		rev := 0
		for i := 0; i+2 < len(ib); i++ {
			testTriangle(s, origin, dir, ib[i+rev], ib[i+1-rev], ib[i+2])
			rev = ^rev & 1
		}
	case TriangleFan:
		for i := 1; i+1 < len(ib); i++ {
			testTriangle(s, origin, dir, ib[0], ib[i], ib[i+1])
		}
	}
}

func testTriangle(s *MeshSurface, origin, dir rl.Vector3, i0, i1, i2 uint32) {
	t, hit := rayTriangle(origin, dir, s.Position(i0), s.Position(i1), s.Position(i2), s.DoubleSided)
	if hit && t < narrowBest {
		narrowBest = t
	}
}

// raycastModel runs the broad phase against the model's world bounds
// and, for default models, the triangle narrow phase in model space.
// It returns the world-space hit distance.
func raycastModel(m *Model, origin, dir rl.Vector3, maxDist float32) (float32, bool) {
	if m.WorldBounds == nil {
		return 0, false
	}
	// A ray starting inside (or behind) the bounds reports entry
	// distance 0 and is rejected, matching the broad-phase contract.
	boxDist, hit := rayBoxDistance(origin, dir, *m.WorldBounds)
	if !hit || boxDist <= 0 || boxDist >= maxDist {
		return 0, false
	}
	if m.Type != ModelDefault {
		// UI sprite bounds are already tight; the box distance is the
		// answer.
		return boxDist, true
	}
	if m.Node == nil {
		return 0, false
	}

	// Move the ray into model space so triangle tests read the raw
	// vertex buffers.
	inv := rl.MatrixInvert(m.Node.WorldMatrix())
	scratchOrigin = rl.Vector3Transform(origin, inv)
	tip := rl.Vector3Transform(rl.Vector3Add(origin, dir), inv)
	scratchDir = rl.Vector3Normalize(rl.Vector3Subtract(tip, scratchOrigin))

	narrowBest = MaxRayDistance
	for _, sm := range m.SubModels {
		if sm.Surface == nil || len(sm.Surface.Positions) < 9 {
			continue
		}
		raycastSurface(sm.Surface, scratchOrigin, scratchDir)
	}
	if narrowBest >= MaxRayDistance {
		return 0, false
	}

	// Model-space distance back to world units: scale the unit local
	// direction by the node's world scale.
	scale := m.Node.WorldScale()
	worldDist := narrowBest * rl.Vector3Length(rl.Vector3Multiply(scratchDir, scale))
	if worldDist >= maxDist {
		return 0, false
	}
	return worldDist, true
}

func raycastEligible(m *Model, mask uint32) bool {
	if !m.Enabled {
		return false
	}
	if m.VisFlags&mask == 0 {
		return false
	}
	if m.VisFlags&LayerIgnoreRaycast != 0 {
		return false
	}
	return true
}

// RaycastAllModels tests the ray against every eligible model in the
// scene and fills the pooled model result list, unsorted. A model is
// eligible when enabled, its layer intersects mask and it does not
// carry LayerIgnoreRaycast. Returns true when at least one model was
// hit; read hits with RayResultModels.
func (s *RenderScene) RaycastAllModels(ray rl.Ray, mask uint32, maxDist float32) bool {
	s.poolModels.Reset()
	s.resultModels = s.resultModels[:0]
	for _, m := range s.models {
		if !raycastEligible(m, mask) {
			continue
		}
		dist, hit := raycastModel(m, ray.Position, ray.Direction, maxDist)
		if !hit {
			continue
		}
		r := s.poolModels.Add()
		r.Node = m.Node
		r.Distance = dist
		s.resultModels = append(s.resultModels, r)
	}
	return len(s.resultModels) > 0
}

// RaycastSingleModel tests the ray against one caller-supplied model,
// with the same eligibility rules as RaycastAllModels. Returns true on
// a hit; read it with RayResultSingleModel.
func (s *RenderScene) RaycastSingleModel(ray rl.Ray, m *Model, mask uint32, maxDist float32) bool {
	s.poolSingle.Reset()
	s.resultSingle = s.resultSingle[:0]
	if m == nil {
		debugf("raycast: RaycastSingleModel called with nil model")
		return false
	}
	if !raycastEligible(m, mask) {
		return false
	}
	dist, hit := raycastModel(m, ray.Position, ray.Direction, maxDist)
	if !hit {
		return false
	}
	r := s.poolSingle.Add()
	r.Node = m.Node
	r.Distance = dist
	s.resultSingle = append(s.resultSingle, r)
	return true
}

// RaycastAllCanvas tests the ray against the flat AABBs of every UI
// element under the scene's registered canvases. The layer mask gates
// which elements are recorded, but never stops the walk: a masked-out
// parent's children are still visited.
func (s *RenderScene) RaycastAllCanvas(ray rl.Ray, mask uint32, maxDist float32) bool {
	s.poolCanvas.Reset()
	s.resultCanvas = s.resultCanvas[:0]
	for _, root := range s.canvases {
		s.raycastUINode(root, ray, mask, maxDist)
	}
	return len(s.resultCanvas) > 0
}

func (s *RenderScene) raycastUINode(n *engine.Node, ray rl.Ray, mask uint32, maxDist float32) {
	if !n.Active {
		return
	}
	if ut := engine.GetComponent[*ui.UITransform](n); ut != nil {
		if n.Layer&mask != 0 && n.Layer&LayerIgnoreRaycast == 0 {
			ut.ComputeAABB(&scratchBox)
			if dist, hit := rayBoxDistance(ray.Position, ray.Direction, scratchBox); hit && dist > 0 && dist < maxDist {
				r := s.poolCanvas.Add()
				r.Node = n
				r.Distance = dist
				s.resultCanvas = append(s.resultCanvas, r)
			}
		}
	}
	for _, child := range n.Children {
		s.raycastUINode(child, ray, mask, maxDist)
	}
}

// RaycastAll runs the model query and the canvas query and exposes the
// union through RayResultAll. Returns true when either query hit.
func (s *RenderScene) RaycastAll(ray rl.Ray, mask uint32, maxDist float32) bool {
	hitModels := s.RaycastAllModels(ray, mask, maxDist)
	hitCanvas := s.RaycastAllCanvas(ray, mask, maxDist)
	s.resultAll = s.resultAll[:0]
	s.resultAll = append(s.resultAll, s.resultModels...)
	s.resultAll = append(s.resultAll, s.resultCanvas...)
	return hitModels || hitCanvas
}

// RayResultModels returns the hits of the last RaycastAllModels call.
func (s *RenderScene) RayResultModels() []*RayResult {
	return s.resultModels
}

// RayResultCanvas returns the hits of the last RaycastAllCanvas call.
func (s *RenderScene) RayResultCanvas() []*RayResult {
	return s.resultCanvas
}

// RayResultAll returns the combined hits of the last RaycastAll call.
func (s *RenderScene) RayResultAll() []*RayResult {
	return s.resultAll
}

// RayResultSingleModel returns the hit of the last RaycastSingleModel
// call, at most one entry.
func (s *RenderScene) RayResultSingleModel() []*RayResult {
	return s.resultSingle
}
