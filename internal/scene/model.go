package scene

import (
	"scene3d/internal/engine"
	"scene3d/internal/pool"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// PrimitiveMode describes how a surface's index buffer forms triangles.
type PrimitiveMode int

const (
	TriangleList PrimitiveMode = iota
	TriangleStrip
	TriangleFan
)

// ModelType selects the raycast path for a model. Default models get
// the full triangle narrow phase; UI sprite models are flat quads whose
// bounds are already tight, so the broad-phase distance is the hit.
type ModelType int

const (
	ModelDefault ModelType = iota
	ModelUISprite
)

// MeshSurface is the geometry surface a sub-model exposes to ray
// queries: a position buffer (xyz triples), an index buffer, the
// primitive topology and a double-sided flag. The buffers are owned by
// the mesh/asset layer; the scene only reads them.
type MeshSurface struct {
	Positions   []float32
	Indices     []uint32
	Mode        PrimitiveMode
	DoubleSided bool
}

// Position returns the i-th vertex position.
func (s *MeshSurface) Position(i uint32) rl.Vector3 {
	return rl.Vector3{
		X: s.Positions[i*3+0],
		Y: s.Positions[i*3+1],
		Z: s.Positions[i*3+2],
	}
}

// SubModel pairs one surface with a model. Surface may be nil (not yet
// streamed in); such sub-models are skipped by queries.
type SubModel struct {
	Surface *MeshSurface
}

// ModelRecord is the packed per-model uniform mirrored for the
// renderer: world transform, world bounds and visibility state.
type ModelRecord struct {
	WorldMatrix rl.Matrix
	BoundsMin   rl.Vector3
	BoundsMax   rl.Vector3
	Enabled     bool
	Layer       uint32
	ID          uint64
}

// Model is a renderable entity: a node reference (the transform is
// owned by the node system), sub-model surfaces, a layer mask and
// cached world bounds. While attached it owns a slot in the scene's
// packed model store.
type Model struct {
	Node        *engine.Node
	WorldBounds *rl.BoundingBox // nil until the first Update after attach
	Enabled     bool
	VisFlags    uint32
	Type        ModelType
	SubModels   []*SubModel
	ID          uint64

	localBounds *rl.BoundingBox
	handle      pool.Handle
	scene       *RenderScene
}

func NewModel() *Model {
	return &Model{
		Enabled:  true,
		VisFlags: LayerDefault,
		Type:     ModelDefault,
		handle:   pool.Nil,
	}
}

// AddSubModel appends a surface and folds it into the local bounds.
func (m *Model) AddSubModel(sm *SubModel) {
	m.SubModels = append(m.SubModels, sm)
	if sm.Surface != nil {
		m.expandLocalBounds(sm.Surface)
	}
}

func (m *Model) expandLocalBounds(s *MeshSurface) {
	if len(s.Positions) < 3 {
		return
	}
	if m.localBounds == nil {
		m.localBounds = &rl.BoundingBox{
			Min: rl.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
			Max: rl.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
		}
	}
	for i := 0; i+2 < len(s.Positions); i += 3 {
		v := rl.Vector3{X: s.Positions[i], Y: s.Positions[i+1], Z: s.Positions[i+2]}
		m.localBounds.Min = vector3Min(m.localBounds.Min, v)
		m.localBounds.Max = vector3Max(m.localBounds.Max, v)
	}
}

func (m *Model) AttachToScene(s *RenderScene) {
	m.scene = s
	m.handle = s.modelRecords.Alloc()
}

func (m *Model) DetachFromScene() {
	if m.scene != nil {
		m.scene.modelRecords.Free(m.handle)
	}
	m.handle = pool.Nil
	m.scene = nil
}

// Handle returns the model's packed record slot, Nil when detached.
func (m *Model) Handle() pool.Handle {
	return m.handle
}

// UpdateTransform refreshes the cached world bounds from the node's
// current transform.
func (m *Model) UpdateTransform() {
	if m.Node == nil || m.localBounds == nil {
		return
	}
	transform := m.Node.WorldMatrix()

	// Transform all 8 corners and respan; handles rotation correctly.
	lb := m.localBounds
	corners := [8]rl.Vector3{
		{X: lb.Min.X, Y: lb.Min.Y, Z: lb.Min.Z},
		{X: lb.Min.X, Y: lb.Min.Y, Z: lb.Max.Z},
		{X: lb.Min.X, Y: lb.Max.Y, Z: lb.Min.Z},
		{X: lb.Max.X, Y: lb.Min.Y, Z: lb.Min.Z},
		{X: lb.Max.X, Y: lb.Max.Y, Z: lb.Max.Z},
		{X: lb.Max.X, Y: lb.Max.Y, Z: lb.Min.Z},
		{X: lb.Max.X, Y: lb.Min.Y, Z: lb.Max.Z},
		{X: lb.Min.X, Y: lb.Max.Y, Z: lb.Max.Z},
	}
	wb := rl.BoundingBox{
		Min: rl.Vector3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: rl.Vector3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
	for _, c := range corners {
		wc := rl.Vector3Transform(c, transform)
		wb.Min = vector3Min(wb.Min, wc)
		wb.Max = vector3Max(wb.Max, wc)
	}
	if m.WorldBounds == nil {
		m.WorldBounds = &rl.BoundingBox{}
	}
	*m.WorldBounds = wb
}

// UpdateRecord publishes the model's uniform state into its packed slot.
func (m *Model) UpdateRecord() {
	if m.scene == nil {
		return
	}
	rec := ModelRecord{
		Enabled: m.Enabled,
		Layer:   m.VisFlags,
		ID:      m.ID,
	}
	if m.Node != nil {
		rec.WorldMatrix = m.Node.WorldMatrix()
	}
	if m.WorldBounds != nil {
		rec.BoundsMin = m.WorldBounds.Min
		rec.BoundsMax = m.WorldBounds.Max
	}
	m.scene.modelRecords.Set(m.handle, rec)
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Min(a.X, b.X),
		Y: math32.Min(a.Y, b.Y),
		Z: math32.Min(a.Z, b.Z),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
	}
}
