package scene

import (
	"scene3d/internal/engine"
	"scene3d/internal/pool"
)

// SceneRecord is the packed scene-level state mirrored for the
// renderer. MainLightIndex is the main light's position in the
// directional-light list, -1 when unset.
type SceneRecord struct {
	MainLightIndex int32
}

// RenderScene owns the live entity collections of one scene and
// answers ray queries against them. The logical lists and the packed
// handle arrays are kept in lock-step: index i of a list always equals
// index i of its packed array. All methods must run on the render
// thread; there is no internal locking.
type RenderScene struct {
	Name string

	cameras           []*Camera
	directionalLights []*DirectionalLight
	sphereLights      []*SphereLight
	spotLights        []*SpotLight
	models            []*Model
	canvases          []*engine.Node

	mainLight *DirectionalLight
	record    SceneRecord
	nextID    uint64

	modelRecords *pool.RecordPool[ModelRecord]
	lightRecords *pool.RecordPool[LightRecord]

	arrays           *pool.ArrayPool[pool.Handle]
	modelArray       pool.Handle
	sphereLightArray pool.Handle
	spotLightArray   pool.Handle

	// Ray query result pools, recycled across calls.
	poolModels *pool.RecyclePool[RayResult]
	poolCanvas *pool.RecyclePool[RayResult]
	poolSingle *pool.RecyclePool[RayResult]

	resultModels []*RayResult
	resultCanvas []*RayResult
	resultSingle []*RayResult
	resultAll    []*RayResult
}

// NewRenderScene creates an empty scene. Use a Factory when scenes are
// looked up by name.
func NewRenderScene(name string) *RenderScene {
	s := &RenderScene{
		Name:         name,
		record:       SceneRecord{MainLightIndex: -1},
		modelRecords: pool.NewRecordPool[ModelRecord](),
		lightRecords: pool.NewRecordPool[LightRecord](),
		arrays:       pool.NewArrayPool[pool.Handle](),
		poolModels:   pool.NewRecyclePool[RayResult](16),
		poolCanvas:   pool.NewRecyclePool[RayResult](16),
		poolSingle:   pool.NewRecyclePool[RayResult](4),
	}
	s.modelArray = s.arrays.Alloc()
	s.sphereLightArray = s.arrays.Alloc()
	s.spotLightArray = s.arrays.Alloc()
	return s
}

// Factory creates scenes on behalf of the engine root, at most one per
// name. Asking for an existing name returns the already-created scene.
type Factory struct {
	scenes map[string]*RenderScene
}

func NewFactory() *Factory {
	return &Factory{scenes: make(map[string]*RenderScene)}
}

func (f *Factory) CreateScene(name string) *RenderScene {
	if s, ok := f.scenes[name]; ok {
		return s
	}
	s := NewRenderScene(name)
	f.scenes[name] = s
	return s
}

// Record returns the packed scene-level state.
func (s *RenderScene) Record() SceneRecord {
	return s.record
}

// GenerateModelID returns the next scene-unique model id.
func (s *RenderScene) GenerateModelID() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// Cameras

func (s *RenderScene) AddCamera(c *Camera) {
	c.AttachToScene(s)
	s.cameras = append(s.cameras, c)
}

func (s *RenderScene) RemoveCamera(c *Camera) {
	for i, existing := range s.cameras {
		if existing == c {
			c.DetachFromScene()
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

func (s *RenderScene) RemoveCameras() {
	for _, c := range s.cameras {
		c.DetachFromScene()
	}
	s.cameras = s.cameras[:0]
}

func (s *RenderScene) Cameras() []*Camera {
	return s.cameras
}

// Main light

// SetMainLight unconditionally replaces the current main light and
// publishes the change to the packed scene record.
func (s *RenderScene) SetMainLight(dl *DirectionalLight) {
	s.mainLight = dl
	s.record.MainLightIndex = -1
	for i, existing := range s.directionalLights {
		if existing == dl {
			s.record.MainLightIndex = int32(i)
			return
		}
	}
}

// UnsetMainLight acts only when dl is the current main light. It falls
// back to the last remaining directional light, marking that light's
// node rotation as changed so downstream consumers refresh, or to nil
// when the list is empty.
func (s *RenderScene) UnsetMainLight(dl *DirectionalLight) {
	if s.mainLight != dl {
		return
	}
	if n := len(s.directionalLights); n > 0 {
		last := s.directionalLights[n-1]
		s.SetMainLight(last)
		if last.Node != nil {
			last.Node.SetChanged(engine.TransformRotation)
		}
		return
	}
	s.mainLight = nil
	s.record.MainLightIndex = -1
}

func (s *RenderScene) MainLight() *DirectionalLight {
	return s.mainLight
}

// Directional lights

func (s *RenderScene) AddDirectionalLight(dl *DirectionalLight) {
	dl.AttachToScene(s)
	s.directionalLights = append(s.directionalLights, dl)
}

func (s *RenderScene) RemoveDirectionalLight(dl *DirectionalLight) {
	for i, existing := range s.directionalLights {
		if existing == dl {
			dl.DetachFromScene()
			s.directionalLights = append(s.directionalLights[:i], s.directionalLights[i+1:]...)
			if s.mainLight == dl {
				s.UnsetMainLight(dl)
			} else if s.mainLight != nil {
				// The splice shifted indices; republish the main
				// light's position in the packed record.
				s.SetMainLight(s.mainLight)
			}
			return
		}
	}
}

func (s *RenderScene) DirectionalLights() []*DirectionalLight {
	return s.directionalLights
}

// Sphere lights

func (s *RenderScene) AddSphereLight(l *SphereLight) {
	l.AttachToScene(s)
	s.sphereLights = append(s.sphereLights, l)
	s.arrays.Push(s.sphereLightArray, l.Handle())
}

func (s *RenderScene) RemoveSphereLight(l *SphereLight) {
	for i, existing := range s.sphereLights {
		if existing == l {
			l.DetachFromScene()
			s.sphereLights = append(s.sphereLights[:i], s.sphereLights[i+1:]...)
			s.arrays.EraseAt(s.sphereLightArray, i)
			return
		}
	}
}

func (s *RenderScene) RemoveSphereLights() {
	for _, l := range s.sphereLights {
		l.DetachFromScene()
	}
	s.sphereLights = s.sphereLights[:0]
	s.arrays.Clear(s.sphereLightArray)
}

func (s *RenderScene) SphereLights() []*SphereLight {
	return s.sphereLights
}

// Spot lights

func (s *RenderScene) AddSpotLight(l *SpotLight) {
	l.AttachToScene(s)
	s.spotLights = append(s.spotLights, l)
	s.arrays.Push(s.spotLightArray, l.Handle())
}

func (s *RenderScene) RemoveSpotLight(l *SpotLight) {
	for i, existing := range s.spotLights {
		if existing == l {
			l.DetachFromScene()
			s.spotLights = append(s.spotLights[:i], s.spotLights[i+1:]...)
			s.arrays.EraseAt(s.spotLightArray, i)
			return
		}
	}
}

func (s *RenderScene) RemoveSpotLights() {
	for _, l := range s.spotLights {
		l.DetachFromScene()
	}
	s.spotLights = s.spotLights[:0]
	s.arrays.Clear(s.spotLightArray)
}

func (s *RenderScene) SpotLights() []*SpotLight {
	return s.spotLights
}

// Models

func (s *RenderScene) AddModel(m *Model) {
	if m.ID == 0 {
		m.ID = s.GenerateModelID()
	}
	m.AttachToScene(s)
	s.models = append(s.models, m)
	s.arrays.Push(s.modelArray, m.Handle())
}

// RemoveModel finds m by reference equality, detaches it, splices it
// out of the logical list and erases the same index from the packed
// array. First match wins.
func (s *RenderScene) RemoveModel(m *Model) {
	for i, existing := range s.models {
		if existing == m {
			m.DetachFromScene()
			s.models = append(s.models[:i], s.models[i+1:]...)
			s.arrays.EraseAt(s.modelArray, i)
			return
		}
	}
}

func (s *RenderScene) RemoveModels() {
	for _, m := range s.models {
		m.DetachFromScene()
	}
	s.models = s.models[:0]
	s.arrays.Clear(s.modelArray)
}

func (s *RenderScene) Models() []*Model {
	return s.models
}

// Canvases

func (s *RenderScene) AddCanvas(n *engine.Node) {
	s.canvases = append(s.canvases, n)
}

func (s *RenderScene) RemoveCanvas(n *engine.Node) {
	for i, existing := range s.canvases {
		if existing == n {
			s.canvases = append(s.canvases[:i], s.canvases[i+1:]...)
			return
		}
	}
}

func (s *RenderScene) Canvases() []*engine.Node {
	return s.canvases
}

// Packed store accessors for the downstream renderer.

func (s *RenderScene) ModelHandles() []pool.Handle {
	return s.arrays.Slice(s.modelArray)
}

func (s *RenderScene) SphereLightHandles() []pool.Handle {
	return s.arrays.Slice(s.sphereLightArray)
}

func (s *RenderScene) SpotLightHandles() []pool.Handle {
	return s.arrays.Slice(s.spotLightArray)
}

func (s *RenderScene) ModelRecord(h pool.Handle) *ModelRecord {
	return s.modelRecords.Get(h)
}

func (s *RenderScene) LightRecord(h pool.Handle) *LightRecord {
	return s.lightRecords.Get(h)
}

// Update runs once per frame: main light first, then sphere and spot
// lights (each a pure per-light refresh), then every enabled model's
// transform and packed uniform record. Lights go before models because
// model state may depend on light state. The frame timestamp is
// accepted for interface symmetry with the frame loop; nothing in the
// scene refresh consumes it yet.
func (s *RenderScene) Update(_ float32) {
	if s.mainLight != nil {
		s.mainLight.Update()
	}
	for _, l := range s.sphereLights {
		l.Update()
	}
	for _, l := range s.spotLights {
		l.Update()
	}
	for _, m := range s.models {
		if !m.Enabled {
			continue
		}
		m.UpdateTransform()
		m.UpdateRecord()
	}
	s.clearChangedFlags()
}

func (s *RenderScene) clearChangedFlags() {
	if s.mainLight != nil && s.mainLight.Node != nil {
		s.mainLight.Node.ClearChanged()
	}
	for _, l := range s.spotLights {
		if l.Node != nil {
			l.Node.ClearChanged()
		}
	}
	for _, m := range s.models {
		if m.Node != nil {
			m.Node.ClearChanged()
		}
	}
}

// Destroy detaches and frees every owned entity and every handle the
// scene allocated. Safe to call more than once: freed handles are
// nulled, so the second pass is a no-op.
func (s *RenderScene) Destroy() {
	s.RemoveCameras()
	s.RemoveModels()
	s.RemoveSphereLights()
	s.RemoveSpotLights()
	for _, dl := range s.directionalLights {
		dl.DetachFromScene()
	}
	s.directionalLights = s.directionalLights[:0]
	s.mainLight = nil
	s.record.MainLightIndex = -1
	s.canvases = s.canvases[:0]

	s.arrays.Free(s.modelArray)
	s.arrays.Free(s.sphereLightArray)
	s.arrays.Free(s.spotLightArray)
	s.modelArray = pool.Nil
	s.sphereLightArray = pool.Nil
	s.spotLightArray = pool.Nil
}
