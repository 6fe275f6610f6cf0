package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/camera"
	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
	"github.com/Carmen-Shannon/oxy-garden/engine/light"
	"github.com/Carmen-Shannon/oxy-garden/engine/model"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
)

// ErrNoModel is returned by Add for objects that carry no Model.
var ErrNoModel = errors.New("scene: object has no model")

// Scene manages a retained list of GameObjects together with the Camera, the directional
// Light and the Renderer used to draw them. Each frame runs in three phases: Prepare uploads
// uniforms, RenderShadows fills the shadow map and DrawCalls issues the lit draws.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Light returns the scene's directional light, or nil when the scene is unlit.
	Light() light.Light

	// SetLight replaces the scene's directional light.
	//
	// Parameters:
	//   - l: the new light, or nil to disable direct lighting
	SetLight(l light.Light)

	// AmbientColor returns the ambient fill color added to every lit fragment.
	AmbientColor() mgl32.Vec3

	// SetAmbientColor sets the ambient fill color.
	//
	// Parameters:
	//   - color: RGB ambient color
	SetAmbientColor(color mgl32.Vec3)

	// Add uploads the object's mesh (once per Model) and creates its per-object bind group,
	// then stores it in the scene. Objects without a Model are rejected with ErrNoModel;
	// pure transform nodes are attached as parents and do not need to be added.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	//   - error: an error if GPU resources could not be created
	Add(obj game_object.GameObject) (uint64, error)

	// Get retrieves a GameObject by its ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID and releases its per-object GPU resources.
	// The mesh buffers are released once no remaining object uses the Model.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Objects returns the scene's objects in insertion order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the object list
	Objects() []game_object.GameObject

	// Count returns the number of objects in the scene.
	Count() int

	// VisibleCount returns how many objects survived frustum culling in the last Prepare.
	VisibleCount() int

	// CullingDisabled returns whether CPU frustum culling is disabled for this scene.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables CPU frustum culling for this scene.
	//
	// Parameters:
	//   - disabled: true to draw every enabled object regardless of the camera frustum
	SetCullingDisabled(disabled bool)

	// Prepare builds the per-object uniforms on the worker pool, culls against the camera
	// frustum and writes the frame, shadow and object uniforms to the GPU.
	Prepare()

	// RenderShadows renders every shadow-casting object into the shadow map. The pass
	// always runs so the map is cleared even when the light casts no shadows.
	//
	// Returns:
	//   - error: the first failure to open, draw into or submit the pass
	RenderShadows() error

	// DrawCalls issues one draw call per visible object. Must be called within a
	// BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: the first pipeline lookup failure, if any
	DrawCalls() error

	// Release releases every GPU resource the scene created. The renderer is not released.
	Release()
}

// scene implements the Scene interface.
type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool

	cam camera.Camera
	r   renderer.Renderer
	lgt light.Light

	ambientColor    mgl32.Vec3
	shadowSettings  light.ShadowSettings
	shadowCenter    mgl32.Vec3
	cullingDisabled bool

	objects   []game_object.GameObject
	registry  map[uint64]game_object.GameObject
	modelRefs map[model.Model]int
	nextID    uint64

	// Per-frame bind groups: the lit pipeline's group 0 and the shadow pipeline's group 0.
	frameBGP  bind_group_provider.BindGroupProvider
	shadowBGP bind_group_provider.BindGroupProvider

	shadowTexture *wgpu.Texture
	shadowView    *wgpu.TextureView

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	visible   []game_object.GameObject
	uniforms  [][]byte
	inFrustum []bool
	writePool []bind_group_provider.BufferWrite

	// prepPool runs the per-object uniform build of Prepare. Workers persist across
	// frames and idle-exit after a second without work.
	prepPool    worker.DynamicWorkerPool
	prepWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene and allocates its shared GPU resources: the default pipelines,
// the shadow map with its comparison sampler and the frame and shadow uniform bind groups.
// A nil camera or renderer is a programmer error and panics.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if GPU resource creation failed
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		r:              r,
		ambientColor:   mgl32.Vec3{0.2, 0.2, 0.2},
		shadowSettings: light.DefaultShadowSettings(),
		registry:       make(map[uint64]game_object.GameObject),
		modelRefs:      make(map[model.Model]int),
		nextID:         1,
		prepWorkers:    max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Queue size of 256 covers the scene with headroom; Submit blocks beyond that.
	s.prepPool = worker.NewDynamicWorkerPool(s.prepWorkers, 256, 1*time.Second)

	if err := r.RegisterPipelines(pipeline.DefaultPipelines()...); err != nil {
		return nil, err
	}
	slog.Debug("pipelines ready", slog.String("scene", s.name), slog.Any("keys", r.PipelineKeys()))
	if err := s.initShadowMap(); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// initShadowMap allocates the shadow depth texture and the two per-frame bind groups.
func (s *scene) initShadowMap() error {
	res := s.shadowSettings.Resolution
	if res <= 0 {
		res = light.ShadowMapResolution
	}
	view, tex, err := s.r.CreateShadowTarget(res)
	if err != nil {
		return err
	}
	s.shadowTexture = tex
	s.shadowView = view

	samp, err := s.r.CreateComparisonSampler()
	if err != nil {
		view.Release()
		s.shadowView = nil
		return err
	}

	// The frame provider owns the shadow view and sampler and releases them.
	s.frameBGP = bind_group_provider.NewBindGroupProvider("Frame",
		bind_group_provider.WithTextureView(bind_group_provider.ShadowMapBinding, view),
		bind_group_provider.WithSampler(bind_group_provider.ShadowSamplerBinding, samp),
	)
	if err := s.r.InitBindGroup(s.frameBGP, shader.FrameLayout); err != nil {
		return fmt.Errorf("scene %s: frame bind group: %w", s.name, err)
	}

	s.shadowBGP = bind_group_provider.NewBindGroupProvider("Shadow")
	if err := s.r.InitBindGroup(s.shadowBGP, shader.ShadowLayout); err != nil {
		return fmt.Errorf("scene %s: shadow bind group: %w", s.name, err)
	}
	return nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lgt
}

func (s *scene) SetLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lgt = l
}

func (s *scene) AmbientColor() mgl32.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ambientColor
}

func (s *scene) SetAmbientColor(color mgl32.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambientColor = color
}

func (s *scene) CullingDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cullingDisabled
}

func (s *scene) SetCullingDisabled(disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cullingDisabled = disabled
}

func (s *scene) Add(obj game_object.GameObject) (uint64, error) {
	m := obj.Model()
	if m == nil {
		return 0, ErrNoModel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if _, exists := s.registry[obj.ID()]; exists {
		return obj.ID(), nil
	}

	if m.MeshProvider() == nil {
		mesh := bind_group_provider.NewBindGroupProvider(m.Name() + " Mesh")
		if err := s.r.InitMeshBuffers(mesh, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			mesh.Release()
			return 0, fmt.Errorf("scene %s: mesh %s: %w", s.name, m.Name(), err)
		}
		m.SetMeshProvider(mesh)
	}

	provider, err := s.initObjectBindGroup(obj)
	if err != nil {
		return 0, err
	}
	obj.SetUniformProvider(provider)

	s.registry[obj.ID()] = obj
	s.objects = append(s.objects, obj)
	s.modelRefs[m]++
	return obj.ID(), nil
}

// initObjectBindGroup uploads the material texture (or a white texel) and creates the
// per-object uniform buffer and bind group. Callers hold s.mu.
func (s *scene) initObjectBindGroup(obj game_object.GameObject) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s #%d", obj.Name(), obj.ID()))

	tex := whiteTexel()
	var samp common.SamplerStagingData
	if mat := obj.Model().Material(); mat != nil && mat.Texture() != nil {
		tex = *mat.Texture()
		samp = mat.Sampler()
	}

	if err := s.r.InitTextureView(provider, bind_group_provider.TextureBinding, tex); err != nil {
		provider.Release()
		return nil, fmt.Errorf("scene %s: %w", s.name, err)
	}
	if err := s.r.InitSampler(provider, bind_group_provider.SamplerBinding, samp); err != nil {
		provider.Release()
		return nil, fmt.Errorf("scene %s: %w", s.name, err)
	}
	if err := s.r.InitBindGroup(provider, shader.ObjectLayout); err != nil {
		provider.Release()
		return nil, fmt.Errorf("scene %s: %w", s.name, err)
	}
	return provider, nil
}

// whiteTexel is bound for untextured materials; the lit shader ignores it but the
// layout still requires a texture.
func whiteTexel() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.registry[id]
	if !ok {
		return
	}
	delete(s.registry, id)
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}

	if p := obj.UniformProvider(); p != nil {
		p.Release()
		obj.SetUniformProvider(nil)
	}
	m := obj.Model()
	s.modelRefs[m]--
	if s.modelRefs[m] <= 0 {
		delete(s.modelRefs, m)
		if mp := m.MeshProvider(); mp != nil {
			mp.Release()
			m.SetMeshProvider(nil)
		}
	}
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]game_object.GameObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) VisibleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visible)
}

func (s *scene) Prepare() {
	s.mu.Lock()
	defer s.mu.Unlock()

	vp := s.cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(vp)
	cull := !s.cullingDisabled

	frame := GPUFrameUniform{
		ViewProj:  vp,
		CameraPos: s.cam.Position(),
		Ambient:   s.ambientColor,
	}
	if s.lgt != nil {
		frame.Light = light.ToGPULight(s.lgt)
		frame.Shadow = light.NewShadowData(s.lgt, s.shadowSettings, s.shadowCenter)
	}
	shadowUniform := light.GPUShadowUniform{LightVP: frame.Shadow.LightVP}

	n := len(s.objects)
	s.uniforms = growBytes(s.uniforms, n)
	s.inFrustum = growBools(s.inFrustum, n)

	// Phase 1: build every uniform on the prep pool. A WaitGroup gives the per-frame
	// barrier; pool.Wait() would block until workers idle-exit.
	var wg sync.WaitGroup
	for i, obj := range s.objects {
		if !obj.Enabled() {
			s.uniforms[i] = nil
			s.inFrustum[i] = false
			continue
		}
		wg.Add(1)
		idx, o := i, obj
		s.prepPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				u := game_object.ToGPUUniform(o)
				s.uniforms[idx] = u.Marshal()
				s.inFrustum[idx] = !cull || isVisible(frustum, u.Model, o.Model().BoundingRadius())
				return nil, nil
			},
		})
	}
	wg.Wait()

	// Phase 2: coalesce all writes into a single renderer call.
	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.BufferWrite{Provider: s.frameBGP, Binding: bind_group_provider.FrameUniformBinding, Data: frame.Marshal()},
		bind_group_provider.BufferWrite{Provider: s.shadowBGP, Binding: bind_group_provider.ShadowUniformBinding, Data: shadowUniform.Marshal()},
	)
	s.visible = s.visible[:0]
	for i, obj := range s.objects {
		if s.uniforms[i] == nil {
			continue
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: obj.UniformProvider(),
			Binding:  bind_group_provider.ObjectUniformBinding,
			Data:     s.uniforms[i],
		})
		if s.inFrustum[i] {
			s.visible = append(s.visible, obj)
		}
	}
	s.writePool = writes
	s.r.WriteBuffers(writes)
}

func (s *scene) RenderShadows() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.r.BeginShadowPass(s.shadowView); err != nil {
		return err
	}

	var drawErr error
	if s.lgt != nil && s.lgt.Enabled() && s.lgt.CastsShadows() {
		for i, obj := range s.objects {
			if i >= len(s.uniforms) || s.uniforms[i] == nil || !obj.CastsShadows() {
				continue
			}
			err := s.r.Draw(pipeline.KeyShadow, obj.Model().MeshProvider(), s.shadowBGP, obj.UniformProvider())
			if err != nil && drawErr == nil {
				drawErr = err
			}
		}
	}

	if err := s.r.EndShadowPass(); err != nil {
		return err
	}
	return drawErr
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drawErr error
	for _, obj := range s.visible {
		key := material.PipelineLit
		if mat := obj.Model().Material(); mat != nil {
			key = mat.PipelineKey()
		}
		err := s.r.Draw(key, obj.Model().MeshProvider(), s.frameBGP, obj.UniformProvider())
		if err != nil && drawErr == nil {
			drawErr = err
		}
	}
	return drawErr
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, obj := range s.objects {
		if p := obj.UniformProvider(); p != nil {
			p.Release()
			obj.SetUniformProvider(nil)
		}
	}
	for m := range s.modelRefs {
		if mp := m.MeshProvider(); mp != nil {
			mp.Release()
			m.SetMeshProvider(nil)
		}
	}
	s.objects = nil
	s.visible = nil
	clear(s.registry)
	clear(s.modelRefs)

	if s.frameBGP != nil {
		s.frameBGP.Release()
		s.frameBGP = nil
	}
	// The frame provider owned the view.
	s.shadowView = nil
	if s.shadowBGP != nil {
		s.shadowBGP.Release()
		s.shadowBGP = nil
	}
	if s.shadowTexture != nil {
		s.shadowTexture.Release()
		s.shadowTexture = nil
	}
}

// isVisible tests an object's bounding sphere, taken from its world matrix, against the frustum.
func isVisible(f common.Frustum, world mgl32.Mat4, localRadius float32) bool {
	return f.ContainsSphere(world.Col(3).Vec3(), localRadius*maxAxisScale(world))
}

// maxAxisScale returns the largest scale factor encoded in the upper 3x3 of m.
func maxAxisScale(m mgl32.Mat4) float32 {
	s := float32(0)
	for i := range 3 {
		s = max(s, m.Col(i).Vec3().Len())
	}
	return s
}

func growBytes(s [][]byte, n int) [][]byte {
	if cap(s) < n {
		return make([][]byte, n)
	}
	return s[:n]
}

func growBools(s []bool, n int) []bool {
	if cap(s) < n {
		return make([]bool, n)
	}
	return s[:n]
}
