package renderer

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

// SurfaceSource is anything that can describe a presentable surface, typically the window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	settings    Settings
}

// Renderer owns the GPU device and the pipelines, uploads resources onto
// BindGroupProviders and records draws.
//
// A frame is one shadow pass followed by one main pass:
//
//	BeginShadowPass, Draw(shadow pipeline)..., EndShadowPass
//	BeginFrame, Draw(color pipeline)..., EndFrame, Present
//
// Draw picks the pass from the pipeline's type.
type Renderer interface {
	// Pipeline returns the registered pipeline for key, or nil.
	Pipeline(key string) pipeline.Pipeline

	// PipelineKeys returns the keys of every registered pipeline, sorted.
	PipelineKeys() []string

	// RegisterPipelines compiles pipelines and caches them by PipelineKey. Keys already
	// registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: the first compilation failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the swapchain and attachments for a new framebuffer size in pixels.
	Resize(width, height int) error

	// SetPresentMode changes the present mode from the next Resize on.
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers uploads vertex and index data onto a mesh provider.
	//
	// Parameters:
	//   - provider: receives the buffers
	//   - vertexData: packed vertices
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: if the mesh is empty or a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the provider's bind group from a layout. Textures and samplers
	// must be initialized first; uniform buffers are created as needed.
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// InitTextureView uploads an RGBA8 sRGB texture onto the provider at a binding.
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler on the provider at a binding.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers queues uniform writes. Writes to bindings without a buffer are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateShadowTarget allocates a square depth texture for the shadow map.
	//
	// Parameters:
	//   - size: edge length in texels
	//
	// Returns:
	//   - *wgpu.TextureView: the view the shadow pass renders into
	//   - *wgpu.Texture: the texture, released by the caller
	//   - error: if allocation fails
	CreateShadowTarget(size int) (*wgpu.TextureView, *wgpu.Texture, error)

	// CreateComparisonSampler creates the sampler the lit shader filters the shadow map with.
	CreateComparisonSampler() (*wgpu.Sampler, error)

	// BeginShadowPass starts a depth-only pass clearing and rendering into depthView.
	BeginShadowPass(depthView *wgpu.TextureView) error

	// EndShadowPass submits the shadow pass. It is a no-op when none is open.
	EndShadowPass() error

	// BeginFrame acquires the next swapchain texture and starts the main pass.
	BeginFrame() error

	// Draw records one indexed draw with a registered pipeline.
	//
	// Parameters:
	//   - pipelineKey: the pipeline to draw with
	//   - mesh: the mesh provider
	//   - groups: providers bound at group 0, 1, ...
	//
	// Returns:
	//   - error: if no pipeline is registered under pipelineKey
	Draw(pipelineKey string, mesh bind_group_provider.BindGroupProvider, groups ...bind_group_provider.BindGroupProvider) error

	// EndFrame submits the main pass.
	EndFrame() error

	// Present shows the submitted frame and releases the swapchain texture.
	Present()

	// Release frees every registered pipeline and then the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for a surface, configures the swapchain and registers
// any pipelines passed with WithPipelines.
//
// Parameters:
//   - backendType: the GPU API; only BackendTypeWGPU exists
//   - surface: the window to present to
//   - width: the framebuffer width in pixels
//   - height: the framebuffer height in pixels
//   - options: Settings overrides
//
// Returns:
//   - Renderer: the renderer
//   - error: if the settings are invalid or no adapter, device or surface could be set up
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		settings:      DefaultSettings(),
	}
	for _, opt := range options {
		opt(r)
	}
	if !r.settings.MSAA.Valid() {
		return nil, fmt.Errorf("unsupported MSAA sample count %d", r.settings.MSAA)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		r.backend, err = newWGPURendererBackend(surface.SurfaceDescriptor(), r.settings)
	default:
		return nil, fmt.Errorf("unknown renderer backend %d", backendType)
	}
	if err != nil {
		return nil, err
	}

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	if err := r.RegisterPipelines(r.settings.Pipelines...); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) PipelineKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.pipelineCache))
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return fmt.Errorf("register %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateShadowTarget(size int) (*wgpu.TextureView, *wgpu.Texture, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("shadow map size %d", size)
	}
	return r.backend.CreateShadowTarget(size)
}

func (r *renderer) CreateComparisonSampler() (*wgpu.Sampler, error) {
	return r.backend.CreateComparisonSampler()
}

func (r *renderer) BeginShadowPass(depthView *wgpu.TextureView) error {
	return r.backend.BeginShadowPass(depthView)
}

func (r *renderer) EndShadowPass() error {
	return r.backend.EndShadowPass()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(pipelineKey string, mesh bind_group_provider.BindGroupProvider, groups ...bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, ok := r.pipelineCache[pipelineKey]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("pipeline %q is not registered", pipelineKey)
	}
	r.backend.Draw(p, mesh, groups)
	return nil
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
	}
}
