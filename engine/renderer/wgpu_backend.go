package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

// Depth formats of the main pass and the shadow map.
const (
	mainDepthFormat   = wgpu.TextureFormatDepth24Plus
	shadowDepthFormat = wgpu.TextureFormatDepth32Float
)

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	// Set by ConfigureSurface.
	surfaceFormat *wgpu.TextureFormat
	msaa          *attachment
	depth         *attachment
	mainPass      *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount
	clearColor  wgpu.Color

	// layouts shares one bind group layout per descriptor label between bind groups and
	// pipeline layouts.
	layouts map[string]*wgpu.BindGroupLayout

	// frame is open between BeginFrame and EndFrame, shadow between BeginShadowPass and
	// EndShadowPass. frameSurface lives until Present.
	frame        *passRecorder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
	shadow       *passRecorder
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and the size-dependent attachments.
	// A zero size, as for a minimized window, is ignored.
	ConfigureSurface(width, height int) error
	// SetPresentMode takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// RegisterPipeline compiles a color or shadow pipeline and stores the GPU object on it.
	RegisterPipeline(p pipeline.Pipeline) error

	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateShadowTarget allocates a square Depth32Float texture the shadow pass renders
	// into and the lit pass samples.
	CreateShadowTarget(size int) (*wgpu.TextureView, *wgpu.Texture, error)
	CreateComparisonSampler() (*wgpu.Sampler, error)

	BeginShadowPass(depthView *wgpu.TextureView) error
	EndShadowPass() error
	BeginFrame() error
	EndFrame() error
	Present()

	// Draw records an indexed draw into the shadow pass for shadow pipelines and into the
	// frame pass otherwise. Draws with no open pass, or with resources not yet uploaded,
	// are dropped.
	Draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider)

	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend requests an adapter and device able to present to the surface.
// The calling goroutine stays locked to its OS thread, as the surface requires.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, settings Settings) (wgpuRendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("no surface descriptor: the window was not created")
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: settings.PresentMode.wgpuMode(),
		sampleCount: settings.MSAA,
		clearColor:  settings.ClearColor,
		layouts:     make(map[string]*wgpu.BindGroupLayout),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: settings.ForceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "oxy-garden device"})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()
	return b, nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = mode.wgpuMode()
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadow != nil {
		b.shadow.abort()
		b.shadow = nil
	}
	if b.frame != nil {
		b.frame.abort()
		b.frame = nil
	}
	b.releaseFrameSurface()

	for label, layout := range b.layouts {
		layout.Release()
		delete(b.layouts, label)
	}
	b.msaa.release()
	b.depth.release()
	b.msaa, b.depth, b.mainPass = nil, nil, nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}
