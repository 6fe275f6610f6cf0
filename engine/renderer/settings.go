package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

// RendererBackendType identifies the GPU API behind the Renderer. WebGPU is the only one.
type RendererBackendType int

const (
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank. No tearing, frame rate capped to the display.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// PresentModeFor maps a vsync flag to a PresentMode.
func PresentModeFor(vsync bool) PresentMode {
	if vsync {
		return PresentModeVSync
	}
	return PresentModeUncapped
}

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	}
	return fmt.Sprintf("PresentMode(%d)", int(m))
}

// wgpuMode is the surface present mode for m. Unknown modes fall back to FIFO, which
// every adapter supports.
func (m PresentMode) wgpuMode() wgpu.PresentMode {
	if m == PresentModeUncapped {
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeFifo
}

// MSAASampleCount is the number of samples per pixel of the main color target.
// WebGPU guarantees 1 and 4; 8 and 16 depend on the adapter.
type MSAASampleCount uint32

const (
	MSAAOff MSAASampleCount = 1
	MSAA4x  MSAASampleCount = 4
	MSAA8x  MSAASampleCount = 8
	MSAA16x MSAASampleCount = 16
)

// Valid reports whether c is one of the supported sample counts.
func (c MSAASampleCount) Valid() bool {
	switch c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	}
	return false
}

// ParseMSAA converts a configured sample count.
//
// Parameters:
//   - n: 1, 4, 8 or 16
//
// Returns:
//   - MSAASampleCount: the sample count
//   - error: if n is not supported
func ParseMSAA(n int) (MSAASampleCount, error) {
	c := MSAASampleCount(n)
	if n < 0 || !c.Valid() {
		return 0, fmt.Errorf("unsupported MSAA sample count %d (want 1, 4, 8 or 16)", n)
	}
	return c, nil
}

// Settings is everything fixed when the backend is created.
type Settings struct {
	PresentMode PresentMode
	MSAA        MSAASampleCount
	ClearColor  wgpu.Color
	// ForceFallbackAdapter requests a software adapter such as lavapipe or SwiftShader.
	ForceFallbackAdapter bool
	// Pipelines are registered right after the surface is configured.
	Pipelines []pipeline.Pipeline
}

// DefaultSettings is vsync, 4x MSAA and a dark grey clear color.
func DefaultSettings() Settings {
	return Settings{
		PresentMode: PresentModeVSync,
		MSAA:        MSAA4x,
		ClearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
}

// RendererBackend is the backend the Renderer forwards to, one per RendererBackendType.
type RendererBackend interface {
	wgpuRendererBackend
}
