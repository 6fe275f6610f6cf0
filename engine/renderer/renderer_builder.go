package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

// RendererBuilderOption adjusts the Settings a Renderer is created with.
type RendererBuilderOption func(*renderer)

// WithPipelines registers extra pipelines during NewRenderer.
//
// Parameters:
//   - ps: the pipelines, registered under their PipelineKey
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithPipelines(ps ...pipeline.Pipeline) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.Pipelines = append(r.settings.Pipelines, ps...)
	}
}

// WithPresentMode sets the initial present mode.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.PresentMode = mode
	}
}

// WithMSAA sets the sample count of the main color target. NewRenderer fails on counts
// other than 1, 4, 8 and 16.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: option function to apply
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.MSAA = count
	}
}

// WithForceSoftwareRenderer requests the fallback adapter. A software Vulkan ICD must be installed.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.ForceFallbackAdapter = force
	}
}

// WithClearColor sets the color the main pass clears to.
func WithClearColor(c wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.settings.ClearColor = c
	}
}
