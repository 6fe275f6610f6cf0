package pipeline

import (
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a Pipeline during NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment stages. fs is nil for shadow pipelines.
//
// Parameters:
//   - vs: the vertex shader
//   - fs: the fragment shader, or nil
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithShaders(vs, fs shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vs
		p.fragmentShader = fs
	}
}

// WithRasterState replaces the whole fixed-function state. Options after it still apply.
func WithRasterState(s RasterState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state = s
	}
}

// WithCullMode sets which faces are culled.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.Cull = mode
	}
}

// WithDepth toggles the depth test and depth writes.
//
// Parameters:
//   - test: compare against the depth buffer
//   - write: write fragment depth
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthTest = test
		p.state.DepthWrite = write
	}
}

// WithDepthBias sets the constant and slope-scaled depth bias.
//
// Parameters:
//   - bias: the constant bias
//   - slope: the slope scale
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthBias(bias int32, slope float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.DepthBias = bias
		p.state.DepthBiasSlope = slope
	}
}

// WithBlend enables blending with the given state; nil makes the pipeline opaque.
func WithBlend(b *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.Blend = b
	}
}

// WithTopology sets the primitive topology.
func WithTopology(t wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.Topology = t
	}
}

// WithFrontFace sets the winding treated as front facing.
func WithFrontFace(f wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.FrontFace = f
	}
}

// WithWriteMask sets which color channels are written.
func WithWriteMask(m wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.state.WriteMask = m
	}
}
