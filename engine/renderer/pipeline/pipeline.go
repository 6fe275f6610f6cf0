package pipeline

import (
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineType identifies whether a pipeline draws color into the frame or depth into a shadow map.
type PipelineType int

const (
	// PipelineTypeRender is a color pipeline with vertex and fragment stages.
	PipelineTypeRender PipelineType = iota

	// PipelineTypeShadow is a depth-only pipeline with a vertex stage and no color target.
	PipelineTypeShadow
)

// Keys of the built-in pipelines.
const (
	KeyLit            = "lit"
	KeyLitDoubleSided = "lit_double_sided"
	KeyShadow         = "shadow"
)

// RasterState is the fixed-function state a pipeline is created with.
// Shadow pipelines only read Cull, FrontFace and the depth bias.
type RasterState struct {
	Topology  wgpu.PrimitiveTopology
	FrontFace wgpu.FrontFace
	Cull      wgpu.CullMode

	DepthTest  bool
	DepthWrite bool
	// DepthBias and DepthBiasSlope offset written depth, used against shadow acne.
	DepthBias      int32
	DepthBiasSlope float32

	WriteMask wgpu.ColorWriteMask
	// Blend is nil for opaque pipelines.
	Blend *wgpu.BlendState
}

// DepthCompare is the depth function implied by DepthTest.
func (s RasterState) DepthCompare() wgpu.CompareFunction {
	if s.DepthTest {
		return wgpu.CompareFunctionLess
	}
	return wgpu.CompareFunctionAlways
}

// DefaultRasterState is an opaque, depth-tested triangle list with CCW fronts and no culling.
func DefaultRasterState() RasterState {
	return RasterState{
		Topology:   wgpu.PrimitiveTopologyTriangleList,
		FrontFace:  wgpu.FrontFaceCCW,
		Cull:       wgpu.CullModeNone,
		DepthTest:  true,
		DepthWrite: true,
		WriteMask:  wgpu.ColorWriteMaskAll,
	}
}

// AlphaBlend is standard non-premultiplied alpha blending.
var AlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

type pipeline struct {
	kind PipelineType
	key  string

	vertexShader, fragmentShader shader.Shader
	state                        RasterState

	// nil until registered with the Renderer
	renderPipeline *wgpu.RenderPipeline
}

// Pipeline pairs a set of shaders and a RasterState with the GPU pipeline built from them.
// Pipelines are created unregistered; the Renderer compiles them and calls SetRenderPipeline.
type Pipeline interface {
	// Type returns whether this is a color or a shadow pipeline.
	Type() PipelineType

	// PipelineKey returns the key the Renderer and materials look the pipeline up by.
	PipelineKey() string

	// Shader returns the shader for a stage, or nil if the stage is unused.
	//
	// Parameters:
	//   - shaderType: the stage
	//
	// Returns:
	//   - shader.Shader: the stage's shader or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// State returns the fixed-function state.
	State() RasterState

	// Pipeline returns the GPU pipeline, or nil before registration.
	Pipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the compiled GPU pipeline, releasing any previous one.
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The pipeline can be registered again afterwards.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates an unregistered Pipeline starting from DefaultRasterState.
//
// Parameters:
//   - key: the lookup key
//   - kind: render or shadow
//   - opts: shader and state overrides
//
// Returns:
//   - Pipeline: the pipeline
func NewPipeline(key string, kind PipelineType, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:   key,
		kind:  kind,
		state: DefaultRasterState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Type() PipelineType {
	return p.kind
}

func (p *pipeline) PipelineKey() string {
	return p.key
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	}
	return nil
}

func (p *pipeline) State() RasterState {
	return p.state
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	if p.renderPipeline != nil && p.renderPipeline != rp {
		p.renderPipeline.Release()
	}
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}

// NewLitPipeline creates the forward lit pipeline. cull decides whether back faces are drawn.
//
// Parameters:
//   - key: the lookup key
//   - cull: wgpu.CullModeBack for closed meshes, wgpu.CullModeNone for double-sided surfaces
//
// Returns:
//   - Pipeline: the unregistered pipeline
func NewLitPipeline(key string, cull wgpu.CullMode) Pipeline {
	vs, fs := shader.NewLitShaders()
	return NewPipeline(key, PipelineTypeRender,
		WithShaders(vs, fs),
		WithCullMode(cull),
	)
}

// NewShadowPipeline creates the depth-only shadow caster pipeline. Culling is off so flat
// casters like petals and leaves still write depth.
func NewShadowPipeline() Pipeline {
	return NewPipeline(KeyShadow, PipelineTypeShadow,
		WithShaders(shader.NewShadowShader(), nil),
		WithCullMode(wgpu.CullModeNone),
		WithDepthBias(2, 2.0),
	)
}

// DefaultPipelines returns the lit, double-sided lit and shadow pipelines the scene draws with.
func DefaultPipelines() []Pipeline {
	return []Pipeline{
		NewLitPipeline(KeyLit, wgpu.CullModeBack),
		NewLitPipeline(KeyLitDoubleSided, wgpu.CullModeNone),
		NewShadowPipeline(),
	}
}
