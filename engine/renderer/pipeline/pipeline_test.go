package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("plain", PipelineTypeRender)
	if got, want := p.State(), DefaultRasterState(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}
	st := p.State()
	if !st.DepthTest || !st.DepthWrite {
		t.Error("depth test and write should default on")
	}
	if st.Blend != nil {
		t.Error("blending should default off")
	}
	if st.DepthCompare() != wgpu.CompareFunctionLess {
		t.Errorf("depth compare = %v, want less", st.DepthCompare())
	}
	if p.Pipeline() != nil {
		t.Error("unregistered pipeline should have no GPU object")
	}
	p.Release()
}

func TestBuilderOptions(t *testing.T) {
	p := NewPipeline("custom", PipelineTypeRender,
		WithDepth(false, false),
		WithDepthBias(4, 1.5),
		WithBlend(&AlphaBlend),
		WithCullMode(wgpu.CullModeFront),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	st := p.State()
	if st.DepthTest || st.DepthWrite {
		t.Error("depth options not applied")
	}
	if st.DepthCompare() != wgpu.CompareFunctionAlways {
		t.Errorf("depth compare = %v, want always", st.DepthCompare())
	}
	if st.DepthBias != 4 || st.DepthBiasSlope != 1.5 {
		t.Errorf("depth bias = %d/%v", st.DepthBias, st.DepthBiasSlope)
	}
	if st.Blend != &AlphaBlend {
		t.Error("blend state not applied")
	}
	if st.Cull != wgpu.CullModeFront || st.FrontFace != wgpu.FrontFaceCW {
		t.Error("raster options not applied")
	}
	if st.Topology != wgpu.PrimitiveTopologyLineList || st.WriteMask != wgpu.ColorWriteMaskRed {
		t.Error("topology or write mask not applied")
	}
}

func TestWithRasterStateThenOverride(t *testing.T) {
	base := DefaultRasterState()
	base.Cull = wgpu.CullModeFront
	p := NewPipeline("override", PipelineTypeRender,
		WithRasterState(base),
		WithCullMode(wgpu.CullModeBack),
	)
	if p.State().Cull != wgpu.CullModeBack {
		t.Errorf("cull = %v, want back", p.State().Cull)
	}
}

func TestDefaultPipelines(t *testing.T) {
	ps := DefaultPipelines()
	byKey := make(map[string]Pipeline, len(ps))
	for _, p := range ps {
		byKey[p.PipelineKey()] = p
	}

	lit := byKey[KeyLit]
	if lit == nil || lit.Type() != PipelineTypeRender || lit.State().Cull != wgpu.CullModeBack {
		t.Fatalf("lit pipeline misconfigured: %+v", lit)
	}
	double := byKey[KeyLitDoubleSided]
	if double == nil || double.State().Cull != wgpu.CullModeNone {
		t.Fatalf("double-sided pipeline misconfigured: %+v", double)
	}
	for _, p := range []Pipeline{lit, double} {
		if p.Shader(shader.ShaderTypeVertex) == nil || p.Shader(shader.ShaderTypeFragment) == nil {
			t.Errorf("%s: missing shader stage", p.PipelineKey())
		}
	}

	shadow := byKey[KeyShadow]
	if shadow == nil || shadow.Type() != PipelineTypeShadow {
		t.Fatalf("shadow pipeline misconfigured: %+v", shadow)
	}
	if shadow.Shader(shader.ShaderTypeFragment) != nil {
		t.Error("shadow pipeline should be depth only")
	}
	if shadow.State().DepthBias == 0 {
		t.Error("shadow pipeline should carry a depth bias")
	}
}

func TestMaterialKeysResolveToPipelines(t *testing.T) {
	keys := map[string]bool{}
	for _, p := range DefaultPipelines() {
		keys[p.PipelineKey()] = true
	}
	for _, k := range []string{material.PipelineLit, material.PipelineLitDoubleSided} {
		if !keys[k] {
			t.Errorf("material pipeline key %q has no pipeline", k)
		}
	}
}
