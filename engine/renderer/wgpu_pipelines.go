package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
)

// bindGroupLayout returns the cached layout for desc, creating it on first use. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) bindGroupLayout(desc wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	if layout, ok := b.layouts[desc.Label]; ok {
		return layout, nil
	}
	layout, err := b.device.CreateBindGroupLayout(&desc)
	if err != nil {
		return nil, fmt.Errorf("create bind group layout %q: %w", desc.Label, err)
	}
	b.layouts[desc.Label] = layout
	return layout, nil
}

// pipelineLayout merges the bind groups of every stage; the first stage to declare a group
// wins. Groups must be numbered 0..n-1. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) pipelineLayout(label string, stages ...shader.Shader) (*wgpu.PipelineLayout, error) {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)
	for _, s := range stages {
		if s == nil {
			continue
		}
		for g, desc := range s.BindGroupLayoutDescriptors() {
			if _, ok := merged[g]; !ok {
				merged[g] = desc
			}
		}
	}

	layouts := make([]*wgpu.BindGroupLayout, len(merged))
	for i := range layouts {
		desc, ok := merged[i]
		if !ok {
			return nil, fmt.Errorf("pipeline %s: bind group %d is missing", label, i)
		}
		layout, err := b.bindGroupLayout(desc)
		if err != nil {
			return nil, err
		}
		layouts[i] = layout
	}
	return b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: layouts,
	})
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	vertex := p.Shader(shader.ShaderTypeVertex)
	fragment := p.Shader(shader.ShaderTypeFragment)
	shadow := p.Type() == pipeline.PipelineTypeShadow
	switch {
	case vertex == nil:
		return fmt.Errorf("pipeline %s: no vertex shader", p.PipelineKey())
	case !shadow && fragment == nil:
		return fmt.Errorf("pipeline %s: no fragment shader", p.PipelineKey())
	case !shadow && b.surfaceFormat == nil:
		return errors.New("surface must be configured before registering color pipelines")
	}

	stages := []shader.Shader{vertex}
	if !shadow {
		stages = append(stages, fragment)
	}
	modules := make([]*wgpu.ShaderModule, 0, len(stages))
	defer func() {
		for _, m := range modules {
			m.Release()
		}
	}()
	for _, s := range stages {
		m, err := b.device.CreateShaderModule(s.Module())
		if err != nil {
			return fmt.Errorf("compile %s: %w", s.Key(), err)
		}
		modules = append(modules, m)
	}

	layout, err := b.pipelineLayout(p.PipelineKey(), stages...)
	if err != nil {
		return err
	}
	defer layout.Release()

	st := p.State()
	desc := &wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey(),
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     modules[0],
			EntryPoint: vertex.EntryPoint(),
			Buffers:    vertex.VertexLayouts(),
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  st.Topology,
			FrontFace: st.FrontFace,
			CullMode:  st.Cull,
		},
		Multisample: wgpu.MultisampleState{Count: uint32(b.sampleCount), Mask: 0xFFFFFFFF},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              mainDepthFormat,
			DepthWriteEnabled:   st.DepthWrite,
			DepthCompare:        st.DepthCompare(),
			DepthBias:           st.DepthBias,
			DepthBiasSlopeScale: st.DepthBiasSlope,
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	}
	if shadow {
		// Depth only: single sample into the shadow map, no color target.
		desc.Multisample.Count = 1
		desc.DepthStencil.Format = shadowDepthFormat
		desc.DepthStencil.DepthWriteEnabled = true
		desc.DepthStencil.DepthCompare = wgpu.CompareFunctionLess
	} else {
		desc.Fragment = &wgpu.FragmentState{
			Module:     modules[1],
			EntryPoint: fragment.EntryPoint(),
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				WriteMask: st.WriteMask,
				Blend:     st.Blend,
			}},
		}
	}

	created, err := b.device.CreateRenderPipeline(desc)
	if err != nil {
		return fmt.Errorf("create pipeline %s: %w", p.PipelineKey(), err)
	}
	p.SetRenderPipeline(created)
	return nil
}
