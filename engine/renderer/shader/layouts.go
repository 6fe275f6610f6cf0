package shader

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
)

// Uniform buffer sizes matching the WGSL structs in wgsl/.
const (
	FrameUniformSize  = 208
	ObjectUniformSize = 160
	ShadowUniformSize = 64
)

// Bind group indices used by the lit and shadow pipelines.
const (
	FrameGroup  = 0
	ObjectGroup = 1
	ShadowGroup = 0
)

// vertexStride matches model.GPUVertex.
const vertexStride = 48

// FrameLayout describes group(0) of the lit pipeline: the frame uniform and the shadow map.
var FrameLayout = wgpu.BindGroupLayoutDescriptor{
	Label: "Frame Layout",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    bind_group_provider.FrameUniformBinding,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: FrameUniformSize,
			},
		},
		{
			Binding:    bind_group_provider.ShadowMapBinding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeDepth,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    bind_group_provider.ShadowSamplerBinding,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeComparison,
			},
		},
	},
}

// ObjectLayout describes group(1) of both pipelines: the object uniform and the material texture.
var ObjectLayout = wgpu.BindGroupLayoutDescriptor{
	Label: "Object Layout",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    bind_group_provider.ObjectUniformBinding,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: ObjectUniformSize,
			},
		},
		{
			Binding:    bind_group_provider.TextureBinding,
			Visibility: wgpu.ShaderStageFragment,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		},
		{
			Binding:    bind_group_provider.SamplerBinding,
			Visibility: wgpu.ShaderStageFragment,
			Sampler: wgpu.SamplerBindingLayout{
				Type: wgpu.SamplerBindingTypeFiltering,
			},
		},
	},
}

// ShadowLayout describes group(0) of the shadow pipeline: the light view-projection.
var ShadowLayout = wgpu.BindGroupLayoutDescriptor{
	Label: "Shadow Layout",
	Entries: []wgpu.BindGroupLayoutEntry{
		{
			Binding:    bind_group_provider.ShadowUniformBinding,
			Visibility: wgpu.ShaderStageVertex,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: ShadowUniformSize,
			},
		},
	},
}

// VertexLayout is the interleaved position/normal/uv/color layout of a mesh vertex buffer.
var VertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: vertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
	},
}

// ShadowVertexLayout reads only the position from the same vertex buffer.
var ShadowVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: vertexStride,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	},
}
