package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption configures a shader in NewShader.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the entry point found in the source.
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entry = name
	}
}

// WithBindGroupLayout declares the layout of one bind group. Declaring a group twice
// keeps the last.
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.groups[group] = desc
	}
}

// WithVertexLayouts declares one layout per vertex buffer slot.
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexBuffers = layouts
	}
}
