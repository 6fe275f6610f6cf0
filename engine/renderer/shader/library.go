package shader

import (
	_ "embed"
)

// Keys of the built-in shaders.
const (
	LitVertexKey    = "lit_vs"
	LitFragmentKey  = "lit_fs"
	ShadowVertexKey = "shadow_vs"
)

//go:embed wgsl/lit.wgsl
var litSource string

//go:embed wgsl/shadow.wgsl
var shadowSource string

// NewLitShaders creates the vertex and fragment stages of the forward lit pass.
//
// Returns:
//   - Shader: the vertex stage
//   - Shader: the fragment stage
func NewLitShaders() (Shader, Shader) {
	layouts := []ShaderBuilderOption{
		WithBindGroupLayout(FrameGroup, FrameLayout),
		WithBindGroupLayout(ObjectGroup, ObjectLayout),
	}
	vs := NewShader(LitVertexKey, ShaderTypeVertex, litSource, append(layouts, WithVertexLayouts(VertexLayout))...)
	fs := NewShader(LitFragmentKey, ShaderTypeFragment, litSource, layouts...)
	return vs, fs
}

// NewShadowShader creates the vertex-only stage of the shadow depth pass.
//
// Returns:
//   - Shader: the vertex stage
func NewShadowShader() Shader {
	return NewShader(ShadowVertexKey, ShaderTypeVertex, shadowSource,
		WithBindGroupLayout(ShadowGroup, ShadowLayout),
		WithBindGroupLayout(ObjectGroup, ObjectLayout),
		WithVertexLayouts(ShadowVertexLayout),
	)
}
