package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the RGBA base color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color mgl32.Vec4) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithTexture is an option builder that sets the texture pixels and the sampler used to read them.
//
// Parameters:
//   - tex: staged RGBA pixels
//   - sampler: sampler configuration
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(tex common.TextureStagingData, sampler common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.texture = &tex
		m.sampler = sampler
	}
}

// WithTextureRepeat is an option builder that sets how many times the texture tiles.
//
// Parameters:
//   - u, v: repeat counts
//
// Returns:
//   - MaterialBuilderOption: a function that applies the repeat option to a material
func WithTextureRepeat(u, v float32) MaterialBuilderOption {
	return func(m *material) {
		m.textureRepeat = mgl32.Vec2{u, v}
	}
}

// WithVertexColor is an option builder that enables per-vertex colors.
//
// Parameters:
//   - enabled: true to multiply vertex colors into the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the vertex color option to a material
func WithVertexColor(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.useVertexColor = enabled
	}
}

// WithDoubleSided is an option builder that disables back-face culling for the material.
//
// Parameters:
//   - doubleSided: true to render both faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the double-sided option to a material
func WithDoubleSided(doubleSided bool) MaterialBuilderOption {
	return func(m *material) {
		m.doubleSided = doubleSided
	}
}

// WithPipelineKey is an option builder that forces a specific render pipeline key.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}
