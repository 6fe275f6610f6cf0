package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// Pipeline keys a material can select.
const (
	// PipelineLit renders front faces only.
	PipelineLit = "lit"
	// PipelineLitDoubleSided renders both faces, for flat geometry seen from either side.
	PipelineLitDoubleSided = "lit_double_sided"
)

// material is the implementation of the Material interface.
type material struct {
	name           string
	baseColor      mgl32.Vec4
	texture        *common.TextureStagingData
	sampler        common.SamplerStagingData
	textureRepeat  mgl32.Vec2
	useVertexColor bool
	doubleSided    bool
	pipelineKey    string
}

// Material defines the interface for a render material, encapsulating surface
// properties and an optional texture. Properties are set at construction time and
// are read-only through this interface; the scene uploads the texture alongside
// each object that uses the material.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA color multiplied into every fragment.
	//
	// Returns:
	//   - mgl32.Vec4: the base color
	BaseColor() mgl32.Vec4

	// Texture retrieves the staged texture pixels, or nil when the material is untextured.
	//
	// Returns:
	//   - *common.TextureStagingData: the texture or nil
	Texture() *common.TextureStagingData

	// Sampler retrieves the sampler configuration used with the texture.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	Sampler() common.SamplerStagingData

	// TextureRepeat retrieves how many times the texture tiles across the UV range.
	//
	// Returns:
	//   - mgl32.Vec2: repeat counts along U and V
	TextureRepeat() mgl32.Vec2

	// UseVertexColor reports whether per-vertex colors are multiplied into the base color.
	//
	// Returns:
	//   - bool: true if vertex colors are used
	UseVertexColor() bool

	// DoubleSided reports whether back faces are rendered.
	//
	// Returns:
	//   - bool: true if both faces are rendered
	DoubleSided() bool

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	// Defaults to PipelineLit or PipelineLitDoubleSided depending on DoubleSided.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// GPU converts the material into its uniform representation.
	//
	// Returns:
	//   - GPUMaterial: the GPU-aligned material parameters
	GPU() GPUMaterial
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without options the material is opaque white, untextured and single-sided.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:     mgl32.Vec4{1, 1, 1, 1},
		textureRepeat: mgl32.Vec2{1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.pipelineKey == "" {
		m.pipelineKey = PipelineLit
		if m.doubleSided {
			m.pipelineKey = PipelineLitDoubleSided
		}
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() mgl32.Vec4 {
	return m.baseColor
}

func (m *material) Texture() *common.TextureStagingData {
	return m.texture
}

func (m *material) Sampler() common.SamplerStagingData {
	return m.sampler
}

func (m *material) TextureRepeat() mgl32.Vec2 {
	return m.textureRepeat
}

func (m *material) UseVertexColor() bool {
	return m.useVertexColor
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) GPU() GPUMaterial {
	g := GPUMaterial{
		BaseColor:     m.baseColor,
		TextureRepeat: m.textureRepeat,
	}
	if m.texture != nil {
		g.UseTexture = 1
	}
	if m.useVertexColor {
		g.UseVertexColor = 1
	}
	return g
}
