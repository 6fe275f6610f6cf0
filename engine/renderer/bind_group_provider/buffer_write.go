package bind_group_provider

// Binding indices shared by the Go-side layouts and the WGSL shaders.
const (
	// group(0): per-frame resources
	FrameUniformBinding  = 0
	ShadowMapBinding     = 1
	ShadowSamplerBinding = 2

	// group(1): per-object resources
	ObjectUniformBinding = 0
	TextureBinding       = 1
	SamplerBinding       = 2

	// group(0) of the shadow pipeline
	ShadowUniformBinding = 0
)

// BufferWrite describes a single GPU buffer write operation targeting a specific binding
// on a BindGroupProvider at a given byte offset.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
