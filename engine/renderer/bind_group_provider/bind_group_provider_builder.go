package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption hands a resource to a BindGroupProvider at construction.
// The provider takes ownership and releases the resource with itself.
type BindGroupProviderOption func(*bindGroupProvider)

// WithTextureView hands over a view whose texture is owned elsewhere, such as the shadow
// map the scene renders into and samples from.
//
// Parameters:
//   - binding: the binding index
//   - tv: the texture view
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithTextureView(binding int, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetTexture(binding, nil, tv)
	}
}

// WithSampler hands over an existing sampler.
//
// Parameters:
//   - binding: the binding index
//   - s: the sampler
//
// Returns:
//   - BindGroupProviderOption: option function to apply
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.SetSampler(binding, s)
	}
}
