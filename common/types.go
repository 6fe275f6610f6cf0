// Package common holds the math, input and staging helpers shared across the engine.
package common

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData is a tightly packed RGBA8 image waiting to be uploaded.
type TextureStagingData struct {
	Pixels []byte
	Width  uint32
	Height uint32
}

// Validate checks that Pixels holds exactly Width*Height RGBA texels.
func (t TextureStagingData) Validate() error {
	if t.Width == 0 || t.Height == 0 {
		return fmt.Errorf("texture is %dx%d", t.Width, t.Height)
	}
	if want := int(t.Width) * int(t.Height) * 4; len(t.Pixels) != want {
		return fmt.Errorf("texture has %d bytes, want %d for %dx%d RGBA", len(t.Pixels), want, t.Width, t.Height)
	}
	return nil
}

// SamplerStagingData describes a sampler waiting to be created. Zero fields mean repeat
// addressing, linear filtering and the full LOD range.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	// Compare makes this a comparison sampler, as used for shadow maps.
	Compare       wgpu.CompareFunction
	MaxAnisotropy uint16
	// Nearest forces nearest filtering for every stage, so checker edges stay crisp.
	Nearest bool
}

// Descriptor resolves the defaults into a sampler descriptor.
//
// Parameters:
//   - label: the debug label
//
// Returns:
//   - wgpu.SamplerDescriptor: the descriptor
func (s SamplerStagingData) Descriptor(label string) wgpu.SamplerDescriptor {
	d := wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  Coalesce(s.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  Coalesce(s.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  Coalesce(s.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     Coalesce(s.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     Coalesce(s.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  Coalesce(s.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   s.LodMinClamp,
		LodMaxClamp:   Coalesce(s.LodMaxClamp, 32),
		MaxAnisotropy: Coalesce(s.MaxAnisotropy, 1),
		Compare:       s.Compare,
	}
	if s.Nearest {
		d.MagFilter = wgpu.FilterModeNearest
		d.MinFilter = wgpu.FilterModeNearest
		d.MipmapFilter = wgpu.MipmapFilterModeNearest
	}
	return d
}
