package renderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
)

func (b *wgpuRendererBackendImpl) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) == 0 || len(indexData) == 0 || indexCount <= 0 {
		return fmt.Errorf("%s: empty mesh", provider.Label())
	}
	vertices, err := b.uploadBuffer(provider.Label()+" vertices", wgpu.BufferUsageVertex, vertexData)
	if err != nil {
		return err
	}
	indices, err := b.uploadBuffer(provider.Label()+" indices", wgpu.BufferUsageIndex, indexData)
	if err != nil {
		vertices.Release()
		return err
	}
	provider.SetMesh(vertices, indices, indexCount)
	return nil
}

// uploadBuffer creates a buffer sized to data and queues the write. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) uploadBuffer(label string, usage wgpu.BufferUsage, data []byte) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// InitBindGroup builds the bind group for descriptor. Texture and sampler entries must
// already be on the provider; uniform buffers are created on demand at MinBindingSize.
func (b *wgpuRendererBackendImpl) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}
	layout, err := b.bindGroupLayout(descriptor)
	if err != nil {
		return err
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(descriptor.Entries))
	for _, e := range descriptor.Entries {
		entry, err := b.bindGroupEntry(provider, e)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label(),
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%s: create bind group: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bg, layout)
	return nil
}

// bindGroupEntry resolves one layout entry against the provider's resources. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) bindGroupEntry(provider bind_group_provider.BindGroupProvider, e wgpu.BindGroupLayoutEntry) (wgpu.BindGroupEntry, error) {
	binding := int(e.Binding)
	switch {
	case e.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
		tv := provider.TextureView(binding)
		if tv == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: binding %d has no texture", provider.Label(), binding)
		}
		return wgpu.BindGroupEntry{Binding: e.Binding, TextureView: tv}, nil

	case e.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
		s := provider.Sampler(binding)
		if s == nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: binding %d has no sampler", provider.Label(), binding)
		}
		return wgpu.BindGroupEntry{Binding: e.Binding, Sampler: s}, nil
	}

	buf := provider.Buffer(binding)
	if buf == nil {
		var err error
		buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("%s uniform %d", provider.Label(), binding),
			Size:  e.Buffer.MinBindingSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return wgpu.BindGroupEntry{}, fmt.Errorf("%s: create uniform %d: %w", provider.Label(), binding, err)
		}
		provider.SetBuffer(binding, buf)
	}
	return wgpu.BindGroupEntry{Binding: e.Binding, Buffer: buf, Size: wgpu.WholeSize}, nil
}

func (b *wgpuRendererBackendImpl) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := stagingData.Validate(); err != nil {
		return fmt.Errorf("%s: %w", provider.Label(), err)
	}
	size := wgpu.Extent3D{Width: stagingData.Width, Height: stagingData.Height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         provider.Label() + " texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("%s: create texture: %w", provider.Label(), err)
	}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: tex, Aspect: wgpu.TextureAspectAll},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{BytesPerRow: stagingData.Width * 4, RowsPerImage: stagingData.Height},
		&size,
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("%s: create texture view: %w", provider.Label(), err)
	}
	provider.SetTexture(bindingKey, tex, view)
	return nil
}

func (b *wgpuRendererBackendImpl) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	desc := samplerStagingData.Descriptor(provider.Label() + " sampler")
	s, err := b.device.CreateSampler(&desc)
	if err != nil {
		return fmt.Errorf("%s: create sampler: %w", provider.Label(), err)
	}
	provider.SetSampler(bindingKey, s)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if buf := w.Provider.Buffer(w.Binding); buf != nil {
			b.queue.WriteBuffer(buf, w.Offset, w.Data)
		}
	}
}

func (b *wgpuRendererBackendImpl) CreateShadowTarget(size int) (*wgpu.TextureView, *wgpu.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Shadow map",
		Size:          wgpu.Extent3D{Width: uint32(size), Height: uint32(size), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        shadowDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create shadow map: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, nil, fmt.Errorf("create shadow map view: %w", err)
	}
	return view, tex, nil
}

// CreateComparisonSampler returns the clamped, linearly filtered comparison sampler the lit
// shader uses for 2x2 hardware PCF.
func (b *wgpuRendererBackendImpl) CreateComparisonSampler() (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	desc := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MipmapFilter: wgpu.MipmapFilterModeNearest,
		Compare:      wgpu.CompareFunctionLess,
	}.Descriptor("Shadow comparison sampler")
	s, err := b.device.CreateSampler(&desc)
	if err != nil {
		return nil, fmt.Errorf("create comparison sampler: %w", err)
	}
	return s, nil
}
