package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// attachment is a texture and the single view the passes render through.
type attachment struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
}

func (b *wgpuRendererBackendImpl) newAttachment(label string, width, height int, format wgpu.TextureFormat, samples uint32) (*attachment, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}
	return &attachment{tex: tex, view: view}, nil
}

func (a *attachment) release() {
	if a == nil {
		return
	}
	a.view.Release()
	a.tex.Release()
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}

	caps := b.surface.GetCapabilities(b.adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return errors.New("surface reports no supported formats")
	}
	format := caps.Formats[0]
	b.surfaceFormat = &format
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})

	b.msaa.release()
	b.depth.release()
	b.msaa, b.depth, b.mainPass = nil, nil, nil

	samples := uint32(b.sampleCount)
	var err error
	if samples > 1 {
		// Draws go to the multisampled target and resolve into the swapchain view.
		if b.msaa, err = b.newAttachment("MSAA color", width, height, format, samples); err != nil {
			return err
		}
	}
	// The depth target's sample count must match the color target's.
	if b.depth, err = b.newAttachment("Main depth", width, height, mainDepthFormat, samples); err != nil {
		return err
	}

	color := wgpu.RenderPassColorAttachment{
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: b.clearColor,
	}
	if b.msaa != nil {
		color.View = b.msaa.view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	b.mainPass = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}
