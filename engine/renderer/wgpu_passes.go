package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

// errPassOpen is returned when a pass is begun while the previous one of its kind is still open.
var errPassOpen = errors.New("render pass already open")

// passRecorder is one command encoder with one open render pass.
type passRecorder struct {
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

func beginPass(device *wgpu.Device, label string, desc *wgpu.RenderPassDescriptor) (*passRecorder, error) {
	enc, err := device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("%s: create encoder: %w", label, err)
	}
	return &passRecorder{encoder: enc, pass: enc.BeginRenderPass(desc)}, nil
}

// draw records an indexed draw. Meshes or bind groups that were never uploaded are skipped.
func (r *passRecorder) draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) {
	if p.Pipeline() == nil || mesh == nil || !mesh.MeshReady() {
		return
	}
	for _, g := range groups {
		if g == nil || g.BindGroup() == nil {
			return
		}
	}
	r.pass.SetPipeline(p.Pipeline())
	for i, g := range groups {
		r.pass.SetBindGroup(uint32(i), g.BindGroup(), nil)
	}
	r.pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	r.pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
}

// submit ends the pass and submits the recorded commands.
func (r *passRecorder) submit(queue *wgpu.Queue) error {
	r.pass.End()
	r.pass.Release()
	defer r.encoder.Release()

	cmd, err := r.encoder.Finish(nil)
	if err != nil {
		return err
	}
	queue.Submit(cmd)
	cmd.Release()
	return nil
}

// abort drops the recorded commands.
func (r *passRecorder) abort() {
	r.pass.End()
	r.pass.Release()
	r.encoder.Release()
}

func (b *wgpuRendererBackendImpl) BeginShadowPass(depthView *wgpu.TextureView) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadow != nil {
		return errPassOpen
	}
	rec, err := beginPass(b.device, "Shadow pass", &wgpu.RenderPassDescriptor{
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	if err != nil {
		return err
	}
	b.shadow = rec
	return nil
}

func (b *wgpuRendererBackendImpl) EndShadowPass() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shadow == nil {
		return nil
	}
	err := b.shadow.submit(b.queue)
	b.shadow = nil
	return err
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mainPass == nil {
		return errors.New("surface is not configured")
	}
	if b.frame != nil {
		return errPassOpen
	}
	// A surface texture still held means Present was skipped; acquiring another fails validation.
	if b.frameSurface != nil {
		return errors.New("previous frame not presented")
	}

	surfaceTex, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTex.CreateView(nil)
	if err != nil {
		surfaceTex.Release()
		return err
	}
	if b.msaa != nil {
		b.mainPass.ColorAttachments[0].ResolveTarget = view
	} else {
		b.mainPass.ColorAttachments[0].View = view
	}

	rec, err := beginPass(b.device, "Main pass", b.mainPass)
	if err != nil {
		view.Release()
		surfaceTex.Release()
		return err
	}
	b.frame = rec
	b.frameSurface = surfaceTex
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec := b.frame
	if p.Type() == pipeline.PipelineTypeShadow {
		rec = b.shadow
	}
	if rec != nil {
		rec.draw(p, mesh, groups)
	}
}

// EndFrame submits the main pass. On failure the surface texture is dropped and Present
// becomes a no-op for this frame.
func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return nil
	}
	err := b.frame.submit(b.queue)
	b.frame = nil
	if err != nil {
		b.releaseFrameSurface()
	}
	return err
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameSurface()
}

// releaseFrameSurface drops the acquired swapchain texture. Callers hold b.mu.
func (b *wgpuRendererBackendImpl) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}
