package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

type bindGroupProvider struct {
	label string

	bindGroup *wgpu.BindGroup
	// layout is borrowed from the backend layout cache and never released here.
	layout *wgpu.BindGroupLayout

	buffers      map[int]*wgpu.Buffer
	textures     map[int]*wgpu.Texture
	textureViews map[int]*wgpu.TextureView
	samplers     map[int]*wgpu.Sampler

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

// BindGroupProvider owns the GPU resources behind one bind group or one mesh.
//
// The scene keeps three kinds: a frame provider (camera, light and shadow map at group 0),
// one object provider per game object (uniform, texture and sampler at group 1) and one
// mesh provider per model (vertex and index buffers). Every resource handed to a provider
// is released with it.
type BindGroupProvider interface {
	// Label prefixes the debug label of every GPU object made for the provider.
	Label() string

	// BindGroup is nil until Renderer.InitBindGroup.
	BindGroup() *wgpu.BindGroup
	// BindGroupLayout is borrowed from the renderer's layout cache.
	BindGroupLayout() *wgpu.BindGroupLayout

	Buffer(binding int) *wgpu.Buffer
	TextureView(binding int) *wgpu.TextureView
	Sampler(binding int) *wgpu.Sampler

	VertexBuffer() *wgpu.Buffer
	IndexBuffer() *wgpu.Buffer
	IndexCount() int
	// MeshReady reports whether both mesh buffers exist and there is something to draw.
	MeshReady() bool

	// The setters below take ownership and release whatever they replace.

	SetBindGroup(bg *wgpu.BindGroup, layout *wgpu.BindGroupLayout)
	SetBuffer(binding int, buf *wgpu.Buffer)
	// SetTexture stores a view and, when the provider should own it, its texture.
	// Pass a nil tex for views onto textures owned elsewhere.
	SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView)
	SetSampler(binding int, s *wgpu.Sampler)
	SetMesh(vertices, indices *wgpu.Buffer, indexCount int)

	// Release frees everything the provider holds. It may be called again.
	Release()
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. options hand it resources that
// already exist, such as the shadow map view.
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textures:     make(map[int]*wgpu.Texture),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string                             { return p.label }
func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup                { return p.bindGroup }
func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout    { return p.layout }
func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer           { return p.buffers[binding] }
func (p *bindGroupProvider) TextureView(binding int) *wgpu.TextureView { return p.textureViews[binding] }
func (p *bindGroupProvider) Sampler(binding int) *wgpu.Sampler         { return p.samplers[binding] }
func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer                { return p.vertexBuffer }
func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer                 { return p.indexBuffer }
func (p *bindGroupProvider) IndexCount() int                           { return p.indexCount }

func (p *bindGroupProvider) MeshReady() bool {
	return p.vertexBuffer != nil && p.indexBuffer != nil && p.indexCount > 0
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup, layout *wgpu.BindGroupLayout) {
	if p.bindGroup != nil && p.bindGroup != bg {
		p.bindGroup.Release()
	}
	p.bindGroup = bg
	p.layout = layout
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if old := p.buffers[binding]; old != nil && old != buf {
		old.Release()
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetTexture(binding int, tex *wgpu.Texture, view *wgpu.TextureView) {
	if old := p.textureViews[binding]; old != nil && old != view {
		old.Release()
	}
	if old := p.textures[binding]; old != nil && old != tex {
		old.Release()
	}
	p.textureViews[binding] = view
	if tex != nil {
		p.textures[binding] = tex
	} else {
		delete(p.textures, binding)
	}
}

func (p *bindGroupProvider) SetSampler(binding int, s *wgpu.Sampler) {
	if old := p.samplers[binding]; old != nil && old != s {
		old.Release()
	}
	p.samplers[binding] = s
}

func (p *bindGroupProvider) SetMesh(vertices, indices *wgpu.Buffer, indexCount int) {
	if p.vertexBuffer != nil && p.vertexBuffer != vertices {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != indices {
		p.indexBuffer.Release()
	}
	p.vertexBuffer = vertices
	p.indexBuffer = indices
	p.indexCount = indexCount
}

func (p *bindGroupProvider) Release() {
	// The bind group references the views, samplers and buffers, so it goes first.
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	p.layout = nil

	for i, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, i)
	}
	for i, tex := range p.textures {
		if tex != nil {
			tex.Release()
		}
		delete(p.textures, i)
	}
	for i, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, i)
	}
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}

	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.indexCount = 0
}
