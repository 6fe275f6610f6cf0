package bind_group_provider

import "testing"

func TestNewBindGroupProvider_Empty(t *testing.T) {
	p := NewBindGroupProvider("Ball Mesh")

	if p.Label() != "Ball Mesh" {
		t.Errorf("Label() = %q, want %q", p.Label(), "Ball Mesh")
	}
	if p.MeshReady() {
		t.Error("MeshReady() = true on an empty provider")
	}
	if p.BindGroup() != nil || p.BindGroupLayout() != nil {
		t.Error("expected no bind group before InitBindGroup")
	}
	for _, binding := range []int{FrameUniformBinding, ObjectUniformBinding, TextureBinding, SamplerBinding} {
		if p.Buffer(binding) != nil || p.TextureView(binding) != nil || p.Sampler(binding) != nil {
			t.Errorf("binding %d: expected no resources", binding)
		}
	}
}

func TestBindGroupProvider_ReleaseTwice(t *testing.T) {
	p := NewBindGroupProvider("Frame",
		WithTextureView(ShadowMapBinding, nil),
		WithSampler(ShadowSamplerBinding, nil),
	)
	p.Release()
	p.Release()

	if p.IndexCount() != 0 {
		t.Errorf("IndexCount() = %d after Release, want 0", p.IndexCount())
	}
}

func TestBindGroupProvider_SetMeshWithoutBuffers(t *testing.T) {
	p := NewBindGroupProvider("Empty Mesh")
	p.SetMesh(nil, nil, 36)

	if p.MeshReady() {
		t.Error("MeshReady() = true without buffers")
	}
	if p.IndexCount() != 36 {
		t.Errorf("IndexCount() = %d, want 36", p.IndexCount())
	}
}
