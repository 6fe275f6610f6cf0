package material

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	if m.BaseColor() != (mgl32.Vec4{1, 1, 1, 1}) {
		t.Errorf("base color = %v, want opaque white", m.BaseColor())
	}
	if m.Texture() != nil {
		t.Error("default material has a texture")
	}
	if m.PipelineKey() != PipelineLit {
		t.Errorf("pipeline key = %q, want %q", m.PipelineKey(), PipelineLit)
	}
	if m.TextureRepeat() != (mgl32.Vec2{1, 1}) {
		t.Errorf("texture repeat = %v, want 1,1", m.TextureRepeat())
	}
}

func TestPipelineKeySelection(t *testing.T) {
	tests := []struct {
		name string
		opts []MaterialBuilderOption
		want string
	}{
		{"single sided", nil, PipelineLit},
		{"double sided", []MaterialBuilderOption{WithDoubleSided(true)}, PipelineLitDoubleSided},
		{"explicit", []MaterialBuilderOption{WithDoubleSided(true), WithPipelineKey("custom")}, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewMaterial(tt.opts...).PipelineKey(); got != tt.want {
				t.Errorf("pipeline key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGPUMaterialFlags(t *testing.T) {
	tex := common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	m := NewMaterial(
		WithTexture(tex, common.SamplerStagingData{}),
		WithTextureRepeat(10, 10),
		WithVertexColor(true),
	)
	g := m.GPU()
	if g.UseTexture != 1 || g.UseVertexColor != 1 {
		t.Errorf("flags = %v/%v, want 1/1", g.UseTexture, g.UseVertexColor)
	}
	if g.TextureRepeat != (mgl32.Vec2{10, 10}) {
		t.Errorf("repeat = %v", g.TextureRepeat)
	}
	if got := len(g.Marshal()); got != g.Size() || got != 32 {
		t.Errorf("marshal = %d bytes, Size() = %d, want 32", got, g.Size())
	}

	plain := NewMaterial().GPU()
	if plain.UseTexture != 0 || plain.UseVertexColor != 0 {
		t.Errorf("untextured flags = %v/%v, want 0/0", plain.UseTexture, plain.UseVertexColor)
	}
}
