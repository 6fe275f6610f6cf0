package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/pipeline"
)

func TestParseMSAA(t *testing.T) {
	tests := []struct {
		in      int
		want    MSAASampleCount
		wantErr bool
	}{
		{1, MSAAOff, false},
		{4, MSAA4x, false},
		{8, MSAA8x, false},
		{16, MSAA16x, false},
		{0, 0, true},
		{2, 0, true},
		{32, 0, true},
		{-4, 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMSAA(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMSAA(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMSAA(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPresentMode(t *testing.T) {
	if PresentModeFor(true) != PresentModeVSync || PresentModeFor(false) != PresentModeUncapped {
		t.Fatal("PresentModeFor mapped vsync flag wrongly")
	}
	if PresentModeVSync.wgpuMode() != wgpu.PresentModeFifo {
		t.Error("vsync should present FIFO")
	}
	if PresentModeUncapped.wgpuMode() != wgpu.PresentModeImmediate {
		t.Error("uncapped should present immediately")
	}
	if PresentMode(7).wgpuMode() != wgpu.PresentModeFifo {
		t.Error("unknown modes should fall back to FIFO")
	}
	if PresentModeUncapped.String() != "uncapped" {
		t.Errorf("String() = %q", PresentModeUncapped.String())
	}
}

func TestBuilderOptionsFillSettings(t *testing.T) {
	r := &renderer{settings: DefaultSettings()}
	clear := wgpu.Color{R: 0.5, G: 0.7, B: 0.9, A: 1}
	lit := pipeline.NewLitPipeline(pipeline.KeyLit, wgpu.CullModeBack)

	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAA8x),
		WithClearColor(clear),
		WithForceSoftwareRenderer(true),
		WithPipelines(lit),
	} {
		opt(r)
	}

	s := r.settings
	if s.PresentMode != PresentModeUncapped || s.MSAA != MSAA8x || s.ClearColor != clear || !s.ForceFallbackAdapter {
		t.Errorf("settings not applied: %+v", s)
	}
	if len(s.Pipelines) != 1 || s.Pipelines[0] != lit {
		t.Errorf("Pipelines = %v, want [lit]", s.Pipelines)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.PresentMode != PresentModeVSync || s.MSAA != MSAA4x || !s.MSAA.Valid() {
		t.Errorf("DefaultSettings() = %+v", s)
	}
}
