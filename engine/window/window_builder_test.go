package window

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/Carmen-Shannon/oxy-garden/engine"
)

// fakePlatform stands in for GLFW so the window logic runs without a display.
type fakePlatform struct {
	closing   bool
	polls     int
	destroyed bool
}

func (f *fakePlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (f *fakePlatform) shouldClose() bool                           { return f.closing }
func (f *fakePlatform) pollEvents()                                 { f.polls++ }
func (f *fakePlatform) destroy()                                    { f.destroyed = true }

func TestNewEngineWindowDefaults(t *testing.T) {
	w := newEngineWindow(WithTitle("garden"))
	if w.title != "garden" || w.width != 1280 || w.height != 720 || w.PixelRatio() != 1 {
		t.Fatalf("window = %+v", w)
	}
}

func TestWithSizeKeepsDefaultsForNonPositive(t *testing.T) {
	w := newEngineWindow(WithSize(0, -5))
	if w.width != 1280 || w.height != 720 {
		t.Fatalf("size = %dx%d, want 1280x720", w.width, w.height)
	}
	WithSize(800, 600)(w)
	if w.width != 800 || w.height != 600 {
		t.Fatalf("size = %dx%d, want 800x600", w.width, w.height)
	}
}

func TestWithSizeLimitsMapsUnsetToDontCare(t *testing.T) {
	w := newEngineWindow(WithSizeLimits(320, 0, 0, 1080))
	if w.minWidth != 320 || w.minHeight != glfw.DontCare || w.maxWidth != glfw.DontCare || w.maxHeight != 1080 {
		t.Fatalf("limits = %d,%d,%d,%d", w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	}
}

func TestNotifyResizeUpdatesSize(t *testing.T) {
	w := newEngineWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })
	w.notifyResize(640, 480)
	if w.Width() != 640 || w.Height() != 480 || gotW != 640 || gotH != 480 {
		t.Fatalf("size %dx%d, callback %dx%d", w.Width(), w.Height(), gotW, gotH)
	}
}

func TestUpdateMetricsDerivesRatioFromFramebuffer(t *testing.T) {
	tests := []struct {
		name             string
		width, fbWidth   int
		height, fbHeight int
		wantRatio        float32
		wantBufferWidth  int
	}{
		// X11 and Windows at 1.5 content scale: sizes are already pixels.
		{name: "pixel sized window", width: 1280, fbWidth: 1280, height: 720, fbHeight: 720, wantRatio: 1, wantBufferWidth: 1280},
		{name: "retina", width: 1280, fbWidth: 2560, height: 720, fbHeight: 1440, wantRatio: 2, wantBufferWidth: 2560},
		{name: "dense display capped", width: 1000, fbWidth: 3000, height: 500, fbHeight: 1500, wantRatio: 3, wantBufferWidth: 2000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newEngineWindow()
			w.plat = &fakePlatform{}
			var gotW int
			var ratioSeen float32
			w.SetResizeCallback(func(width, _ int) {
				gotW = width
				ratioSeen = w.PixelRatio()
			})

			w.updateMetrics(tt.width, tt.height, tt.fbWidth, tt.fbHeight)
			if gotW != tt.width || w.Width() != tt.width {
				t.Fatalf("logical width = %d (callback %d), want %d", w.Width(), gotW, tt.width)
			}
			if ratioSeen != tt.wantRatio {
				t.Errorf("ratio seen by callback = %v, want %v", ratioSeen, tt.wantRatio)
			}
			bufW, _ := engine.BufferSize(w.Width(), w.Height(), w.PixelRatio())
			if bufW != tt.wantBufferWidth {
				t.Errorf("buffer width = %d, want %d", bufW, tt.wantBufferWidth)
			}
		})
	}
}

func TestUpdateMetricsKeepsRatioWhenMinimized(t *testing.T) {
	w := newEngineWindow()
	w.updateMetrics(1280, 720, 2560, 1440)
	w.updateMetrics(0, 0, 0, 0)
	if w.PixelRatio() != 2 {
		t.Errorf("ratio = %v, want 2 kept across a zero size", w.PixelRatio())
	}
}

func TestDispatchKey(t *testing.T) {
	w := newEngineWindow()
	w.plat = &fakePlatform{}
	var down, up []uint32
	w.SetKeyDownCallback(func(c uint32) { down = append(down, c) })
	w.SetKeyUpCallback(func(c uint32) { up = append(up, c) })

	w.dispatchKey(uint32(glfw.KeyW), true)
	w.dispatchKey(uint32(glfw.KeyW), false)
	if len(down) != 1 || len(up) != 1 || down[0] != uint32(glfw.KeyW) {
		t.Fatalf("down = %v, up = %v", down, up)
	}

	if !w.IsRunning() {
		t.Fatal("window should run before Escape")
	}
	w.dispatchKey(uint32(glfw.KeyEscape), true)
	if w.IsRunning() {
		t.Fatal("Escape should stop the window")
	}
	if len(down) != 1 {
		t.Error("Escape should not reach the key callbacks")
	}
}

func TestPlatformLifecycle(t *testing.T) {
	w := newEngineWindow()
	fake := &fakePlatform{}
	w.plat = fake

	w.PollEvents()
	if fake.polls != 1 {
		t.Errorf("polls = %d, want 1", fake.polls)
	}
	fake.closing = true
	if w.IsRunning() {
		t.Error("window should stop when the platform asks to close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !fake.destroyed {
		t.Error("Close should destroy the platform window")
	}
	if err := w.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v, want ErrClosed", err)
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("closed window returned a surface descriptor")
	}
}

func TestUnopenedWindowIsNotRunning(t *testing.T) {
	w := newEngineWindow()
	if w.IsRunning() {
		t.Fatal("window without a platform reports running")
	}
	w.PollEvents()
	if err := w.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Close() = %v, want ErrClosed", err)
	}
}
