package window

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ErrClosed is returned by Close on a window that was never opened or is already closed.
var ErrClosed = errors.New("window: not open")

// Window is the desktop window the garden is presented in. It reports keyboard and
// resize events through callbacks that run on the goroutine calling PollEvents.
//
// Width, Height and the resize callback use logical (screen coordinate) sizes; multiply by
// PixelRatio for device pixels. Escape always requests a close.
type Window interface {
	// SetResizeCallback sets the function called when the logical or framebuffer size changes.
	//
	// Parameters:
	//   - callback: receives the new logical width and height
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the function called on key press and key repeat.
	//
	// Parameters:
	//   - callback: receives the GLFW key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called on key release.
	//
	// Parameters:
	//   - callback: receives the GLFW key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns the platform surface descriptor WebGPU presents to, or nil
	// once the window is closed.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and no close was requested.
	IsRunning() bool

	// PollEvents processes pending events without blocking.
	PollEvents()

	// Close destroys the window.
	//
	// Returns:
	//   - error: ErrClosed if the window is not open
	Close() error

	// Width returns the logical client width.
	Width() int

	// Height returns the logical client height.
	Height() int

	// PixelRatio returns framebuffer pixels per screen coordinate. It is 1 wherever the
	// platform already reports window sizes in pixels.
	PixelRatio() float32
}

// platform is the native window behind an engineWindow.
type platform interface {
	surfaceDescriptor() *wgpu.SurfaceDescriptor
	shouldClose() bool
	pollEvents()
	destroy()
}

type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int

	width, height int
	pixelRatio    float32

	// plat is nil before open and after Close.
	plat           platform
	closeRequested bool

	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow opens a GLFW window. Defaults are a 1280x720 "oxy-garden" window resizable
// between 320x240 and 3840x2160.
//
// Parameters:
//   - options: title, size and size limit overrides
//
// Returns:
//   - Window: the open window
//   - error: if GLFW could not be initialized or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	plat, err := openGLFW(w)
	if err != nil {
		return nil, err
	}
	w.plat = plat
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:      "oxy-garden",
		minWidth:   320,
		minHeight:  240,
		maxWidth:   3840,
		maxHeight:  2160,
		width:      1280,
		height:     720,
		pixelRatio: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.plat == nil {
		return nil
	}
	return w.plat.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.plat != nil && !w.closeRequested && !w.plat.shouldClose()
}

func (w *engineWindow) PollEvents() {
	if w.plat != nil {
		w.plat.pollEvents()
	}
}

func (w *engineWindow) Close() error {
	if w.plat == nil {
		return ErrClosed
	}
	w.plat.destroy()
	w.plat = nil
	w.closeRequested = true
	return nil
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) PixelRatio() float32 {
	return w.pixelRatio
}

// dispatchKey forwards a key event to the callbacks. Escape is consumed as a close request.
func (w *engineWindow) dispatchKey(code uint32, pressed bool) {
	if code == uint32(glfw.KeyEscape) {
		if pressed {
			w.closeRequested = true
		}
		return
	}
	cb := w.onKeyUp
	if pressed {
		cb = w.onKeyDown
	}
	if cb != nil {
		cb(code)
	}
}

// updateMetrics records the logical and framebuffer sizes and notifies the resize
// callback. The pixel ratio is derived from the two widths, never from the content scale.
func (w *engineWindow) updateMetrics(width, height, fbWidth, fbHeight int) {
	if width > 0 && fbWidth > 0 {
		w.pixelRatio = float32(fbWidth) / float32(width)
	}
	w.notifyResize(width, height)
}

// notifyResize stores the new logical size and forwards it to the resize callback.
func (w *engineWindow) notifyResize(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
