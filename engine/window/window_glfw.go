package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform backs a Window with a GLFW window that has no client API, since WebGPU
// brings its own.
type glfwPlatform struct {
	win *glfw.Window
}

var _ platform = &glfwPlatform{}

// openGLFW creates the GLFW window for w and routes its events into w.
// GLFW must be driven from one OS thread, so the calling goroutine is locked to it.
func openGLFW(w *engineWindow) (*glfwPlatform, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create glfw window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyUnknown {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			w.dispatchKey(uint32(key), true)
		case glfw.Release:
			w.dispatchKey(uint32(key), false)
		}
	})
	// The framebuffer callback also fires when the window moves to a display of a
	// different density, where the logical size stays the same.
	win.SetFramebufferSizeCallback(func(win *glfw.Window, fbWidth, fbHeight int) {
		width, height := win.GetSize()
		w.updateMetrics(width, height, fbWidth, fbHeight)
	})

	width, height := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.updateMetrics(width, height, fbWidth, fbHeight)
	return &glfwPlatform{win: win}, nil
}

func (p *glfwPlatform) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(p.win)
}

func (p *glfwPlatform) shouldClose() bool {
	return p.win.ShouldClose()
}

func (p *glfwPlatform) pollEvents() {
	glfw.PollEvents()
}

func (p *glfwPlatform) destroy() {
	p.win.Destroy()
	glfw.Terminate()
}
