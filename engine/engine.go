package engine

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-garden/engine/camera"
	"github.com/Carmen-Shannon/oxy-garden/engine/profiler"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer"
)

// MaxPixelRatio caps the device pixel ratio used to size the render buffer.
const MaxPixelRatio float32 = 2

// Window is the part of the platform window the engine drives.
type Window interface {
	IsRunning() bool
	PollEvents()
	SetResizeCallback(callback func(width, height int))
	Width() int
	Height() int
	PixelRatio() float32
}

// Scene is the part of a scene the engine renders each frame.
type Scene interface {
	Active() bool
	Camera() camera.Camera
	Renderer() renderer.Renderer
	Prepare()
	RenderShadows() error
	DrawCalls() error
}

// engine implements the Engine interface.
// Everything runs on the goroutine that calls Run: event polling, simulation ticks and rendering.
type engine struct {
	window Window
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickRate         time.Duration
	maxCatchUpTicks  int
	accumulator      time.Duration
	ticks            uint64
	maxTicks         uint64 // 0 = unbounded
	tickCallback     func(deltaTime float32)
	renderCallback   func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	scenes map[int]Scene

	now  func() time.Time
	quit bool
}

// Engine is the main entry point for the engine.
// It runs a fixed-timestep scheduler: each loop iteration polls window events, runs
// zero or more simulation ticks for the elapsed time and renders one frame.
type Engine interface {
	// Window returns the window the engine polls, or nil when headless.
	//
	// Returns:
	//   - Window: the window instance
	Window() Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the simulation tick rate in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// TickRate returns the duration of one simulation tick.
	//
	// Returns:
	//   - time.Duration: the fixed timestep
	TickRate() time.Duration

	// SetTickCallback registers the function called each simulation tick.
	// Use this for physics, input processing and animation updates.
	//
	// Parameters:
	//   - callback: function receiving the fixed timestep in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the frame's elapsed time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - Scene: the scene at the key, or nil if not found
	Scene(key int) Scene

	// Ticks returns the number of simulation ticks run so far.
	Ticks() uint64

	// Run runs the loop until the window closes, Quit is called or the tick limit is reached.
	//
	// Returns:
	//   - error: an error if the engine has no window
	Run() error

	// RunTicks runs n simulation ticks back to back without a window or rendering.
	//
	// Parameters:
	//   - n: the number of ticks to run
	RunTicks(n int)

	// Resize applies a new logical window size: every scene camera gets aspect width/height
	// and every renderer is resized to the size scaled by the capped pixel ratio.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	Resize(width, height int)

	// Quit stops Run at the end of the current iteration. Safe to call multiple times.
	Quit()
}

// ErrNoWindow is returned by Run for an engine created without a window.
var ErrNoWindow = errors.New("engine: no window; use RunTicks for headless runs")

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes:          make(map[int]Scene),
		tickRate:        time.Second / 60,
		maxCatchUpTicks: 8,
		logger:          slog.Default(),
		now:             time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger), profiler.WithClock(e.now))

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) Window() Window {
	return e.window
}

// BufferSize returns the render buffer size for a logical size and device pixel ratio.
// The ratio is capped at MaxPixelRatio; a non-positive ratio counts as 1.
//
// Parameters:
//   - width: logical width
//   - height: logical height
//   - pixelRatio: device pixels per logical unit
//
// Returns:
//   - int: buffer width in pixels
//   - int: buffer height in pixels
func BufferSize(width, height int, pixelRatio float32) (int, int) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	ratio := min(pixelRatio, MaxPixelRatio)
	return int(float32(width) * ratio), int(float32(height) * ratio)
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized: keep the last configuration.
		return
	}
	ratio := float32(1)
	if e.window != nil {
		ratio = e.window.PixelRatio()
	}
	bufW, bufH := BufferSize(width, height, ratio)
	aspect := float32(width) / float32(height)

	for _, s := range e.scenes {
		if c := s.Camera(); c != nil {
			c.SetAspect(aspect)
		}
		if r := s.Renderer(); r != nil {
			if err := r.Resize(bufW, bufH); err != nil {
				e.logger.Error("resize renderer", slog.Int("width", bufW), slog.Int("height", bufH), slog.Any("err", err))
			}
		}
	}
	e.logger.Debug("resized", slog.Int("width", width), slog.Int("height", height), slog.Int("buffer_width", bufW), slog.Int("buffer_height", bufH))
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}
	e.quit = false

	last := e.now()
	for !e.quit && e.window.IsRunning() {
		frameStart := e.now()
		e.window.PollEvents()

		elapsed := frameStart.Sub(last)
		last = frameStart
		e.advance(elapsed)
		if e.quit {
			break
		}

		e.renderFrame()
		if e.renderCallback != nil {
			e.renderCallback(float32(elapsed.Seconds()))
		}
		if e.profilingEnabled {
			e.profiler.Frame()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

func (e *engine) RunTicks(n int) {
	e.quit = false
	for range n {
		if e.quit {
			return
		}
		e.tick()
	}
}

// advance adds elapsed to the accumulator and runs one tick per whole timestep. At most
// maxCatchUpTicks run per call; time beyond that is dropped so a stall cannot snowball.
//
// Returns:
//   - int: the number of ticks run
func (e *engine) advance(elapsed time.Duration) int {
	e.accumulator += elapsed
	n := 0
	for e.accumulator >= e.tickRate && !e.quit {
		if n == e.maxCatchUpTicks {
			e.accumulator = 0
			break
		}
		e.tick()
		e.accumulator -= e.tickRate
		n++
	}
	return n
}

func (e *engine) tick() {
	if e.tickCallback != nil {
		e.tickCallback(float32(e.tickRate.Seconds()))
	}
	e.ticks++
	if e.profilingEnabled {
		e.profiler.Tick()
	}
	if e.maxTicks > 0 && e.ticks >= e.maxTicks {
		e.quit = true
	}
}

// renderFrame draws all active scenes in ascending z-index order within one render pass
// owned by the first active scene's renderer. A frame whose surface cannot be acquired is skipped.
func (e *engine) renderFrame() {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return
	}
	frameRenderer := active[0].Renderer()
	if frameRenderer == nil {
		return
	}

	for _, s := range active {
		s.Prepare()
		if err := s.RenderShadows(); err != nil {
			e.logger.Debug("shadow pass", slog.Any("err", err))
		}
	}

	if err := frameRenderer.BeginFrame(); err != nil {
		e.logger.Debug("frame skipped", slog.Any("err", err))
		return
	}
	for _, s := range active {
		if err := s.DrawCalls(); err != nil {
			e.logger.Debug("draw calls", slog.Any("err", err))
		}
	}
	if err := frameRenderer.EndFrame(); err != nil {
		e.logger.Debug("frame dropped", slog.Any("err", err))
		return
	}
	frameRenderer.Present()
}

func (e *engine) Quit() {
	e.quit = true
}

func (e *engine) Ticks() uint64 {
	return e.ticks
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(tps float64) {
	e.tickRate = tickDuration(tps)
}

func (e *engine) TickRate() time.Duration {
	return e.tickRate
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) Scene {
	return e.scenes[key]
}

// tickDuration converts a rate in ticks per second into a timestep, defaulting to 60.
func tickDuration(tps float64) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(float64(time.Second) / tps)
}
