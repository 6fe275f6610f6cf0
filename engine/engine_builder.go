package engine

import (
	"log/slog"
	"time"
)

// EngineBuilderOption configures the engine in NewEngine.
type EngineBuilderOption func(*engine)

// WithProfiling logs frame timings every second when enabled.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the fixed simulation rate. tps <= 0 selects 60.
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		e.tickRate = tickDuration(tps)
	}
}

// WithMaxCatchUpTicks caps the ticks one loop iteration runs to catch up after a stall.
// The floor is 1; the default is 8.
func WithMaxCatchUpTicks(n int) EngineBuilderOption {
	return func(e *engine) {
		e.maxCatchUpTicks = max(n, 1)
	}
}

// WithMaxTicks ends Run after n ticks. Zero, the default, runs until the window closes.
func WithMaxTicks(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxTicks = n
	}
}

// WithWindow sets the window polled each iteration. Without one the engine runs headless.
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers s under key. Scenes render in ascending key order.
//
// Parameters:
//   - key: the draw order
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: the option
func WithScene(key int, s Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithTickCallback sets the function run once per tick with the fixed step in seconds.
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithRenderFrameLimit caps rendered frames per second. 0 leaves rendering uncapped.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.SetRenderFrameLimit(fps)
	}
}

// WithLogger replaces slog.Default. A nil logger is ignored.
func WithLogger(l *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock replaces time.Now, letting tests drive the loop.
func WithClock(now func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		e.now = now
	}
}
