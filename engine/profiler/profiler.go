package profiler

import (
	"log/slog"
	"runtime"
	"time"
)

// Stats is one reporting window of the profiler.
type Stats struct {
	FPS         float64 // rendered frames per second
	TPS         float64 // simulation ticks per second
	HeapMB      float64 // live heap
	AllocRateMB float64 // heap allocation rate in MB/s
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64 // longest GC pause inside the window
	SysMB       float64
}

// Profiler tracks frame rate, tick rate and memory statistics for performance monitoring.
// Outputs one structured log record per interval.
type Profiler struct {
	frameCount     int
	tickCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logger *slog.Logger
	now    func() time.Time
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets the reporting interval. Defaults to one second.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger stats are written to. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options applied in order
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		logger:         slog.Default(),
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick records one simulation tick.
func (p *Profiler) Tick() {
	p.tickCount++
}

// Frame should be called once per rendered frame. When the update interval has elapsed
// it logs the window's statistics and starts a new window.
//
// Returns:
//   - Stats: the statistics of the window that just closed
//   - bool: true if stats were logged this frame, false otherwise
func (p *Profiler) Frame() (Stats, bool) {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	st := Stats{
		FPS:    float64(p.frameCount) / elapsed.Seconds(),
		TPS:    float64(p.tickCount) / elapsed.Seconds(),
		HeapMB: float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:  float64(p.memStats.Sys) / 1024 / 1024,
		NumGC:  p.memStats.NumGC,
	}

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	st.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if gcCount := st.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		st.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			st.MaxPauseUs = max(st.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("profiler",
		slog.Float64("fps", round2(st.FPS)),
		slog.Float64("tps", round2(st.TPS)),
		slog.Float64("heap_mb", round2(st.HeapMB)),
		slog.Float64("alloc_mb_s", round2(st.AllocRateMB)),
		slog.Any("gc", st.NumGC),
		slog.Uint64("gc_last_us", st.LastPauseUs),
		slog.Uint64("gc_max_us", st.MaxPauseUs),
		slog.Float64("sys_mb", round2(st.SysMB)),
	)

	p.frameCount = 0
	p.tickCount = 0
	p.lastTime = currentTime
	p.lastGCCount = st.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return st, true
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
