// Command garden renders the flower garden: a checkerboard floor, gradient walls, a
// swaying flower and a ball that bounces under gravity and moves with the keyboard.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine"
	"github.com/Carmen-Shannon/oxy-garden/engine/input"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer"
	"github.com/Carmen-Shannon/oxy-garden/engine/scene"
	"github.com/Carmen-Shannon/oxy-garden/engine/window"
	"github.com/Carmen-Shannon/oxy-garden/garden"
)

// defaultHeadlessTicks is ten seconds of simulation at the default tick rate.
const defaultHeadlessTicks = 600

type options struct {
	configPath string
	headless   bool
	ticks      uint64
	profile    bool
	software   bool
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to a TOML config file (defaults apply when omitted).")
	flag.BoolVar(&opts.headless, "headless", false, "Run the simulation without a window.")
	flag.Uint64Var(&opts.ticks, "ticks", 0, "Stop after N ticks (0 = until the window closes; 600 when headless).")
	flag.BoolVar(&opts.profile, "profile", false, "Log frame and tick rates once per second.")
	flag.BoolVar(&opts.software, "software", false, "Render on the fallback (software) adapter.")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: level == slog.LevelDebug, Level: level})
	slog.SetDefault(slog.New(handler))

	cfg, err := garden.LoadConfig(opts.configPath)
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	if opts.headless {
		err = runHeadless(cfg, opts)
	} else {
		err = runWindow(cfg, opts)
	}
	if err != nil {
		slog.Error("garden", slog.Any("err", err))
		os.Exit(1)
	}
}

// runHeadless steps the physics with no window or GPU and logs where the ball ends up.
func runHeadless(cfg garden.Config, opts options) error {
	kb, err := input.NewKeyboard(cfg.Input)
	if err != nil {
		return err
	}
	world, err := garden.NewWorld(cfg, kb)
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(opts.profile),
		engine.WithTickCallback(world.Tick),
	)
	ticks := opts.ticks
	if ticks == 0 {
		ticks = defaultHeadlessTicks
	}
	eng.RunTicks(int(ticks))

	ball := world.Ball()
	slog.Info("headless run finished",
		slog.Uint64("ticks", world.Ticks()),
		slog.Any("position", vec3Attr(ball.Position)),
		slog.Float64("velocity", float64(ball.Velocity)),
	)
	return nil
}

func runWindow(cfg garden.Config, opts options) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, 0, 0),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	kb, err := input.NewKeyboard(cfg.Input)
	if err != nil {
		return err
	}
	win.SetKeyDownCallback(kb.KeyDown)
	win.SetKeyUpCallback(kb.KeyUp)

	msaa, err := renderer.ParseMSAA(cfg.Engine.MSAA)
	if err != nil {
		return err
	}
	bufW, bufH := engine.BufferSize(win.Width(), win.Height(), win.PixelRatio())
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, bufW, bufH,
		renderer.WithPresentMode(renderer.PresentModeFor(cfg.Engine.VSync)),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(garden.ClearColor()),
		renderer.WithForceSoftwareRenderer(opts.software),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	cam := garden.NewCamera(cfg.Camera, float32(win.Width())/float32(max(win.Height(), 1)))
	s, err := scene.NewScene("garden", cam, r,
		scene.WithLight(garden.NewLight(cfg.Light)),
		scene.WithAmbientColor(cfg.Light.Ambient),
		scene.WithShadowSettings(cfg.Light.Shadow),
		scene.WithPrepWorkers(cfg.Engine.PrepWorkers),
	)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer s.Release()

	objs, err := garden.Populate(s, cfg)
	if err != nil {
		return err
	}
	world, err := garden.NewWorld(cfg, kb)
	if err != nil {
		return err
	}
	if err := world.Attach(objs); err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(0, s),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithMaxCatchUpTicks(cfg.Engine.MaxCatchUpTicks),
		engine.WithMaxTicks(opts.ticks),
		engine.WithRenderFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(opts.profile),
		engine.WithTickCallback(world.Tick),
	)
	slog.Info("garden running",
		slog.Int("width", win.Width()),
		slog.Int("height", win.Height()),
		slog.Int("objects", s.Count()),
	)
	if err := eng.Run(); err != nil {
		return err
	}
	slog.Info("garden closed", slog.Uint64("ticks", eng.Ticks()))
	return nil
}

func vec3Attr(v mgl32.Vec3) []float32 {
	return []float32{v.X(), v.Y(), v.Z()}
}
