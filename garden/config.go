// Package garden assembles the flower garden scene and drives its simulation.
package garden

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/input"
	"github.com/Carmen-Shannon/oxy-garden/engine/light"
	"github.com/Carmen-Shannon/oxy-garden/engine/physics"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer"
)

// Config holds every tunable of the garden. Zero values are not meaningful: start from
// DefaultConfig and overlay a file with LoadConfig.
type Config struct {
	Window  WindowConfig   `toml:"window"`
	Engine  EngineConfig   `toml:"engine"`
	Physics physics.Params `toml:"physics"`
	Input   input.Bindings `toml:"input"`
	Camera  CameraConfig   `toml:"camera"`
	Light   LightConfig    `toml:"light"`
	Scene   SceneConfig    `toml:"scene"`
}

// WindowConfig sizes the platform window. Sizes are logical units.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
}

// EngineConfig controls the loop and the renderer.
type EngineConfig struct {
	TickRate        float64 `toml:"tick_rate"`
	MaxCatchUpTicks int     `toml:"max_catch_up_ticks"`
	FrameLimit      float64 `toml:"frame_limit"` // 0 = uncapped
	VSync           bool    `toml:"vsync"`
	MSAA            int     `toml:"msaa"`
	PrepWorkers     int     `toml:"prep_workers"`
}

// CameraConfig places the perspective camera. Fov is in degrees.
type CameraConfig struct {
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position mgl32.Vec3 `toml:"position"`
	Target   mgl32.Vec3 `toml:"target"`
}

// LightConfig configures the directional light, the ambient fill and the shadow map.
type LightConfig struct {
	Position     mgl32.Vec3           `toml:"position"`
	Target       mgl32.Vec3           `toml:"target"`
	Color        mgl32.Vec3           `toml:"color"`
	Intensity    float32              `toml:"intensity"`
	Ambient      mgl32.Vec3           `toml:"ambient"`
	CastsShadows bool                 `toml:"casts_shadows"`
	Shadow       light.ShadowSettings `toml:"shadow"`
}

// SceneConfig holds the static layout parameters of the garden.
type SceneConfig struct {
	CheckerSize int        `toml:"checker_size"`
	FloorSize   float32    `toml:"floor_size"`
	FloorRepeat float32    `toml:"floor_repeat"`
	WallHeight  float32    `toml:"wall_height"`
	BallStart   mgl32.Vec3 `toml:"ball_start"`
	SwayAngle   float32    `toml:"sway_angle"`  // degrees; 0 disables the sway
	SwayPeriod  float32    `toml:"sway_period"` // seconds for a full back-and-forth
}

// DefaultConfig returns the garden's literal parameters.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:     "oxy-garden",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
		},
		Engine: EngineConfig{
			TickRate:        60,
			MaxCatchUpTicks: 8,
			VSync:           true,
			MSAA:            4,
			PrepWorkers:     4,
		},
		Physics: physics.DefaultParams(),
		Input:   input.DefaultBindings(),
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: mgl32.Vec3{0, 30, 60},
			Target:   mgl32.Vec3{0, 5, 0},
		},
		Light: LightConfig{
			Position:     mgl32.Vec3{20, 40, 20},
			Target:       mgl32.Vec3{0, 0, 0},
			Color:        mgl32.Vec3{1, 1, 1},
			Intensity:    1,
			Ambient:      mgl32.Vec3{0.3, 0.3, 0.3},
			CastsShadows: true,
			Shadow:       light.DefaultShadowSettings(),
		},
		Scene: SceneConfig{
			CheckerSize: 8,
			FloorSize:   100,
			FloorRepeat: 10,
			WallHeight:  50,
			BallStart:   mgl32.Vec3{10, 20, 0},
			SwayAngle:   4,
			SwayPeriod:  4,
		},
	}
}

// LoadConfig overlays the TOML file at path onto DefaultConfig and validates the result.
// An empty path returns the defaults.
//
// Parameters:
//   - path: the config file path, or ""
//
// Returns:
//   - Config: the merged configuration
//   - error: a decode, unknown-key or validation error
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("garden: decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("garden: config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("garden: config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field, joined into one error.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window.width/height", "must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.MinWidth >= 0 && c.Window.MinHeight >= 0, "window.min_width/min_height", "must not be negative")

	check(c.Engine.TickRate > 0, "engine.tick_rate", "must be positive, got %v", c.Engine.TickRate)
	check(c.Engine.MaxCatchUpTicks >= 1, "engine.max_catch_up_ticks", "must be at least 1, got %d", c.Engine.MaxCatchUpTicks)
	check(c.Engine.FrameLimit >= 0, "engine.frame_limit", "must not be negative, got %v", c.Engine.FrameLimit)
	if _, err := renderer.ParseMSAA(c.Engine.MSAA); err != nil {
		errs = append(errs, fmt.Errorf("engine.msaa: %w", err))
	}
	check(c.Engine.PrepWorkers >= 1, "engine.prep_workers", "must be at least 1, got %d", c.Engine.PrepWorkers)

	p := c.Physics
	check(p.Gravity <= 0, "physics.gravity", "must not point up, got %v", p.Gravity)
	check(p.BounceFactor >= 0 && p.BounceFactor <= 1, "physics.bounce_factor", "must be in [0, 1], got %v", p.BounceFactor)
	check(p.Radius > 0, "physics.radius", "must be positive, got %v", p.Radius)
	check(p.MinVelocity >= 0, "physics.min_velocity", "must not be negative, got %v", p.MinVelocity)
	check(p.MoveStep >= 0, "physics.move_step", "must not be negative, got %v", p.MoveStep)

	if _, err := input.NewKeyboard(c.Input); err != nil {
		errs = append(errs, err)
	}

	check(c.Camera.Fov > 0 && c.Camera.Fov < 180, "camera.fov", "must be in (0, 180) degrees, got %v", c.Camera.Fov)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera.near/far", "need 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far)
	check(!c.Camera.Position.ApproxEqual(c.Camera.Target), "camera.position", "must differ from camera.target")

	check(!c.Light.Position.ApproxEqual(c.Light.Target), "light.position", "must differ from light.target")
	check(c.Light.Intensity >= 0, "light.intensity", "must not be negative, got %v", c.Light.Intensity)
	s := c.Light.Shadow
	check(s.Resolution > 0, "light.shadow.resolution", "must be positive, got %d", s.Resolution)
	check(s.HalfExtent > 0, "light.shadow.half_extent", "must be positive, got %v", s.HalfExtent)
	check(s.Near >= 0 && s.Far > s.Near, "light.shadow.near/far", "need 0 <= near < far, got %v/%v", s.Near, s.Far)

	check(c.Scene.CheckerSize > 0, "scene.checker_size", "must be positive, got %d", c.Scene.CheckerSize)
	check(c.Scene.FloorSize > 0, "scene.floor_size", "must be positive, got %v", c.Scene.FloorSize)
	check(c.Scene.FloorRepeat > 0, "scene.floor_repeat", "must be positive, got %v", c.Scene.FloorRepeat)
	check(c.Scene.WallHeight > 0, "scene.wall_height", "must be positive, got %v", c.Scene.WallHeight)
	check(c.Scene.SwayAngle >= 0, "scene.sway_angle", "must not be negative, got %v", c.Scene.SwayAngle)
	check(c.Scene.SwayAngle == 0 || c.Scene.SwayPeriod > 0, "scene.sway_period", "must be positive while swaying, got %v", c.Scene.SwayPeriod)

	return errors.Join(errs...)
}
