package garden

import (
	"fmt"

	"github.com/tanema/gween/ease"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/animator"
	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
	"github.com/Carmen-Shannon/oxy-garden/engine/input"
	"github.com/Carmen-Shannon/oxy-garden/engine/physics"
)

// World owns the mutable simulation state: the ball and the flower sway. It is advanced
// once per engine tick, on the loop goroutine.
type World struct {
	params   physics.Params
	keyboard input.Keyboard
	ball     physics.Ball
	anim     animator.Animator
	sway     uint32
	ticks    uint64

	ballObject game_object.GameObject
}

// NewWorld creates the simulation state with the ball at rest at cfg.Scene.BallStart.
//
// Parameters:
//   - cfg: the garden configuration
//   - kb: the keyboard whose flags are read every tick
//
// Returns:
//   - *World: the world
//   - error: if the sway clip could not be started
func NewWorld(cfg Config, kb input.Keyboard) (*World, error) {
	w := &World{
		params:   cfg.Physics,
		keyboard: kb,
		ball:     physics.NewBall(cfg.Scene.BallStart, cfg.Physics),
		anim:     animator.NewAnimator(),
	}
	w.sway = w.anim.AddInstance(nil)
	if clip, ok := SwayClip(cfg.Scene); ok {
		if err := w.anim.PlayAnimation(w.sway, w.anim.AddClip(clip)); err != nil {
			return nil, fmt.Errorf("play flower sway: %w", err)
		}
	}
	return w, nil
}

// SwayClip is the flower's back-and-forth lean about Z, one leg per half period.
//
// Returns:
//   - animator.Clip: the clip
//   - bool: false when the config disables the sway
func SwayClip(cfg SceneConfig) (animator.Clip, bool) {
	amplitude := common.DegToRad(cfg.SwayAngle)
	if amplitude <= 0 || cfg.SwayPeriod <= 0 {
		return animator.Clip{}, false
	}
	return animator.Clip{
		Name:     "flower sway",
		Property: animator.PropertyRotation,
		Axis:     animator.AxisZ,
		From:     -amplitude,
		To:       amplitude,
		Duration: cfg.SwayPeriod / 2,
		Ease:     ease.InOutSine,
		PingPong: true,
	}, true
}

// Attach binds the scene objects the world moves. Either may be nil, as in a headless run.
//
// Parameters:
//   - o: the assembled garden objects
//
// Returns:
//   - error: if the sway instance is unknown to the animator
func (w *World) Attach(o Objects) error {
	if err := w.anim.SetTarget(w.sway, o.Flower); err != nil {
		return fmt.Errorf("attach flower: %w", err)
	}
	w.ballObject = o.Ball
	w.sync()
	return nil
}

// Tick advances the world by one frame. The integrator works in frames, so dt only
// drives the flower sway.
//
// Parameters:
//   - dt: the tick duration in seconds
func (w *World) Tick(dt float32) {
	var in input.State
	if w.keyboard != nil {
		in = w.keyboard.State()
	}
	w.ball = physics.Step(w.ball, in, w.params)
	w.anim.PrepareFrame(dt)
	w.ticks++
	w.sync()
}

// Ball returns the current ball state.
func (w *World) Ball() physics.Ball {
	return w.ball
}

// Ticks returns the number of ticks the world has run.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// SwayAngle returns the flower's current Z rotation in radians.
func (w *World) SwayAngle() float32 {
	return w.anim.Value(w.sway)
}

func (w *World) sync() {
	if w.ballObject != nil {
		w.ballObject.SetPosition(w.ball.Position)
	}
}
