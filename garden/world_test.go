package garden

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/animator"
	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
	"github.com/Carmen-Shannon/oxy-garden/engine/input"
)

func newTestKeyboard(t *testing.T) input.Keyboard {
	t.Helper()
	kb, err := input.NewKeyboard(input.DefaultBindings())
	if err != nil {
		t.Fatal(err)
	}
	return kb
}

func newTestWorld(t *testing.T, cfg Config, kb input.Keyboard) *World {
	t.Helper()
	w, err := NewWorld(cfg, kb)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func attach(t *testing.T, w *World, o Objects) {
	t.Helper()
	if err := w.Attach(o); err != nil {
		t.Fatalf("Attach: %v", err)
	}
}

func TestAttachReportsUnknownSwayInstance(t *testing.T) {
	w := &World{anim: animator.NewAnimator(), sway: 3}
	ball := game_object.NewGameObject()
	err := w.Attach(Objects{Ball: ball})
	if !errors.Is(err, animator.ErrUnknownInstance) {
		t.Fatalf("Attach() = %v, want ErrUnknownInstance", err)
	}
	if w.ballObject != nil {
		t.Error("failed Attach kept the ball object")
	}
}

func TestNewWorldStartsSway(t *testing.T) {
	w := newTestWorld(t, DefaultConfig(), nil)
	if !w.anim.IsPlaying(w.sway) {
		t.Error("sway clip is not playing")
	}
}

func TestWorldBallStaysAboveFloor(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, nil)
	for range 5000 {
		w.Tick(1.0 / 60)
		if y := w.Ball().Position.Y(); y < cfg.Physics.Radius {
			t.Fatalf("tick %d: y = %v below radius", w.Ticks(), y)
		}
	}
}

func TestWorldForwardMovesBall(t *testing.T) {
	kb := newTestKeyboard(t)
	w := newTestWorld(t, DefaultConfig(), kb)
	start := w.Ball().Position

	kb.KeyDown(common.KeyW)
	for range 7 {
		w.Tick(1.0 / 60)
	}
	kb.KeyUp(common.KeyW)
	w.Tick(1.0 / 60)

	pos := w.Ball().Position
	if pos.Z() != start.Z()-7 || pos.X() != start.X() {
		t.Fatalf("position = %v, want z moved by -7 from %v", pos, start)
	}
}

func TestWorldMovesAttachedBall(t *testing.T) {
	kb := newTestKeyboard(t)
	w := newTestWorld(t, DefaultConfig(), kb)
	ball := game_object.NewGameObject()
	attach(t, w, Objects{Ball: ball})

	if ball.Position() != w.Ball().Position {
		t.Fatalf("attach did not sync: %v vs %v", ball.Position(), w.Ball().Position)
	}
	kb.KeyDown(common.KeyD)
	w.Tick(1.0 / 60)
	if ball.Position() != w.Ball().Position {
		t.Fatalf("tick did not sync: %v vs %v", ball.Position(), w.Ball().Position)
	}
	if ball.Position().X() != DefaultConfig().Scene.BallStart.X()+1 {
		t.Fatalf("x = %v", ball.Position().X())
	}
}

func TestWorldSwaysFlower(t *testing.T) {
	cfg := DefaultConfig()
	w := newTestWorld(t, cfg, nil)
	flower := game_object.NewGameObject()
	attach(t, w, Objects{Flower: flower})

	amp := common.DegToRad(cfg.Scene.SwayAngle)
	if math.Abs(float64(w.SwayAngle()+amp)) > 1e-6 {
		t.Fatalf("initial angle = %v, want %v", w.SwayAngle(), -amp)
	}

	// Half a period swings to the other side.
	for range int(cfg.Scene.SwayPeriod / 2 * 60) {
		w.Tick(1.0 / 60)
		if a := w.SwayAngle(); a < -amp-1e-5 || a > amp+1e-5 {
			t.Fatalf("angle %v outside [-%v, %v]", a, amp, amp)
		}
	}
	if math.Abs(float64(w.SwayAngle()-amp)) > 1e-3 {
		t.Fatalf("angle after half a period = %v, want %v", w.SwayAngle(), amp)
	}
	if flower.Rotation() != (mgl32.Vec3{0, 0, w.SwayAngle()}) {
		t.Fatalf("flower rotation = %v", flower.Rotation())
	}

	// And back again.
	for range int(cfg.Scene.SwayPeriod / 2 * 60) {
		w.Tick(1.0 / 60)
	}
	if math.Abs(float64(w.SwayAngle()+amp)) > 1e-3 {
		t.Fatalf("angle after a full period = %v, want %v", w.SwayAngle(), -amp)
	}
}

func TestWorldWithoutSway(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.SwayAngle = 0
	w := newTestWorld(t, cfg, nil)
	for range 10 {
		w.Tick(1.0 / 60)
	}
	if w.SwayAngle() != 0 {
		t.Fatalf("angle = %v, want 0", w.SwayAngle())
	}
}
