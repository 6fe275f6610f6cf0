package animator

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"

	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestPlayAppliesStartValue(t *testing.T) {
	obj := game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{1, 2, 3}))
	a := NewAnimator(WithClip(Clip{Property: PropertyPosition, Axis: AxisY, From: 5, To: 10, Duration: 1}))
	idx := a.AddInstance(obj)
	if err := a.PlayAnimation(idx, 0); err != nil {
		t.Fatal(err)
	}
	if obj.Position() != (mgl32.Vec3{1, 5, 3}) {
		t.Fatalf("position = %v, want y set to the clip start", obj.Position())
	}
	if !a.IsPlaying(idx) {
		t.Fatal("instance not playing")
	}
}

func TestLinearClipRunsOnce(t *testing.T) {
	obj := game_object.NewGameObject()
	a := NewAnimator()
	clip := a.AddClip(Clip{Property: PropertyScale, Axis: AxisX, From: 1, To: 3, Duration: 1})
	idx := a.AddInstance(obj)
	_ = a.PlayAnimation(idx, clip)

	a.PrepareFrame(0.5)
	if !near(obj.Scale().X(), 2) {
		t.Fatalf("scale.x at half time = %v, want 2", obj.Scale().X())
	}
	a.PrepareFrame(0.75)
	if obj.Scale().X() != 3 || a.IsPlaying(idx) {
		t.Fatalf("scale.x = %v playing = %v after the end", obj.Scale().X(), a.IsPlaying(idx))
	}
	a.PrepareFrame(1)
	if obj.Scale().X() != 3 {
		t.Fatal("finished clip kept writing")
	}
}

func TestLoopRestarts(t *testing.T) {
	a := NewAnimator(WithClip(Clip{Property: PropertyPosition, Axis: AxisX, From: 0, To: 1, Duration: 1, Loop: true}))
	idx := a.AddInstance(nil)
	_ = a.PlayAnimation(idx, 0)
	a.PrepareFrame(1)
	a.PrepareFrame(0.25)
	if !near(a.Value(idx), 0.25) || !a.IsPlaying(idx) {
		t.Fatalf("value = %v playing = %v, want 0.25 on the second pass", a.Value(idx), a.IsPlaying(idx))
	}
}

func TestPingPongReverses(t *testing.T) {
	obj := game_object.NewGameObject()
	a := NewAnimator(WithClip(Clip{Property: PropertyRotation, Axis: AxisZ, From: -1, To: 1, Duration: 1, Ease: ease.InOutSine, PingPong: true}))
	idx := a.AddInstance(obj)
	_ = a.PlayAnimation(idx, 0)

	a.PrepareFrame(1)
	if a.Value(idx) != 1 {
		t.Fatalf("value after forward pass = %v", a.Value(idx))
	}
	a.PrepareFrame(0.5)
	if !near(a.Value(idx), 0) {
		t.Fatalf("value halfway back = %v, want 0", a.Value(idx))
	}
	a.PrepareFrame(0.5)
	if a.Value(idx) != -1 || obj.Rotation().Z() != -1 {
		t.Fatalf("value after backward pass = %v rot = %v", a.Value(idx), obj.Rotation())
	}
}

func TestSpeedScalesTime(t *testing.T) {
	a := NewAnimator(WithClip(Clip{From: 0, To: 4, Duration: 4}))
	idx := a.AddInstance(nil)
	_ = a.PlayAnimation(idx, 0)
	a.SetAnimationSpeed(idx, 2)
	a.PrepareFrame(1)
	if !near(a.Value(idx), 2) {
		t.Fatalf("value = %v, want 2 at double speed", a.Value(idx))
	}
	a.SetAnimationSpeed(idx, -1)
	a.PrepareFrame(1)
	if !near(a.Value(idx), 4) {
		t.Fatalf("negative speed was applied: value = %v", a.Value(idx))
	}
}

func TestStopKeepsValue(t *testing.T) {
	a := NewAnimator(WithClip(Clip{From: 0, To: 1, Duration: 1}))
	idx := a.AddInstance(nil)
	_ = a.PlayAnimation(idx, 0)
	a.PrepareFrame(0.5)
	a.StopAnimation(idx)
	a.PrepareFrame(0.5)
	if !near(a.Value(idx), 0.5) || a.IsPlaying(idx) {
		t.Fatalf("value = %v playing = %v after stop", a.Value(idx), a.IsPlaying(idx))
	}
}

func TestSetTargetWritesCurrentValue(t *testing.T) {
	a := NewAnimator(WithClip(Clip{Property: PropertyRotation, Axis: AxisY, From: 0, To: 1, Duration: 1}))
	idx := a.AddInstance(nil)
	_ = a.PlayAnimation(idx, 0)
	a.PrepareFrame(0.5)

	obj := game_object.NewGameObject()
	if err := a.SetTarget(idx, obj); err != nil {
		t.Fatal(err)
	}
	if !near(obj.Rotation().Y(), 0.5) {
		t.Fatalf("rotation = %v, want y = 0.5", obj.Rotation())
	}
}

func TestUnknownIndices(t *testing.T) {
	a := NewAnimator()
	if err := a.PlayAnimation(0, 0); !errors.Is(err, ErrUnknownInstance) {
		t.Fatalf("PlayAnimation() = %v, want ErrUnknownInstance", err)
	}
	idx := a.AddInstance(nil)
	if err := a.PlayAnimation(idx, 3); !errors.Is(err, ErrUnknownClip) {
		t.Fatalf("PlayAnimation() = %v, want ErrUnknownClip", err)
	}
	if err := a.SetTarget(9, nil); !errors.Is(err, ErrUnknownInstance) {
		t.Fatalf("SetTarget() = %v, want ErrUnknownInstance", err)
	}
	if a.InstanceCount() != 1 || a.Value(9) != 0 || a.IsPlaying(9) {
		t.Fatal("unexpected state for unknown instance")
	}
}
