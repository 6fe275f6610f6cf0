package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/input"
)

func run(b Ball, in input.State, p Params, n int, each func(i int, b Ball)) Ball {
	for i := range n {
		b = Step(b, in, p)
		if each != nil {
			each(i, b)
		}
	}
	return b
}

func TestStepNeverBelowRadius(t *testing.T) {
	p := DefaultParams()
	start := NewBall(mgl32.Vec3{10, 20, 0}, p)
	run(start, input.State{}, p, 20000, func(i int, b Ball) {
		if b.Position.Y() < p.Radius {
			t.Fatalf("step %d: y = %v below radius %v", i, b.Position.Y(), p.Radius)
		}
	})
}

func TestStepBoundedWithFullBounce(t *testing.T) {
	p := DefaultParams()
	start := NewBall(mgl32.Vec3{10, 20, 0}, p)
	limit := MaxHeight(20, p)
	minY, maxY := float32(20), float32(20)
	run(start, input.State{}, p, 20000, func(i int, b Ball) {
		y := b.Position.Y()
		if y > limit {
			t.Fatalf("step %d: y = %v exceeds bound %v", i, y, limit)
		}
		minY = min(minY, y)
		maxY = max(maxY, y)
	})
	if minY != p.Radius {
		t.Errorf("ball never reached the floor, min y = %v", minY)
	}
	if maxY < 19 {
		t.Errorf("ball lost height with bounce factor 1, max y = %v", maxY)
	}
}

func TestStepFirstFrame(t *testing.T) {
	p := DefaultParams()
	got := Step(NewBall(mgl32.Vec3{0, 20, 0}, p), input.State{}, p)
	if got.Velocity != p.Gravity {
		t.Errorf("velocity = %v, want %v", got.Velocity, p.Gravity)
	}
	if want := float32(20) + p.Gravity; got.Position.Y() != want {
		t.Errorf("y = %v, want %v", got.Position.Y(), want)
	}
}

func TestStepFloorContactReflects(t *testing.T) {
	p := DefaultParams()
	got := Step(Ball{Position: mgl32.Vec3{0, 2.5, 0}, Velocity: -1}, input.State{}, p)
	if got.Position.Y() != p.Radius {
		t.Errorf("y = %v, want clamp to %v", got.Position.Y(), p.Radius)
	}
	if want := float32(1.05); got.Velocity != want {
		t.Errorf("velocity = %v, want %v", got.Velocity, want)
	}
}

func TestStepZeroBounceSettles(t *testing.T) {
	p := DefaultParams()
	p.BounceFactor = 0
	b := run(NewBall(mgl32.Vec3{0, 20, 0}, p), input.State{}, p, 500, nil)
	if b.Position.Y() != p.Radius {
		t.Errorf("y = %v, want settled at %v", b.Position.Y(), p.Radius)
	}
	if b.Velocity != 0 {
		t.Errorf("velocity = %v, want 0", b.Velocity)
	}
}

func TestStepSnapsSmallVelocity(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 0
	got := Step(Ball{Position: mgl32.Vec3{0, 10, 0}, Velocity: 0.0003}, input.State{}, p)
	if got.Velocity != 0 {
		t.Errorf("velocity = %v, want 0", got.Velocity)
	}
	got = Step(Ball{Position: mgl32.Vec3{0, 10, 0}, Velocity: 0.001}, input.State{}, p)
	if got.Velocity != 0.001 {
		t.Errorf("velocity = %v, want 0.001 kept", got.Velocity)
	}
}

func TestStepHorizontal(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		name   string
		in     input.State
		frames int
		wantX  float32
		wantZ  float32
	}{
		{"forward", input.State{Forward: true}, 7, 0, -7},
		{"back", input.State{Back: true}, 3, 0, 3},
		{"left", input.State{Left: true}, 4, -4, 0},
		{"right", input.State{Right: true}, 5, 5, 0},
		{"diagonal", input.State{Forward: true, Right: true}, 6, 6, -6},
		{"opposed", input.State{Forward: true, Back: true}, 9, 0, 0},
		{"idle", input.State{}, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := run(NewBall(mgl32.Vec3{0, 20, 0}, p), tt.in, p, tt.frames, nil)
			if b.Position.X() != tt.wantX || b.Position.Z() != tt.wantZ {
				t.Errorf("x,z = %v,%v want %v,%v", b.Position.X(), b.Position.Z(), tt.wantX, tt.wantZ)
			}
		})
	}
}

func TestStepIgnoresVerticalForHorizontalInput(t *testing.T) {
	p := DefaultParams()
	idle := run(NewBall(mgl32.Vec3{0, 20, 0}, p), input.State{}, p, 50, nil)
	moving := run(NewBall(mgl32.Vec3{0, 20, 0}, p), input.State{Left: true}, p, 50, nil)
	if idle.Position.Y() != moving.Position.Y() || idle.Velocity != moving.Velocity {
		t.Errorf("horizontal input changed vertical state: %+v vs %+v", idle, moving)
	}
}

func TestNewBallLiftsToFloor(t *testing.T) {
	p := DefaultParams()
	b := NewBall(mgl32.Vec3{1, -3, 2}, p)
	if b.Position != (mgl32.Vec3{1, p.Radius, 2}) {
		t.Errorf("position = %v", b.Position)
	}
}
