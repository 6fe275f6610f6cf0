// Package physics integrates the bouncing ball one frame at a time.
package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/input"
)

// Default integrator constants. Units are world units and frames.
const (
	DefaultGravity      float32 = -0.05
	DefaultBounceFactor float32 = 1.0
	DefaultRadius       float32 = 2
	DefaultMinVelocity  float32 = 0.0004
	DefaultMoveStep     float32 = 1
)

// Params configures the integrator.
type Params struct {
	// Gravity is added to the vertical velocity every step.
	Gravity float32 `toml:"gravity"`
	// BounceFactor scales the reflected velocity on floor contact. 1 keeps full energy.
	BounceFactor float32 `toml:"bounce_factor"`
	// Radius is the ball radius; the ball center never goes below it.
	Radius float32 `toml:"radius"`
	// MinVelocity is the magnitude under which vertical velocity snaps to zero.
	MinVelocity float32 `toml:"min_velocity"`
	// MoveStep is the horizontal displacement per frame for each held direction.
	MoveStep float32 `toml:"move_step"`
}

// DefaultParams returns the literal integrator constants.
func DefaultParams() Params {
	return Params{
		Gravity:      DefaultGravity,
		BounceFactor: DefaultBounceFactor,
		Radius:       DefaultRadius,
		MinVelocity:  DefaultMinVelocity,
		MoveStep:     DefaultMoveStep,
	}
}

// Ball is the integrator state: the ball center and its vertical velocity.
type Ball struct {
	Position mgl32.Vec3
	Velocity float32
}

// NewBall places a ball at rest at the given position, lifted to the floor if needed.
//
// Parameters:
//   - pos: the starting center
//   - p: integrator parameters, for the radius
//
// Returns:
//   - Ball: the initial state
func NewBall(pos mgl32.Vec3, p Params) Ball {
	if pos[1] < p.Radius {
		pos[1] = p.Radius
	}
	return Ball{Position: pos}
}

// Step advances the ball by one frame. Gravity is integrated first, then the floor
// contact is resolved, then small velocities are zeroed. Held directions shift the
// ball horizontally by MoveStep each, without normalization.
//
// Parameters:
//   - b: the state before the frame
//   - in: the movement flags read for this frame
//   - p: integrator parameters
//
// Returns:
//   - Ball: the state after the frame; Position.Y() >= p.Radius always holds
func Step(b Ball, in input.State, p Params) Ball {
	v := b.Velocity + p.Gravity
	y := b.Position.Y() + v
	if y <= p.Radius {
		y = p.Radius
		v = -v * p.BounceFactor
	}
	if abs(v) < p.MinVelocity {
		v = 0
	}

	x, z := b.Position.X(), b.Position.Z()
	if in.Forward {
		z -= p.MoveStep
	}
	if in.Back {
		z += p.MoveStep
	}
	if in.Left {
		x -= p.MoveStep
	}
	if in.Right {
		x += p.MoveStep
	}

	return Ball{Position: mgl32.Vec3{x, y, z}, Velocity: v}
}

// MaxHeight returns the highest center a ball released at rest from startY can reach
// when no energy is added by bounces. One extra step of fall accounts for the
// discrete integration overshoot at the floor.
func MaxHeight(startY float32, p Params) float32 {
	return startY + abs(p.Gravity)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
