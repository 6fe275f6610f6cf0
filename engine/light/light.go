// Package light models the scene's single directional sun and the orthographic shadow
// frustum cast from it.
package light

import "github.com/go-gl/mathgl/mgl32"

type lightImpl struct {
	position  mgl32.Vec3
	direction mgl32.Vec3

	color     mgl32.Vec3
	intensity float32

	enabled      bool
	castsShadows bool
}

// Light is a directional light. It has no falloff; Position only anchors the shadow
// frustum, which looks from Position along Direction.
type Light interface {
	Position() mgl32.Vec3
	// Direction is the unit vector light travels along, or zero if never aimed.
	Direction() mgl32.Vec3
	Color() mgl32.Vec3
	Intensity() float32
	Enabled() bool
	CastsShadows() bool

	// Aim moves the light to position and points it at target.
	//
	// Parameters:
	//   - position: the new source point
	//   - target: the point to shine at; equal to position leaves a zero direction
	Aim(position, target mgl32.Vec3)

	// SetDirection points the light without moving it.
	SetDirection(dir mgl32.Vec3)

	// SetColor sets the color and the scalar it is multiplied by.
	SetColor(color mgl32.Vec3, intensity float32)

	SetEnabled(enabled bool)
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates an enabled white light at (0, 10, 0) shining straight down.
//
// Parameters:
//   - opts: overrides applied in order
//
// Returns:
//   - Light: the light
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		position:  mgl32.Vec3{0, 10, 0},
		direction: mgl32.Vec3{0, -1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3  { return l.position }
func (l *lightImpl) Direction() mgl32.Vec3 { return l.direction }
func (l *lightImpl) Color() mgl32.Vec3     { return l.color }
func (l *lightImpl) Intensity() float32    { return l.intensity }
func (l *lightImpl) Enabled() bool         { return l.enabled }
func (l *lightImpl) CastsShadows() bool    { return l.castsShadows }

func (l *lightImpl) Aim(position, target mgl32.Vec3) {
	l.position = position
	l.direction = unitOrZero(target.Sub(position))
}

func (l *lightImpl) SetDirection(dir mgl32.Vec3) {
	l.direction = unitOrZero(dir)
}

func (l *lightImpl) SetColor(color mgl32.Vec3, intensity float32) {
	l.color = color
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func unitOrZero(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
