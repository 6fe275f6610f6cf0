package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption configures a light in NewLight.
type LightBuilderOption func(*lightImpl)

// WithAim places the light at position shining at target.
func WithAim(position, target mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.Aim(position, target)
	}
}

// WithDirection points the light along dir, normalized.
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetDirection(dir)
	}
}

// WithColor sets the light color and its intensity scalar.
func WithColor(color mgl32.Vec3, intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetColor(color, intensity)
	}
}

// WithShadows makes the light cast shadows.
func WithShadows() LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = true
	}
}
