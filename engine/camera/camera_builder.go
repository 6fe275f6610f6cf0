package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption configures a camera in NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition places the eye.
func WithPosition(pos mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eye = pos
	}
}

// WithTarget sets the look-at point.
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp overrides the +Y up vector.
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithLens replaces the whole projection. Fields left at zero keep their default.
//
// Parameters:
//   - lens: the projection; zero fields fall back to DefaultLens
//
// Returns:
//   - CameraBuilderOption: the option
func WithLens(lens Lens) CameraBuilderOption {
	return func(c *cameraImpl) {
		if lens.Fov > 0 {
			c.lens.Fov = lens.Fov
		}
		if lens.Aspect > 0 {
			c.lens.Aspect = lens.Aspect
		}
		if lens.Near > 0 {
			c.lens.Near = lens.Near
		}
		if lens.Far > 0 {
			c.lens.Far = lens.Far
		}
	}
}
