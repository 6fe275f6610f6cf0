package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/light"
)

// SceneBuilderOption configures a scene in NewScene.
type SceneBuilderOption func(s *scene)

// WithActive marks the scene for rendering from the first frame.
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLight sets the directional light. Without one the scene is lit by ambient only.
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lgt = l
	}
}

// WithAmbientColor overrides the 0.2 grey ambient term.
func WithAmbientColor(color mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.ambientColor = color
	}
}

// WithPrepWorkers sizes the pool that builds object uniforms in Prepare. The default
// leaves one CPU for the loop; the floor is 1.
func WithPrepWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.prepWorkers = max(n, 1)
	}
}

// WithCullingDisabled draws every enabled object regardless of the camera frustum.
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}

// WithShadowSettings replaces light.DefaultShadowSettings. The shadow map is allocated
// once, so its resolution can only be chosen here.
//
// Parameters:
//   - settings: resolution, frustum extent and biases
//
// Returns:
//   - SceneBuilderOption: the option
func WithShadowSettings(settings light.ShadowSettings) SceneBuilderOption {
	return func(s *scene) {
		s.shadowSettings = settings
	}
}

// WithShadowCenter centers the orthographic shadow frustum on a world point instead of
// the origin.
func WithShadowCenter(center mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.shadowCenter = center
	}
}
