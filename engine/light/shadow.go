package light

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture. Scenes use this as their initial value but can override it
// via the WithShadowMapResolution builder option.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// used for the directional light shadow frustum. The garden floor is 100 units wide.
const DefaultShadowHalfExtent float32 = 60.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.002

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Typical values are 2.0 to 4.0.
const DefaultShadowNormalBiasScale float32 = 3.0

// ShadowSettings groups the tunables of the directional shadow map.
type ShadowSettings struct {
	Resolution      int     `toml:"resolution"`
	HalfExtent      float32 `toml:"half_extent"`
	Near            float32 `toml:"near"`
	Far             float32 `toml:"far"`
	Bias            float32 `toml:"bias"`
	NormalBiasScale float32 `toml:"normal_bias_scale"`
}

// DefaultShadowSettings returns the package defaults.
func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{
		Resolution:      ShadowMapResolution,
		HalfExtent:      DefaultShadowHalfExtent,
		Near:            DefaultShadowNear,
		Far:             DefaultShadowFar,
		Bias:            DefaultShadowBias,
		NormalBiasScale: DefaultShadowNormalBiasScale,
	}
}

// DirectionalLightVP builds an orthographic view-projection matrix for a directional
// light's shadow pass. The frustum is centered on center and looks along dir.
//
// Parameters:
//   - dir: normalized direction the light travels
//   - center: world-space center of the shadow frustum
//   - halfExtent: half-size of the orthographic frustum in world units
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - mgl32.Mat4: the light view-projection matrix in WebGPU clip space
func DirectionalLightVP(dir, center mgl32.Vec3, halfExtent, near, far float32) mgl32.Mat4 {
	// The eye sits behind the center, half the depth range back along the light.
	eye := center.Sub(dir.Mul(far * 0.5))

	up := mgl32.Vec3{0, 1, 0}
	if absF32(dir.Y()) > 0.99 {
		up = mgl32.Vec3{1, 0, 0}
	}

	view := mgl32.LookAtV(eye, center, up)
	proj := common.Ortho(-halfExtent, halfExtent, -halfExtent, halfExtent, near, far)
	return proj.Mul4(view)
}

// NormalBias derives the world-space normal-offset bias from the shadow map
// parameters: the distance fragment positions are shifted along their surface
// normal before projecting into light clip space.
//
// Parameters:
//   - halfExtent: orthographic frustum half-size in world units
//   - scale: multiplier on the per-texel world size
//   - resolution: shadow map resolution in texels
//
// Returns:
//   - float32: the world-space offset
func NormalBias(halfExtent, scale float32, resolution int) float32 {
	if resolution <= 0 {
		return 0
	}
	texelWorldSize := 2.0 * halfExtent / float32(resolution)
	return texelWorldSize * scale
}

func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
