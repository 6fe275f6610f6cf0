package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUDirectionalLight is the GPU-aligned representation of the scene's directional light.
// Matches the WGSL DirectionalLight struct in the lit shader.
// Size: 32 bytes (WGSL aligned).
type GPUDirectionalLight struct {
	Direction    mgl32.Vec3 // offset  0: normalized travel direction
	Intensity    float32    // offset 12: scalar multiplier, 0 when disabled
	Color        mgl32.Vec3 // offset 16: RGB color
	CastsShadows uint32     // offset 28: 1 = sample the shadow map, 0 = fully lit
}

// Size is 32.
func (g *GPUDirectionalLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal packs the light little-endian in WGSL layout.
func (g *GPUDirectionalLight) Marshal() []byte {
	buf := make([]byte, 32)
	putVec3(buf[0:12], g.Direction)
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Intensity))
	putVec3(buf[16:28], g.Color)
	binary.LittleEndian.PutUint32(buf[28:32], g.CastsShadows)
	return buf
}

// ToGPULight converts a Light into its GPU-aligned representation.
// A disabled light marshals with zero intensity.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPUDirectionalLight: the GPU-aligned representation
func ToGPULight(l Light) GPUDirectionalLight {
	g := GPUDirectionalLight{
		Direction: l.Direction(),
		Color:     l.Color(),
	}
	if l.Enabled() {
		g.Intensity = l.Intensity()
		if l.CastsShadows() {
			g.CastsShadows = 1
		}
	}
	return g
}

// GPUShadowData is the GPU-aligned representation of directional shadow data.
// Matches the WGSL ShadowData struct layout exactly.
// Size: 80 bytes (WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> light_vp       (64 bytes, offset 0)
//	vec2<f32>   texel_size     ( 8 bytes, offset 64)
//	f32         bias           ( 4 bytes, offset 72)
//	f32         normal_bias    ( 4 bytes, offset 76)
type GPUShadowData struct {
	LightVP    mgl32.Mat4 // orthographic view-projection from light's perspective
	TexelSize  mgl32.Vec2 // 1.0 / shadow_map_resolution for PCF offset calculations
	Bias       float32    // depth comparison bias to reduce shadow acne
	NormalBias float32    // world-space normal-offset distance for shadow lookup
}

// NewShadowData computes the shadow data for a light and shadow settings, with the
// shadow frustum centered on center.
//
// Parameters:
//   - l: the shadow-casting light
//   - s: shadow map settings
//   - center: world-space center of the shadow frustum
//
// Returns:
//   - GPUShadowData: the populated shadow data
func NewShadowData(l Light, s ShadowSettings, center mgl32.Vec3) GPUShadowData {
	texel := float32(0)
	if s.Resolution > 0 {
		texel = 1.0 / float32(s.Resolution)
	}
	return GPUShadowData{
		LightVP:    DirectionalLightVP(l.Direction(), center, s.HalfExtent, s.Near, s.Far),
		TexelSize:  mgl32.Vec2{texel, texel},
		Bias:       s.Bias,
		NormalBias: NormalBias(s.HalfExtent, s.NormalBiasScale, s.Resolution),
	}
}

// Size is 80.
func (s *GPUShadowData) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal packs the shadow block little-endian in WGSL layout.
func (s *GPUShadowData) Marshal() []byte {
	buf := make([]byte, 80)
	putMat4(buf[0:64], s.LightVP)
	binary.LittleEndian.PutUint32(buf[64:68], math.Float32bits(s.TexelSize[0]))
	binary.LittleEndian.PutUint32(buf[68:72], math.Float32bits(s.TexelSize[1]))
	binary.LittleEndian.PutUint32(buf[72:76], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[76:80], math.Float32bits(s.NormalBias))
	return buf
}

// GPUShadowUniform is the shadow pass's only uniform, the light view-projection.
type GPUShadowUniform struct {
	LightVP mgl32.Mat4 // orthographic view-projection from light's perspective
}

// Size is 64.
func (u *GPUShadowUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal packs the matrix column-major.
func (u *GPUShadowUniform) Marshal() []byte {
	buf := make([]byte, 64)
	putMat4(buf, u.LightVP)
	return buf
}

func putVec3(buf []byte, v mgl32.Vec3) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}

func putMat4(buf []byte, m mgl32.Mat4) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
}
