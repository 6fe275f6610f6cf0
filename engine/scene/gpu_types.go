package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/light"
)

// GPUFrameUniform is the GPU-aligned per-frame uniform read by the lit pipeline.
// Size: 208 bytes (WGSL aligned).
//
// Layout:
//
//	mat4x4<f32>      view_proj   (64 bytes, offset 0)
//	vec3<f32>        camera_pos  (12 bytes, offset 64, padded to 16)
//	DirectionalLight light       (32 bytes, offset 80)
//	ShadowData       shadow      (80 bytes, offset 112)
//	vec3<f32>        ambient     (12 bytes, offset 192, padded to 16)
type GPUFrameUniform struct {
	ViewProj  mgl32.Mat4
	CameraPos mgl32.Vec3
	_         float32
	Light     light.GPUDirectionalLight
	Shadow    light.GPUShadowData
	Ambient   mgl32.Vec3
	_         float32
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (208)
func (u *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 208-byte buffer ready for GPU upload
func (u *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 208)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.ViewProj[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(u.CameraPos[i]))
		binary.LittleEndian.PutUint32(buf[192+i*4:], math.Float32bits(u.Ambient[i]))
	}
	copy(buf[80:112], u.Light.Marshal())
	copy(buf[112:192], u.Shadow.Marshal())
	return buf
}
