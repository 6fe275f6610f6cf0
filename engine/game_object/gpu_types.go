package game_object

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
)

// GPUObjectUniform is the GPU-aligned per-object uniform shared by the lit and shadow pipelines.
// Size: 160 bytes (WGSL aligned).
//
// Layout:
//
//	mat4x4<f32> model      (64 bytes, offset 0)
//	mat4x4<f32> normal     (64 bytes, offset 64)
//	Material    material   (32 bytes, offset 128)
type GPUObjectUniform struct {
	Model    mgl32.Mat4
	Normal   mgl32.Mat4
	Material material.GPUMaterial
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (u *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (u *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 160)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(u.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(u.Normal[i]))
	}
	copy(buf[128:], u.Material.Marshal())
	return buf
}

// ToGPUUniform builds the per-object uniform from the object's world transform and
// its model's material.
//
// Parameters:
//   - g: the object to convert; its model must be set
//
// Returns:
//   - GPUObjectUniform: the GPU-aligned uniform
func ToGPUUniform(g GameObject) GPUObjectUniform {
	world := g.WorldMatrix()
	u := GPUObjectUniform{
		Model:  world,
		Normal: common.NormalMatrix(world),
	}
	if m := g.Model(); m != nil && m.Material() != nil {
		u.Material = m.Material().GPU()
	}
	return u
}
