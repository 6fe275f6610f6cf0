package material

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUMaterial is the GPU-aligned representation of the material parameters embedded in
// the per-object uniform. Matches the WGSL Material struct in the lit shader.
// Size: 32 bytes (WGSL aligned).
type GPUMaterial struct {
	BaseColor      mgl32.Vec4 // offset  0: RGBA base color (16 bytes)
	TextureRepeat  mgl32.Vec2 // offset 16: UV repeat counts (8 bytes)
	UseTexture     float32    // offset 24: 1 when the texture is sampled
	UseVertexColor float32    // offset 28: 1 when vertex colors are applied
}

// Size returns the size of the GPUMaterial struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterial) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterial struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterial) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.BaseColor[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.TextureRepeat[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.TextureRepeat[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.UseTexture))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.UseVertexColor))
	return buf
}
