package model

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the vertex buffer layout of the lit and shadow pipelines.
// Size: 48 bytes (no padding required).
type GPUVertex struct {
	Position mgl32.Vec3 // offset  0: vertex position in model space (12 bytes)
	Normal   mgl32.Vec3 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord mgl32.Vec2 // offset 24: UV texture coordinate (8 bytes)
	Color    mgl32.Vec4 // offset 32: per-vertex RGBA color (16 bytes)
}

// VertexStride is the byte stride between consecutive vertices in a vertex buffer.
const VertexStride = 48

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, VertexStride)
	g.put(buf)
	return buf
}

func (g *GPUVertex) put(buf []byte) {
	off := 0
	for _, f := range g.Position {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range g.Normal {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range g.TexCoord {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
	for _, f := range g.Color {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
		off += 4
	}
}

// MarshalVertices serializes a vertex slice into one contiguous vertex buffer.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: len(vertices) * VertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i := range vertices {
		vertices[i].put(buf[i*VertexStride:])
	}
	return buf
}

// MarshalIndices serializes uint32 indices into a little-endian index buffer.
//
// Parameters:
//   - indices: the indices to serialize
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
