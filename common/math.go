package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipRemap converts OpenGL clip-space depth ([-1, 1]) into WebGPU clip-space depth ([0, 1]).
// mgl32 builds GL-style projections, so every projection handed to the GPU is premultiplied by this.
var clipRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a perspective projection matrix in WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipRemap.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho creates an orthographic projection matrix in WebGPU clip space (depth in [0, 1]).
//
// Parameters:
//   - left, right, bottom, top: view volume extents
//   - near, far: clipping plane distances
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return clipRemap.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot.Y()).
		Mul4(mgl32.HomogRotate3DX(rot.X())).
		Mul4(mgl32.HomogRotate3DZ(rot.Z()))
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(r).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// NormalMatrix returns the inverse-transpose of a model matrix, used to transform normals
// under non-uniform scale. A singular model matrix yields the identity.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	if model.Det() == 0 {
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}

// QuadraticBezier evaluates a quadratic Bezier curve at t in [0, 1].
//
// Parameters:
//   - p0: start point
//   - p1: control point
//   - p2: end point
//   - t: curve parameter
//
// Returns:
//   - mgl32.Vec2: the point on the curve
func QuadraticBezier(p0, p1, p2 mgl32.Vec2, t float32) mgl32.Vec2 {
	u := 1 - t
	return p0.Mul(u * u).Add(p1.Mul(2 * u * t)).Add(p2.Mul(t * t))
}

// DegToRad converts degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * math.Pi / 180
}
