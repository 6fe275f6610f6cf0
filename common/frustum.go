package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is the set of points p with Normal·p + Distance = 0. Points on the Normal side
// are inside.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// signedDistance is positive inside. Exact only for a unit Normal.
func (p Plane) signedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum is a view volume bounded by six inward-facing unit planes, in the order
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// ExtractFrustumFromMatrix derives the six planes from a view-projection matrix by
// adding and subtracting its rows. Clip depth runs over [0, w], so the near plane
// is the depth row itself.
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	x, y, z, w := viewProj.Row(0), viewProj.Row(1), viewProj.Row(2), viewProj.Row(3)
	rows := [6]mgl32.Vec4{w.Add(x), w.Sub(x), w.Add(y), w.Sub(y), z, w.Sub(z)}

	var f Frustum
	for i, r := range rows {
		n := r.Vec3()
		l := n.Len()
		if l == 0 {
			f.Planes[i] = Plane{Normal: n, Distance: r.W()}
			continue
		}
		f.Planes[i] = Plane{Normal: n.Mul(1 / l), Distance: r.W() / l}
	}
	return f
}

// ContainsSphere is false only when the sphere lies wholly outside some plane, so
// spheres near a corner may pass while still being invisible.
func (f Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.signedDistance(center) < -radius {
			return false
		}
	}
	return true
}
