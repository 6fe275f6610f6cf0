package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// Mesh is CPU-side indexed triangle geometry. Triangles wind counter-clockwise when
// seen from the side their normals face.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// BoundingRadius returns the largest vertex distance from the model-space origin.
func (m Mesh) BoundingRadius() float32 {
	var r float32
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// QuadCurve is one quadratic Bezier segment of an outline. The start point is the end
// of the previous segment.
type QuadCurve struct {
	Control mgl32.Vec2
	End     mgl32.Vec2
}

// BezierOutline samples a closed 2D outline made of quadratic Bezier segments.
//
// Parameters:
//   - start: the first point of the outline
//   - curves: segments in order; the last one should end back at start
//   - steps: samples per segment, at least 1
//
// Returns:
//   - []mgl32.Vec2: the sampled points, without repeating the closing point
func BezierOutline(start mgl32.Vec2, curves []QuadCurve, steps int) []mgl32.Vec2 {
	steps = max(steps, 1)
	pts := make([]mgl32.Vec2, 0, len(curves)*steps+1)
	pts = append(pts, start)
	from := start
	for _, c := range curves {
		for s := 1; s <= steps; s++ {
			t := float32(s) / float32(steps)
			pts = append(pts, common.QuadraticBezier(from, c.Control, c.End, t))
		}
		from = c.End
	}
	if len(pts) > 1 && pts[len(pts)-1].ApproxEqual(start) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Shape triangulates a flat outline in the XY plane as a fan around its centroid.
// The outline must be star-shaped around the centroid, which holds for the convex
// and gently concave petal and leaf outlines used in the garden. Normals face +Z and
// UVs span the outline's bounding box.
//
// Parameters:
//   - outline: points in order, without a closing duplicate
//   - color: vertex color
//
// Returns:
//   - Mesh: the triangulated shape, empty if the outline has fewer than 3 points
func Shape(outline []mgl32.Vec2, color mgl32.Vec4) Mesh {
	if len(outline) < 3 {
		return Mesh{}
	}
	var centroid mgl32.Vec2
	lo := outline[0]
	hi := outline[0]
	for _, p := range outline {
		centroid = centroid.Add(p)
		lo = mgl32.Vec2{min(lo.X(), p.X()), min(lo.Y(), p.Y())}
		hi = mgl32.Vec2{max(hi.X(), p.X()), max(hi.Y(), p.Y())}
	}
	centroid = centroid.Mul(1 / float32(len(outline)))
	size := hi.Sub(lo)
	uv := func(p mgl32.Vec2) mgl32.Vec2 {
		var u, v float32
		if size.X() > 0 {
			u = (p.X() - lo.X()) / size.X()
		}
		if size.Y() > 0 {
			v = 1 - (p.Y()-lo.Y())/size.Y()
		}
		return mgl32.Vec2{u, v}
	}
	normal := mgl32.Vec3{0, 0, 1}

	m := Mesh{Vertices: make([]GPUVertex, 0, len(outline)+1)}
	m.Vertices = append(m.Vertices, GPUVertex{Position: centroid.Vec3(0), Normal: normal, TexCoord: uv(centroid), Color: color})
	for _, p := range outline {
		m.Vertices = append(m.Vertices, GPUVertex{Position: p.Vec3(0), Normal: normal, TexCoord: uv(p), Color: color})
	}

	ccw := signedArea(outline) >= 0
	n := uint32(len(outline))
	m.Indices = make([]uint32, 0, 3*n)
	for i := range n {
		a, b := 1+i, 1+(i+1)%n
		if ccw {
			m.Indices = append(m.Indices, 0, a, b)
		} else {
			m.Indices = append(m.Indices, 0, b, a)
		}
	}
	return m
}

// PlaneOptions configures Plane. A zero TopColor or BottomColor falls back to Color.
type PlaneOptions struct {
	Color       mgl32.Vec4
	TopColor    mgl32.Vec4
	BottomColor mgl32.Vec4
}

// Plane builds a width x height quad in the XY plane, centered on the origin and facing +Z.
// Vertex colors blend from TopColor at +Y to BottomColor at -Y.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - opts: vertex colors
//
// Returns:
//   - Mesh: four vertices and two triangles
func Plane(width, height float32, opts PlaneOptions) Mesh {
	top := opts.TopColor
	if top == (mgl32.Vec4{}) {
		top = opts.Color
	}
	bottom := opts.BottomColor
	if bottom == (mgl32.Vec4{}) {
		bottom = opts.Color
	}
	hw, hh := width/2, height/2
	normal := mgl32.Vec3{0, 0, 1}
	return Mesh{
		Vertices: []GPUVertex{
			{Position: mgl32.Vec3{-hw, -hh, 0}, Normal: normal, TexCoord: mgl32.Vec2{0, 1}, Color: bottom},
			{Position: mgl32.Vec3{hw, -hh, 0}, Normal: normal, TexCoord: mgl32.Vec2{1, 1}, Color: bottom},
			{Position: mgl32.Vec3{hw, hh, 0}, Normal: normal, TexCoord: mgl32.Vec2{1, 0}, Color: top},
			{Position: mgl32.Vec3{-hw, hh, 0}, Normal: normal, TexCoord: mgl32.Vec2{0, 0}, Color: top},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cylinder builds a capped cylinder along Y, centered on the origin.
//
// Parameters:
//   - radius: cylinder radius
//   - height: extent along Y
//   - segments: radial subdivisions, at least 3
//   - color: vertex color
//
// Returns:
//   - Mesh: side and cap geometry
func Cylinder(radius, height float32, segments int, color mgl32.Vec4) Mesh {
	segments = max(segments, 3)
	half := height / 2
	var m Mesh

	// Side: two rings with a duplicated seam column so UVs wrap cleanly.
	for row := range 2 {
		y := half - float32(row)*height
		for i := 0; i <= segments; i++ {
			u := float32(i) / float32(segments)
			sin, cos := sincos(u * 2 * math.Pi)
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: mgl32.Vec3{radius * sin, y, radius * cos},
				Normal:   mgl32.Vec3{sin, 0, cos},
				TexCoord: mgl32.Vec2{u, float32(row)},
				Color:    color,
			})
		}
	}
	stride := uint32(segments + 1)
	for i := range uint32(segments) {
		a, b := i, stride+i
		c, d := stride+i+1, i+1
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}

	addCap := func(top bool) {
		y, ny := half, float32(1)
		if !top {
			y, ny = -half, -1
		}
		center := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: mgl32.Vec3{0, y, 0},
			Normal:   mgl32.Vec3{0, ny, 0},
			TexCoord: mgl32.Vec2{0.5, 0.5},
			Color:    color,
		})
		for i := 0; i <= segments; i++ {
			sin, cos := sincos(float32(i) / float32(segments) * 2 * math.Pi)
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: mgl32.Vec3{radius * sin, y, radius * cos},
				Normal:   mgl32.Vec3{0, ny, 0},
				TexCoord: mgl32.Vec2{sin*0.5 + 0.5, cos*0.5 + 0.5},
				Color:    color,
			})
		}
		for i := range uint32(segments) {
			a, b := center+1+i, center+2+i
			if top {
				m.Indices = append(m.Indices, a, b, center)
			} else {
				m.Indices = append(m.Indices, b, a, center)
			}
		}
	}
	addCap(true)
	addCap(false)
	return m
}

// Sphere builds a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: subdivisions around Y, at least 3
//   - heightSegments: subdivisions from pole to pole, at least 2
//   - color: vertex color
//
// Returns:
//   - Mesh: the sphere geometry
func Sphere(radius float32, widthSegments, heightSegments int, color mgl32.Vec4) Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	var m Mesh
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinT, cosT := sincos(v * math.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinP, cosP := sincos(u * 2 * math.Pi)
			n := mgl32.Vec3{-cosP * sinT, cosT, sinP * sinT}
			m.Vertices = append(m.Vertices, GPUVertex{
				Position: n.Mul(radius),
				Normal:   n,
				TexCoord: mgl32.Vec2{u, v},
				Color:    color,
			})
		}
	}
	stride := uint32(widthSegments + 1)
	for iy := range uint32(heightSegments) {
		for ix := range uint32(widthSegments) {
			a := iy*stride + ix + 1
			b := iy*stride + ix
			c := (iy+1)*stride + ix
			d := (iy+1)*stride + ix + 1
			if iy != 0 {
				m.Indices = append(m.Indices, a, b, d)
			}
			if iy != uint32(heightSegments)-1 {
				m.Indices = append(m.Indices, b, c, d)
			}
		}
	}
	return m
}

func signedArea(pts []mgl32.Vec2) float32 {
	var a float32
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X()*q.Y() - q.X()*p.Y()
	}
	return a / 2
}

func sincos(rad float32) (float32, float32) {
	s, c := math.Sincos(float64(rad))
	return float32(s), float32(c)
}
