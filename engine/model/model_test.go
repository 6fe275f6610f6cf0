package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var red = mgl32.Vec4{1, 0, 0, 1}

func assertIndicesInRange(t *testing.T, m Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, idx, len(m.Vertices))
		}
	}
}

func assertUnitNormals(t *testing.T, m Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		if l := v.Normal.Len(); math.Abs(float64(l-1)) > 1e-4 {
			t.Fatalf("vertex %d normal length = %v", i, l)
		}
	}
}

// assertOutwardWinding checks that each triangle's geometric normal agrees with its
// vertex normals.
func assertOutwardWinding(t *testing.T, m Mesh) {
	t.Helper()
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if face.Len() < 1e-6 {
			continue
		}
		avg := a.Normal.Add(b.Normal).Add(c.Normal)
		if face.Dot(avg) <= 0 {
			t.Fatalf("triangle %d winds against its normals", i/3)
		}
	}
}

func TestSphere(t *testing.T) {
	m := Sphere(2, 16, 12, red)
	assertIndicesInRange(t, m)
	assertUnitNormals(t, m)
	assertOutwardWinding(t, m)
	if got := m.BoundingRadius(); math.Abs(float64(got-2)) > 1e-4 {
		t.Errorf("bounding radius = %v, want 2", got)
	}
	for i, v := range m.Vertices {
		if v.Color != red {
			t.Fatalf("vertex %d color = %v", i, v.Color)
		}
	}
}

func TestCylinder(t *testing.T) {
	m := Cylinder(0.4, 10, 12, red)
	assertIndicesInRange(t, m)
	assertUnitNormals(t, m)
	assertOutwardWinding(t, m)
	for _, v := range m.Vertices {
		if y := v.Position.Y(); y > 5.0001 || y < -5.0001 {
			t.Fatalf("vertex y = %v outside half height", y)
		}
	}
	// 12 side quads plus two 12-triangle caps.
	if got, want := len(m.Indices), 3*(24+24); got != want {
		t.Errorf("index count = %d, want %d", got, want)
	}
}

func TestPlaneGradient(t *testing.T) {
	top := mgl32.Vec4{0.5, 0.7, 1, 1}
	bottom := mgl32.Vec4{1, 1, 1, 1}
	m := Plane(100, 50, PlaneOptions{TopColor: top, BottomColor: bottom})
	assertIndicesInRange(t, m)
	assertOutwardWinding(t, m)
	for i, v := range m.Vertices {
		want := bottom
		if v.Position.Y() > 0 {
			want = top
		}
		if v.Color != want {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, want)
		}
	}
}

func TestPlaneSolidColor(t *testing.T) {
	m := Plane(1, 1, PlaneOptions{Color: red})
	for i, v := range m.Vertices {
		if v.Color != red {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, red)
		}
	}
}

func TestBezierOutlineClosed(t *testing.T) {
	start := mgl32.Vec2{0, 0}
	pts := BezierOutline(start, []QuadCurve{
		{Control: mgl32.Vec2{1, 1}, End: mgl32.Vec2{0, 2}},
		{Control: mgl32.Vec2{-1, 1}, End: start},
	}, 8)
	if got, want := len(pts), 16; got != want {
		t.Fatalf("point count = %d, want %d", got, want)
	}
	if pts[8] != (mgl32.Vec2{0, 2}) {
		t.Errorf("segment end = %v, want (0, 2)", pts[8])
	}
}

func TestShapeFan(t *testing.T) {
	square := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, outline := range [][]mgl32.Vec2{square, reversed(square)} {
		m := Shape(outline, red)
		assertIndicesInRange(t, m)
		assertOutwardWinding(t, m)
		if got := len(m.Vertices); got != 5 {
			t.Errorf("vertex count = %d, want 5", got)
		}
		if m.Vertices[0].Position != (mgl32.Vec3{0.5, 0.5, 0}) {
			t.Errorf("centroid = %v", m.Vertices[0].Position)
		}
	}
	if m := Shape(square[:2], red); len(m.Vertices) != 0 {
		t.Error("degenerate outline produced geometry")
	}
}

func TestNewModelFromMesh(t *testing.T) {
	mesh := Sphere(1, 8, 6, red)
	m := NewModel(WithName("ball"), WithMesh(mesh))
	if m.IndexCount() != len(mesh.Indices) || m.VertexCount() != len(mesh.Vertices) {
		t.Errorf("counts = %d/%d, want %d/%d", m.IndexCount(), m.VertexCount(), len(mesh.Indices), len(mesh.Vertices))
	}
	if len(m.VertexData()) != len(mesh.Vertices)*VertexStride {
		t.Errorf("vertex data = %d bytes", len(m.VertexData()))
	}
	if len(m.IndexData()) != len(mesh.Indices)*4 {
		t.Errorf("index data = %d bytes", len(m.IndexData()))
	}
	if m.Material() == nil {
		t.Error("model has no default material")
	}
	v := mesh.Vertices[0]
	if got := v.Size(); got != VertexStride {
		t.Errorf("GPUVertex size = %d, want %d", got, VertexStride)
	}
}

func reversed(in []mgl32.Vec2) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(in))
	for i, p := range in {
		out[len(in)-1-i] = p
	}
	return out
}

func TestWithPackedSharesGeometry(t *testing.T) {
	p := Pack(Shape(unitSquare(), red))
	a := NewModel(WithName("a"), WithPacked(p))
	b := NewModel(WithName("b"), WithPacked(p))
	if a.IndexCount() != p.IndexCount || b.BoundingRadius() != p.Radius {
		t.Errorf("packed geometry not carried over")
	}
	if &a.VertexData()[0] != &b.VertexData()[0] {
		t.Error("models copied the shared vertex bytes")
	}
	if a.Material() == b.Material() {
		t.Error("default materials should be distinct")
	}
}

// PetalLikeOutline is a small convex outline for tests.
func unitSquare() []mgl32.Vec2 {
	return []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
}
