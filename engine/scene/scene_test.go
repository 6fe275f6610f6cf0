package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/light"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/shader"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestFrameUniformMatchesLayout(t *testing.T) {
	var u GPUFrameUniform
	if u.Size() != shader.FrameUniformSize {
		t.Fatalf("Size() = %d, want %d", u.Size(), shader.FrameUniformSize)
	}
	if got := len(u.Marshal()); got != shader.FrameUniformSize {
		t.Fatalf("len(Marshal()) = %d, want %d", got, shader.FrameUniformSize)
	}
}

func TestFrameUniformOffsets(t *testing.T) {
	u := GPUFrameUniform{
		ViewProj:  mgl32.Ident4(),
		CameraPos: mgl32.Vec3{1, 2, 3},
		Light: light.GPUDirectionalLight{
			Direction: mgl32.Vec3{0, -1, 0},
			Intensity: 0.8,
		},
		Shadow:  light.GPUShadowData{Bias: 0.5},
		Ambient: mgl32.Vec3{0.1, 0.2, 0.3},
	}
	buf := u.Marshal()

	tests := []struct {
		name   string
		offset int
		want   float32
	}{
		{"view_proj[0]", 0, 1},
		{"view_proj[15]", 60, 1},
		{"camera_pos.z", 72, 3},
		{"light.direction.y", 84, -1},
		{"light.intensity", 92, 0.8},
		{"shadow.bias", 112 + 72, 0.5},
		{"ambient.x", 192, 0.1},
		{"ambient.z", 200, 0.3},
	}
	for _, tt := range tests {
		if got := floatAt(buf, tt.offset); got != tt.want {
			t.Errorf("%s @%d = %v, want %v", tt.name, tt.offset, got, tt.want)
		}
	}
}

func TestIsVisible(t *testing.T) {
	vp := common.Perspective(common.DegToRad(75), 1, 0.1, 100).
		Mul4(mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	f := common.ExtractFrustumFromMatrix(vp)

	tests := []struct {
		name   string
		world  mgl32.Mat4
		radius float32
		want   bool
	}{
		{"origin", mgl32.Ident4(), 1, true},
		{"behind camera", mgl32.Translate3D(0, 0, 30), 1, false},
		{"beyond far plane", mgl32.Translate3D(0, 0, -200), 1, false},
		{"far left", mgl32.Translate3D(-100, 0, 0), 1, false},
		{"scaled into view", mgl32.Translate3D(-100, 0, 0).Mul4(mgl32.Scale3D(100, 100, 100)), 1, true},
	}
	for _, tt := range tests {
		if got := isVisible(f, tt.world, tt.radius); got != tt.want {
			t.Errorf("%s: isVisible = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMaxAxisScale(t *testing.T) {
	m := mgl32.HomogRotate3DY(1.2).Mul4(mgl32.Scale3D(2, 5, 3))
	if got := maxAxisScale(m); math.Abs(float64(got-5)) > 1e-5 {
		t.Fatalf("maxAxisScale = %v, want 5", got)
	}
}

func TestGrowReusesCapacity(t *testing.T) {
	s := make([][]byte, 4, 8)
	if got := growBytes(s, 6); cap(got) != 8 || len(got) != 6 {
		t.Fatalf("growBytes reallocated: len %d cap %d", len(got), cap(got))
	}
	if got := growBools(nil, 3); len(got) != 3 {
		t.Fatalf("growBools len = %d, want 3", len(got))
	}
}

func TestWhiteTexelIsValid(t *testing.T) {
	tex := whiteTexel()
	if int(tex.Width*tex.Height*4) != len(tex.Pixels) {
		t.Fatalf("white texel has %d bytes for %dx%d", len(tex.Pixels), tex.Width, tex.Height)
	}
}
