package garden

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-garden/engine/texture"
)

type recordingScene struct {
	added []game_object.GameObject
	fail  error
}

func (s *recordingScene) Add(obj game_object.GameObject) (uint64, error) {
	if s.fail != nil {
		return 0, s.fail
	}
	s.added = append(s.added, obj)
	return uint64(len(s.added)), nil
}

// vec3Near compares per component with an absolute tolerance, so float noise around a
// zero component does not fail the check.
func vec3Near(got, want mgl32.Vec3) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func byName(objs []game_object.GameObject) map[string]game_object.GameObject {
	m := make(map[string]game_object.GameObject, len(objs))
	for _, o := range objs {
		m[o.Name()] = o
	}
	return m
}

func TestBuildObjects(t *testing.T) {
	cfg := DefaultConfig()
	drawables, objs, err := BuildObjects(cfg)
	if err != nil {
		t.Fatal(err)
	}
	// floor, 2 walls, stem, head, petals, 2 leaves, ball
	if want := 1 + 2 + 2 + PetalCount + 2 + 1; len(drawables) != want {
		t.Fatalf("got %d drawables, want %d", len(drawables), want)
	}
	for _, o := range drawables {
		if o.Model() == nil {
			t.Errorf("%s has no model", o.Name())
		}
	}
	if objs.Flower.Model() != nil {
		t.Error("flower group should not carry a model")
	}

	named := byName(drawables)
	if objs.Ball != named["ball"] {
		t.Error("Objects.Ball is not the drawn ball")
	}
	if objs.Ball.Position() != cfg.Scene.BallStart {
		t.Errorf("ball starts at %v", objs.Ball.Position())
	}
	if r := objs.Ball.Model().BoundingRadius(); r < cfg.Physics.Radius-1e-4 || r > cfg.Physics.Radius+1e-4 {
		t.Errorf("ball mesh radius = %v, want %v", r, cfg.Physics.Radius)
	}
}

func TestFloorIsCheckerboard(t *testing.T) {
	drawables, _, err := BuildObjects(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	floor := byName(drawables)["floor"]
	if floor.CastsShadows() {
		t.Error("floor should not cast shadows")
	}
	mat := floor.Model().Material()
	tex := mat.Texture()
	if tex == nil || tex.Width != 8 || tex.Height != 8 {
		t.Fatalf("floor texture = %+v", tex)
	}
	img, _ := texture.Checkerboard(8)
	if string(tex.Pixels) != string(img.Pixels()) {
		t.Error("floor texture is not the checkerboard")
	}
	if !mat.Sampler().Nearest {
		t.Error("floor should sample with nearest filtering")
	}
	if mat.TextureRepeat() != (mgl32.Vec2{10, 10}) {
		t.Errorf("repeat = %v", mat.TextureRepeat())
	}

	// The floor normal points up after the model rotation.
	n := floor.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if !vec3Near(n, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("floor normal = %v", n)
	}
}

func TestWallsAreGradientAndDoubleSided(t *testing.T) {
	drawables, _, err := BuildObjects(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	named := byName(drawables)
	for _, name := range []string{"back wall", "left wall"} {
		w := named[name]
		mat := w.Model().Material()
		if !mat.DoubleSided() || mat.PipelineKey() != material.PipelineLitDoubleSided {
			t.Errorf("%s: not double-sided", name)
		}
		if !mat.UseVertexColor() {
			t.Errorf("%s: vertex colors disabled", name)
		}
		if w.CastsShadows() {
			t.Errorf("%s: casts shadows", name)
		}
	}
	n := named["left wall"].WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if !vec3Near(n, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("left wall normal = %v, want +X", n)
	}
}

func TestFlowerPartsFollowRoot(t *testing.T) {
	drawables, objs, err := BuildObjects(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	head := byName(drawables)["flower head"]
	before := head.WorldMatrix().Col(3).Vec3()
	if !vec3Near(before, mgl32.Vec3{0, StemHeight, 0}) {
		t.Fatalf("head at %v", before)
	}
	objs.Flower.SetRotation(mgl32.Vec3{0, 0, 0.1})
	after := head.WorldMatrix().Col(3).Vec3()
	if after.X() >= 0 {
		t.Fatalf("head did not lean with the flower: %v", after)
	}
}

func TestOutlinesAreClosedShapes(t *testing.T) {
	for name, outline := range map[string][]mgl32.Vec2{"petal": PetalOutline(), "leaf": LeafOutline()} {
		if len(outline) != 2*petalSamples {
			t.Errorf("%s: %d points, want %d", name, len(outline), 2*petalSamples)
		}
		if outline[0] != (mgl32.Vec2{}) {
			t.Errorf("%s: starts at %v", name, outline[0])
		}
	}
}

func TestPopulate(t *testing.T) {
	s := &recordingScene{}
	objs, err := Populate(s, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.added) != 1+2+2+PetalCount+2+1 || objs.Ball == nil {
		t.Fatalf("added %d objects", len(s.added))
	}

	boom := errors.New("boom")
	if _, err := Populate(&recordingScene{fail: boom}, DefaultConfig()); !errors.Is(err, boom) {
		t.Fatalf("Populate() = %v, want wrapped scene error", err)
	}
}

func TestBuildObjectsRejectsBadChecker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.CheckerSize = 0
	if _, _, err := BuildObjects(cfg); !errors.Is(err, texture.ErrInvalidSize) {
		t.Fatalf("BuildObjects() = %v, want ErrInvalidSize", err)
	}
}

func TestNewCameraAndLight(t *testing.T) {
	cfg := DefaultConfig()
	cam := NewCamera(cfg.Camera, 16.0/9.0)
	if lens := cam.Lens(); lens.Aspect != 16.0/9.0 || lens.Near != 0.1 || lens.Far != 1000 {
		t.Errorf("camera lens = %+v", lens)
	}
	l := NewLight(cfg.Light)
	want := mgl32.Vec3{-20, -40, -20}.Normalize()
	if !vec3Near(l.Direction(), want) || !l.CastsShadows() {
		t.Errorf("light direction = %v, casts = %v", l.Direction(), l.CastsShadows())
	}
}
