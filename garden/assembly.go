package garden

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/camera"
	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
	"github.com/Carmen-Shannon/oxy-garden/engine/light"
	"github.com/Carmen-Shannon/oxy-garden/engine/model"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-garden/engine/texture"
)

// Fixed flower dimensions, in world units.
const (
	StemRadius   float32 = 0.4
	StemHeight   float32 = 10
	HeadRadius   float32 = 1
	PetalCount           = 6
	petalSamples         = 12
	meshSegments         = 32
)

// Palette.
var (
	stemGreen  = mgl32.Vec4{0.13, 0.55, 0.13, 1}
	leafGreen  = mgl32.Vec4{0.2, 0.7, 0.25, 1}
	petalPink  = mgl32.Vec4{1, 0.41, 0.71, 1}
	headYellow = mgl32.Vec4{1, 0.85, 0.1, 1}
	ballRed    = mgl32.Vec4{0.9, 0.1, 0.1, 1}
	wallTop    = mgl32.Vec4{0.53, 0.81, 0.98, 1}
	wallBottom = mgl32.Vec4{0.95, 0.95, 1, 1}
	skyClear   = wgpu.Color{R: 0.53, G: 0.81, B: 0.98, A: 1}
)

// ClearColor is the background the renderer clears to.
func ClearColor() wgpu.Color {
	return skyClear
}

// Objects holds the garden objects the simulation moves.
type Objects struct {
	// Ball follows the physics state.
	Ball game_object.GameObject
	// Flower is the group node every flower part hangs from; it has no model of its own.
	Flower game_object.GameObject
}

// SceneAdder is the part of a scene the garden is assembled into.
type SceneAdder interface {
	Add(obj game_object.GameObject) (uint64, error)
}

// Populate builds every garden object and adds the drawable ones to s.
//
// Parameters:
//   - s: the target scene
//   - cfg: the garden configuration
//
// Returns:
//   - Objects: the objects the world moves
//   - error: a texture or scene error
func Populate(s SceneAdder, cfg Config) (Objects, error) {
	drawables, objs, err := BuildObjects(cfg)
	if err != nil {
		return Objects{}, err
	}
	for _, obj := range drawables {
		if _, err := s.Add(obj); err != nil {
			return Objects{}, fmt.Errorf("garden: add %s: %w", obj.Name(), err)
		}
	}
	return objs, nil
}

// BuildObjects creates the floor, walls, flower and ball without touching the GPU.
//
// Parameters:
//   - cfg: the garden configuration
//
// Returns:
//   - []game_object.GameObject: every object with a model, in draw order
//   - Objects: the objects the world moves
//   - error: a texture synthesis error
func BuildObjects(cfg Config) ([]game_object.GameObject, Objects, error) {
	floor, err := newFloor(cfg.Scene)
	if err != nil {
		return nil, Objects{}, err
	}
	drawables := []game_object.GameObject{floor}
	drawables = append(drawables, newWalls(cfg.Scene)...)

	flower := game_object.NewGameObject(game_object.WithName("flower"))
	drawables = append(drawables, newFlowerParts(flower)...)

	ball := newBall(cfg)
	drawables = append(drawables, ball)

	return drawables, Objects{Ball: ball, Flower: flower}, nil
}

// NewCamera builds the perspective camera from cfg.
func NewCamera(cfg CameraConfig, aspect float32) camera.Camera {
	return camera.NewCamera(
		camera.WithPosition(cfg.Position),
		camera.WithTarget(cfg.Target),
		camera.WithLens(camera.Lens{
			Fov:    common.DegToRad(cfg.Fov),
			Aspect: aspect,
			Near:   cfg.Near,
			Far:    cfg.Far,
		}),
	)
}

// NewLight builds the directional light from cfg.
func NewLight(cfg LightConfig) light.Light {
	l := light.NewLight(
		light.WithAim(cfg.Position, cfg.Target),
		light.WithColor(cfg.Color, cfg.Intensity),
	)
	l.SetCastsShadows(cfg.CastsShadows)
	return l
}

func newFloor(cfg SceneConfig) (game_object.GameObject, error) {
	img, err := texture.Checkerboard(cfg.CheckerSize)
	if err != nil {
		return nil, fmt.Errorf("garden: floor texture: %w", err)
	}
	mat := material.NewMaterial(
		material.WithName("checkerboard"),
		material.WithTexture(img.StagingData(), common.SamplerStagingData{Nearest: true}),
		material.WithTextureRepeat(cfg.FloorRepeat, cfg.FloorRepeat),
	)
	mdl := model.NewModel(
		model.WithName("floor"),
		model.WithMesh(model.Plane(cfg.FloorSize, cfg.FloorSize, model.PlaneOptions{Color: mgl32.Vec4{1, 1, 1, 1}})),
		model.WithMaterial(mat),
	)
	// The plane faces +Z; tip it back so it faces +Y.
	return game_object.NewGameObject(
		game_object.WithName("floor"),
		game_object.WithModel(mdl),
		game_object.WithRotation(mgl32.Vec3{-math.Pi / 2, 0, 0}),
		game_object.WithCastsShadows(false),
	), nil
}

func newWalls(cfg SceneConfig) []game_object.GameObject {
	mat := material.NewMaterial(
		material.WithName("wall gradient"),
		material.WithVertexColor(true),
		material.WithDoubleSided(true),
	)
	mdl := model.NewModel(
		model.WithName("wall"),
		model.WithMesh(model.Plane(cfg.FloorSize, cfg.WallHeight, model.PlaneOptions{TopColor: wallTop, BottomColor: wallBottom})),
		model.WithMaterial(mat),
	)
	half := cfg.FloorSize / 2
	back := game_object.NewGameObject(
		game_object.WithName("back wall"),
		game_object.WithModel(mdl),
		game_object.WithPosition(mgl32.Vec3{0, cfg.WallHeight / 2, -half}),
		game_object.WithCastsShadows(false),
	)
	left := game_object.NewGameObject(
		game_object.WithName("left wall"),
		game_object.WithModel(mdl),
		game_object.WithPosition(mgl32.Vec3{-half, cfg.WallHeight / 2, 0}),
		game_object.WithRotation(mgl32.Vec3{0, math.Pi / 2, 0}),
		game_object.WithCastsShadows(false),
	)
	return []game_object.GameObject{back, left}
}

// newFlowerParts hangs the stem, head, petals and leaves from root. Positions are
// relative to the base of the stem.
func newFlowerParts(root game_object.GameObject) []game_object.GameObject {
	solid := func(name string, color mgl32.Vec4, doubleSided bool) material.Material {
		return material.NewMaterial(
			material.WithName(name),
			material.WithBaseColor(color),
			material.WithDoubleSided(doubleSided),
		)
	}

	stem := game_object.NewGameObject(
		game_object.WithName("stem"),
		game_object.WithParent(root),
		game_object.WithPosition(mgl32.Vec3{0, StemHeight / 2, 0}),
		game_object.WithModel(model.NewModel(
			model.WithName("stem"),
			model.WithMesh(model.Cylinder(StemRadius, StemHeight, meshSegments, mgl32.Vec4{1, 1, 1, 1})),
			model.WithMaterial(solid("stem", stemGreen, false)),
		)),
	)
	head := game_object.NewGameObject(
		game_object.WithName("flower head"),
		game_object.WithParent(root),
		game_object.WithPosition(mgl32.Vec3{0, StemHeight, 0}),
		game_object.WithModel(model.NewModel(
			model.WithName("flower head"),
			model.WithMesh(model.Sphere(HeadRadius, meshSegments, meshSegments/2, mgl32.Vec4{1, 1, 1, 1})),
			model.WithMaterial(solid("flower head", headYellow, false)),
		)),
	)
	parts := []game_object.GameObject{stem, head}

	petal := model.NewModel(
		model.WithName("petal"),
		model.WithMesh(model.Shape(PetalOutline(), mgl32.Vec4{1, 1, 1, 1})),
		model.WithMaterial(solid("petal", petalPink, true)),
	)
	for i := range PetalCount {
		angle := float32(i) * 2 * math.Pi / PetalCount
		parts = append(parts, game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("petal %d", i)),
			game_object.WithParent(root),
			game_object.WithModel(petal),
			game_object.WithPosition(mgl32.Vec3{0, StemHeight, 0.1}),
			game_object.WithRotation(mgl32.Vec3{0, 0, angle}),
		))
	}

	leaf := model.NewModel(
		model.WithName("leaf"),
		model.WithMesh(model.Shape(LeafOutline(), mgl32.Vec4{1, 1, 1, 1})),
		model.WithMaterial(solid("leaf", leafGreen, true)),
	)
	parts = append(parts,
		game_object.NewGameObject(
			game_object.WithName("leaf right"),
			game_object.WithParent(root),
			game_object.WithModel(leaf),
			game_object.WithPosition(mgl32.Vec3{StemRadius, 3, 0}),
			game_object.WithRotation(mgl32.Vec3{0, 0, 0.3}),
		),
		game_object.NewGameObject(
			game_object.WithName("leaf left"),
			game_object.WithParent(root),
			game_object.WithModel(leaf),
			game_object.WithPosition(mgl32.Vec3{-StemRadius, 5, 0}),
			game_object.WithRotation(mgl32.Vec3{0, 0, math.Pi - 0.3}),
		),
	)
	return parts
}

func newBall(cfg Config) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName("ball"),
		game_object.WithPosition(cfg.Scene.BallStart),
		game_object.WithModel(model.NewModel(
			model.WithName("ball"),
			model.WithMesh(model.Sphere(cfg.Physics.Radius, meshSegments, meshSegments/2, mgl32.Vec4{1, 1, 1, 1})),
			model.WithMaterial(material.NewMaterial(
				material.WithName("ball"),
				material.WithBaseColor(ballRed),
			)),
		)),
	)
}

// PetalOutline is a 4-unit petal along +Y with its base at the origin.
func PetalOutline() []mgl32.Vec2 {
	return model.BezierOutline(mgl32.Vec2{0, 0}, []model.QuadCurve{
		{Control: mgl32.Vec2{1.6, 2}, End: mgl32.Vec2{0, 4}},
		{Control: mgl32.Vec2{-1.6, 2}, End: mgl32.Vec2{0, 0}},
	}, petalSamples)
}

// LeafOutline is a 3-unit leaf along +X with its base at the origin.
func LeafOutline() []mgl32.Vec2 {
	return model.BezierOutline(mgl32.Vec2{0, 0}, []model.QuadCurve{
		{Control: mgl32.Vec2{1.5, 1}, End: mgl32.Vec2{3, 0}},
		{Control: mgl32.Vec2{1.5, -1}, End: mgl32.Vec2{0, 0}},
	}, petalSamples)
}
