package game_object

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/model"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
)

func assertVecNear(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func TestNewGameObjectDefaults(t *testing.T) {
	g := NewGameObject()
	if !g.Enabled() || !g.CastsShadows() {
		t.Errorf("enabled/casts = %v/%v, want true/true", g.Enabled(), g.CastsShadows())
	}
	if g.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("scale = %v", g.Scale())
	}
	if g.WorldMatrix() != mgl32.Ident4() {
		t.Error("default world matrix is not identity")
	}
}

func TestWorldMatrixFollowsParent(t *testing.T) {
	root := NewGameObject(WithPosition(mgl32.Vec3{0, 10, 0}))
	child := NewGameObject(WithParent(root), WithPosition(mgl32.Vec3{1, 0, 0}))

	origin := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVecNear(t, "child origin", origin, mgl32.Vec3{1, 10, 0})

	root.SetRotation(mgl32.Vec3{0, 0, math.Pi / 2})
	origin = child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVecNear(t, "rotated child origin", origin, mgl32.Vec3{0, 11, 0})

	child.SetParent(nil)
	origin = child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVecNear(t, "detached child origin", origin, mgl32.Vec3{1, 0, 0})
}

func TestToGPUUniform(t *testing.T) {
	mat := material.NewMaterial(material.WithBaseColor(mgl32.Vec4{1, 0, 0, 1}))
	g := NewGameObject(
		WithModel(model.NewModel(model.WithMaterial(mat))),
		WithPosition(mgl32.Vec3{10, 20, 0}),
		WithScale(mgl32.Vec3{2, 2, 2}),
	)
	u := ToGPUUniform(g)
	if u.Model.Col(3) != (mgl32.Vec4{10, 20, 0, 1}) {
		t.Errorf("translation column = %v", u.Model.Col(3))
	}
	if u.Material.BaseColor != mat.BaseColor() {
		t.Errorf("material color = %v", u.Material.BaseColor)
	}
	n := u.Normal.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3().Normalize()
	assertVecNear(t, "normal", n, mgl32.Vec3{0, 1, 0})
	if got := len(u.Marshal()); got != u.Size() || got != 160 {
		t.Errorf("marshal = %d bytes, Size() = %d, want 160", got, u.Size())
	}
}
