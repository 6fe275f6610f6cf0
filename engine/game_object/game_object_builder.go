package game_object

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the debug name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithCastsShadows sets whether the GameObject is drawn into the shadow map.
//
// Parameters:
//   - casts: false for receivers only, like the floor and walls
//
// Returns:
//   - GameObjectBuilderOption: functional option to set shadow casting
func WithCastsShadows(casts bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castsShadows = casts
	}
}

// WithModel sets the Model of the GameObject.
//
// Parameters:
//   - m: the model to render
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithParent attaches the GameObject under a parent node.
//
// Parameters:
//   - p: the parent node
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the parent
func WithParent(p GameObject) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.parent = p
	}
}

// WithPosition sets the local position of the GameObject.
//
// Parameters:
//   - pos: position relative to the parent
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(pos mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = pos
	}
}

// WithRotation sets the local Euler rotation of the GameObject.
//
// Parameters:
//   - rot: rotation angles in radians
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rot mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = rot
	}
}

// WithScale sets the local scale of the GameObject.
//
// Parameters:
//   - scale: scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(scale mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}
