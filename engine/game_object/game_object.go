package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
	"github.com/Carmen-Shannon/oxy-garden/engine/model"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
)

type gameObject struct {
	mu *sync.Mutex

	id           uint64
	name         string
	enabled      atomic.Bool
	castsShadows bool
	mdl          model.Model
	parent       GameObject

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	uniformProvider bind_group_provider.BindGroupProvider
}

// GameObject defines the interface for a node in the retained scene graph.
// A node has a local transform relative to its optional parent; nodes without a model
// act as groups that only carry a transform for their children.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// CastsShadows returns whether the object is drawn into the shadow map.
	//
	// Returns:
	//   - bool: true if the object casts shadows
	CastsShadows() bool

	// Model returns the Model associated with this object, or nil for group nodes.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Parent returns the parent node, or nil for root nodes.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Position returns the local position.
	//
	// Returns:
	//   - mgl32.Vec3: position relative to the parent
	Position() mgl32.Vec3

	// Rotation returns the local Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation angles around X, Y and Z
	Rotation() mgl32.Vec3

	// Scale returns the local scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale factors
	Scale() mgl32.Vec3

	// LocalMatrix builds the model matrix of this node relative to its parent.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	LocalMatrix() mgl32.Mat4

	// WorldMatrix builds the model matrix of this node including every ancestor.
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldMatrix() mgl32.Mat4

	// UniformProvider returns the provider for this object's per-object uniform bind group.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider, or nil before upload
	UniformProvider() bind_group_provider.BindGroupProvider

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetParent attaches this node to a parent. Pass nil to detach.
	//
	// Parameters:
	//   - p: the parent node
	SetParent(p GameObject)

	// SetPosition updates the local position.
	//
	// Parameters:
	//   - pos: new position
	SetPosition(pos mgl32.Vec3)

	// SetRotation updates the local Euler rotation.
	//
	// Parameters:
	//   - rot: new rotation angles in radians
	SetRotation(rot mgl32.Vec3)

	// SetScale updates the local scale.
	//
	// Parameters:
	//   - scale: new scale factors
	SetScale(scale mgl32.Vec3)

	// SetUniformProvider sets the provider for this object's per-object uniform bind group.
	//
	// Parameters:
	//   - provider: the bind group provider
	SetUniformProvider(provider bind_group_provider.BindGroupProvider)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled, shadow-casting GameObject configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:           &sync.Mutex{},
		castsShadows: true,
		scale:        mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) CastsShadows() bool {
	return g.castsShadows
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Parent() GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.BuildModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	local := g.LocalMatrix()
	if p := g.Parent(); p != nil {
		return p.WorldMatrix().Mul4(local)
	}
	return local
}

func (g *gameObject) UniformProvider() bind_group_provider.BindGroupProvider {
	return g.uniformProvider
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetParent(p GameObject) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.parent = p
}

func (g *gameObject) SetPosition(pos mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = pos
}

func (g *gameObject) SetRotation(rot mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = rot
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
}

func (g *gameObject) SetUniformProvider(provider bind_group_provider.BindGroupProvider) {
	g.uniformProvider = provider
}
