// Package animator plays tween clips on game object transforms.
package animator

import (
	"errors"
	"sync"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Carmen-Shannon/oxy-garden/engine/game_object"
)

// Property selects which transform vector a clip drives.
type Property int

const (
	// PropertyPosition drives GameObject.Position.
	PropertyPosition Property = iota
	// PropertyRotation drives GameObject.Rotation, in radians.
	PropertyRotation
	// PropertyScale drives GameObject.Scale.
	PropertyScale
)

// Axis indices into a transform vector.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// ErrUnknownInstance is returned when an instance index was never added.
var ErrUnknownInstance = errors.New("animator: unknown instance")

// ErrUnknownClip is returned when a clip index was never added.
var ErrUnknownClip = errors.New("animator: unknown clip")

// Clip tweens one axis of one transform property from From to To over Duration seconds.
type Clip struct {
	Name     string
	Property Property
	Axis     int
	From     float32
	To       float32
	Duration float32
	// Ease shapes the tween; nil means linear.
	Ease ease.TweenFunc
	// Loop restarts the clip when it ends.
	Loop bool
	// PingPong plays the clip backwards after each forward pass. It implies Loop.
	PingPong bool
}

// instance is the playback state of one animated object.
type instance struct {
	target   game_object.GameObject
	clip     int // -1 when idle
	bound    int // last clip played, -1 before any
	tween    *gween.Tween
	reversed bool
	speed    float32
	value    float32
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu        *sync.Mutex
	clips     []Clip
	instances []*instance
}

// Animator defines the public interface for the animation system.
//
// The Animator keeps a list of clips and a list of instances. Each instance plays at most
// one clip at a time; PrepareFrame advances every playing instance and writes the tweened
// value into its target's transform.
type Animator interface {
	// AddClip registers a clip.
	//
	// Parameters:
	//   - c: the clip
	//
	// Returns:
	//   - uint32: the index of the added clip
	AddClip(c Clip) uint32

	// AddInstance registers an object to animate. A nil target is animated without writing
	// any transform, so its value can still be read with Value.
	//
	// Parameters:
	//   - target: the object to drive, or nil
	//
	// Returns:
	//   - uint32: the index of the newly registered instance
	AddInstance(target game_object.GameObject) uint32

	// SetTarget replaces an instance's target and writes the current value into it.
	//
	// Parameters:
	//   - index: the instance index
	//   - target: the new target, or nil
	//
	// Returns:
	//   - error: ErrUnknownInstance if the index was never added
	SetTarget(index uint32, target game_object.GameObject) error

	// InstanceCount returns the current number of registered instances.
	//
	// Returns:
	//   - uint32: the number of instances
	InstanceCount() uint32

	// PlayAnimation starts a clip on an instance from its beginning.
	//
	// Parameters:
	//   - instanceIndex: the instance to animate
	//   - clipIndex: the clip to play
	//
	// Returns:
	//   - error: ErrUnknownInstance or ErrUnknownClip
	PlayAnimation(instanceIndex, clipIndex uint32) error

	// StopAnimation halts an instance, leaving its transform at the current value.
	//
	// Parameters:
	//   - instanceIndex: the instance to stop
	StopAnimation(instanceIndex uint32)

	// SetAnimationSpeed sets the playback speed multiplier for an instance.
	//
	// Parameters:
	//   - instanceIndex: the instance to update
	//   - speed: the speed multiplier (1.0 = normal, 0.5 = half speed)
	SetAnimationSpeed(instanceIndex uint32, speed float32)

	// IsPlaying reports whether an instance has a clip in progress.
	IsPlaying(instanceIndex uint32) bool

	// Value returns the last value written for an instance, 0 before any clip played.
	Value(instanceIndex uint32) float32

	// PrepareFrame advances every playing instance by deltaTime and applies the results.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	PrepareFrame(deltaTime float32)
}

var _ Animator = &animator{}

// NewAnimator creates an Animator configured with the provided options.
//
// Parameters:
//   - options: functional options adding clips up front
//
// Returns:
//   - Animator: the new animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) AddClip(c Clip) uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c.PingPong {
		c.Loop = true
	}
	if c.Ease == nil {
		c.Ease = ease.Linear
	}
	a.clips = append(a.clips, c)
	return uint32(len(a.clips) - 1)
}

func (a *animator) AddInstance(target game_object.GameObject) uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.instances = append(a.instances, &instance{target: target, clip: -1, bound: -1, speed: 1})
	return uint32(len(a.instances) - 1)
}

func (a *animator) SetTarget(index uint32, target game_object.GameObject) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	inst := a.instance(index)
	if inst == nil {
		return ErrUnknownInstance
	}
	inst.target = target
	a.apply(inst)
	return nil
}

func (a *animator) InstanceCount() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return uint32(len(a.instances))
}

func (a *animator) PlayAnimation(instanceIndex, clipIndex uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	inst := a.instance(instanceIndex)
	if inst == nil {
		return ErrUnknownInstance
	}
	if int(clipIndex) >= len(a.clips) {
		return ErrUnknownClip
	}
	c := a.clips[clipIndex]
	inst.clip = int(clipIndex)
	inst.bound = int(clipIndex)
	inst.reversed = false
	inst.tween = gween.New(c.From, c.To, c.Duration, c.Ease)
	inst.value = c.From
	a.apply(inst)
	return nil
}

func (a *animator) StopAnimation(instanceIndex uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if inst := a.instance(instanceIndex); inst != nil {
		inst.clip = -1
		inst.tween = nil
	}
}

func (a *animator) SetAnimationSpeed(instanceIndex uint32, speed float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if inst := a.instance(instanceIndex); inst != nil && speed >= 0 {
		inst.speed = speed
	}
}

func (a *animator) IsPlaying(instanceIndex uint32) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	inst := a.instance(instanceIndex)
	return inst != nil && inst.clip >= 0
}

func (a *animator) Value(instanceIndex uint32) float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if inst := a.instance(instanceIndex); inst != nil {
		return inst.value
	}
	return 0
}

func (a *animator) PrepareFrame(deltaTime float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, inst := range a.instances {
		if inst.clip < 0 {
			continue
		}
		c := a.clips[inst.clip]
		value, done := inst.tween.Update(deltaTime * inst.speed)
		inst.value = value
		if done {
			switch {
			case c.PingPong:
				inst.reversed = !inst.reversed
				from, to := c.From, c.To
				if inst.reversed {
					from, to = to, from
				}
				inst.tween = gween.New(from, to, c.Duration, c.Ease)
			case c.Loop:
				inst.tween = gween.New(c.From, c.To, c.Duration, c.Ease)
			default:
				inst.clip = -1
				inst.tween = nil
			}
		}
		a.apply(inst)
	}
}

// instance returns the instance at index or nil. Callers hold a.mu.
func (a *animator) instance(index uint32) *instance {
	if int(index) >= len(a.instances) {
		return nil
	}
	return a.instances[index]
}

// apply writes the instance value into its target along the axis of the last clip
// played. Callers hold a.mu.
func (a *animator) apply(inst *instance) {
	if inst.target == nil || inst.bound < 0 {
		return
	}
	c := a.clips[inst.bound]
	if c.Axis < AxisX || c.Axis > AxisZ {
		return
	}
	switch c.Property {
	case PropertyPosition:
		v := inst.target.Position()
		v[c.Axis] = inst.value
		inst.target.SetPosition(v)
	case PropertyRotation:
		v := inst.target.Rotation()
		v[c.Axis] = inst.value
		inst.target.SetRotation(v)
	case PropertyScale:
		v := inst.target.Scale()
		v[c.Axis] = inst.value
		inst.target.SetScale(v)
	}
}
