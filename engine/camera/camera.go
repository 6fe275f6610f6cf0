// Package camera holds the perspective look-at camera the scene renders through.
package camera

import (
	"errors"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-garden/common"
)

// Lens is the perspective projection of a Camera.
type Lens struct {
	// Fov is the vertical field of view in radians.
	Fov    float32
	// Aspect is width over height.
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultLens is a 45 degree square lens clipping at 0.1 and 100.
func DefaultLens() Lens {
	return Lens{Fov: common.DegToRad(45), Aspect: 1, Near: 0.1, Far: 100}
}

// Validate reports whether the lens can build a projection.
func (l Lens) Validate() error {
	switch {
	case l.Fov <= 0 || l.Fov >= math.Pi:
		return errors.New("camera: fov must be within (0, pi)")
	case l.Aspect <= 0:
		return errors.New("camera: aspect must be positive")
	case l.Near <= 0 || l.Far <= l.Near:
		return errors.New("camera: want 0 < near < far")
	}
	return nil
}

// Projection is the WebGPU clip-space projection, depth in [0, 1].
func (l Lens) Projection() mgl32.Mat4 {
	return common.Perspective(l.Fov, l.Aspect, l.Near, l.Far)
}

type cameraImpl struct {
	mu *sync.RWMutex

	eye, target, up mgl32.Vec3
	lens            Lens

	view, proj, viewProj mgl32.Mat4
}

// Camera is a perspective camera looking from an eye point at a target. Every setter
// rebuilds the matrices so the getters only copy.
type Camera interface {
	// Position returns the eye point.
	Position() mgl32.Vec3
	// Target returns the look-at point.
	Target() mgl32.Vec3
	Up() mgl32.Vec3
	Lens() Lens

	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	// ViewProjectionMatrix is ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl32.Mat4

	SetPosition(pos mgl32.Vec3)
	SetTarget(target mgl32.Vec3)

	// SetLens replaces the projection. An invalid lens is rejected and the old one kept.
	//
	// Parameters:
	//   - lens: the new projection parameters
	//
	// Returns:
	//   - error: from Lens.Validate
	SetLens(lens Lens) error

	// SetAspect follows a framebuffer resize. Non-positive ratios, as reported for a
	// minimized window, are ignored.
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at (0, 0, 5) looking at the origin through DefaultLens,
// then applies options.
//
// Parameters:
//   - options: placement and lens overrides
//
// Returns:
//   - Camera: the camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:   &sync.RWMutex{},
		eye:  mgl32.Vec3{0, 0, 5},
		up:   mgl32.Vec3{0, 1, 0},
		lens: DefaultLens(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.rebuild()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.up
}

func (c *cameraImpl) Lens() Lens {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lens
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.proj
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewProj
}

func (c *cameraImpl) SetPosition(pos mgl32.Vec3) {
	c.update(func() { c.eye = pos })
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.update(func() { c.target = target })
}

func (c *cameraImpl) SetLens(lens Lens) error {
	if err := lens.Validate(); err != nil {
		return err
	}
	c.update(func() { c.lens = lens })
	return nil
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.update(func() { c.lens.Aspect = aspect })
}

func (c *cameraImpl) update(change func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	change()
	c.rebuild()
}

// rebuild recomputes the matrices. c.mu is held or c is not yet shared.
func (c *cameraImpl) rebuild() {
	c.view = mgl32.LookAtV(c.eye, c.target, c.up)
	c.proj = c.lens.Projection()
	c.viewProj = c.proj.Mul4(c.view)
}
