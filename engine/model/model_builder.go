package model

import (
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
)

// ModelBuilderOption configures a Model in NewModel.
type ModelBuilderOption func(*model)

// WithName sets the debug name, also used to label GPU buffers.
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh packs mesh as the model's geometry.
func WithMesh(mesh Mesh) ModelBuilderOption {
	return func(m *model) {
		m.packed = Pack(mesh)
	}
}

// WithPacked uses geometry that was already packed, so several models can share it
// under different materials.
func WithPacked(p Packed) ModelBuilderOption {
	return func(m *model) {
		m.packed = p
	}
}

// WithMaterial sets the material.
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.mat = mat
	}
}
