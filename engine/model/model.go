package model

import (
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-garden/engine/renderer/material"
)

// Packed is a Mesh serialized for upload, with the numbers the scene needs without
// reparsing it.
type Packed struct {
	Vertices []byte
	Indices  []byte

	VertexCount int
	IndexCount  int
	// Radius is the largest vertex distance from the mesh origin.
	Radius      float32
}

// Pack serializes m.
func Pack(m Mesh) Packed {
	return Packed{
		Vertices:    MarshalVertices(m.Vertices),
		Indices:     MarshalIndices(m.Indices),
		VertexCount: len(m.Vertices),
		IndexCount:  len(m.Indices),
		Radius:      m.BoundingRadius(),
	}
}

type model struct {
	name   string
	mat    material.Material
	packed Packed

	// set by the scene on first Add, cleared when the last user is removed
	mesh bind_group_provider.BindGroupProvider
}

// Model is shared geometry plus the material it is drawn with. One Model backs any
// number of game objects; its GPU buffers are uploaded once.
type Model interface {
	Name() string

	// Material is never nil for a Model built with NewModel.
	Material() material.Material
	SetMaterial(mat material.Material)

	// MeshProvider holds the uploaded vertex and index buffers, or nil before upload.
	MeshProvider() bind_group_provider.BindGroupProvider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)

	VertexData() []byte
	IndexData() []byte
	VertexCount() int
	IndexCount() int

	// BoundingRadius is the radius of the sphere about the model origin enclosing
	// every vertex, before any object scale.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel builds a Model. Without WithMaterial it gets a white lit material named
// after the model.
//
// Parameters:
//   - options: name, mesh and material
//
// Returns:
//   - Model: the model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.mat == nil {
		m.mat = material.NewMaterial(material.WithName(m.name))
	}
	return m
}

func (m *model) Name() string                      { return m.name }
func (m *model) Material() material.Material       { return m.mat }
func (m *model) SetMaterial(mat material.Material) { m.mat = mat }

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.mesh
}

func (m *model) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.mesh = provider
}

func (m *model) VertexData() []byte      { return m.packed.Vertices }
func (m *model) IndexData() []byte       { return m.packed.Indices }
func (m *model) VertexCount() int        { return m.packed.VertexCount }
func (m *model) IndexCount() int         { return m.packed.IndexCount }
func (m *model) BoundingRadius() float32 { return m.packed.Radius }
