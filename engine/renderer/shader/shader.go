package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which programmable stage a shader feeds.
type ShaderType int

const (
	ShaderTypeVertex ShaderType = iota
	ShaderTypeFragment
)

type shader struct {
	key   string
	stage ShaderType
	wgsl  string

	// groups and vertexBuffers are declared in Go next to the source; Validate
	// checks them against what the source actually binds.
	groups        map[int]wgpu.BindGroupLayoutDescriptor
	vertexBuffers []wgpu.VertexBufferLayout

	entry   string
	summary wgslSummary
	module  *wgpu.ShaderModuleDescriptor
}

// Shader is one WGSL stage plus the resource layouts it is compiled against.
type Shader interface {
	// Key names the shader in labels and errors.
	Key() string
	Source() string
	ShaderType() ShaderType

	// BindGroupLayoutDescriptor returns the layout for a group, or the zero descriptor.
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor
	// VertexLayouts is nil for fragment shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// EntryPoint is the first function tagged with the shader's stage attribute
	// unless WithEntryPoint overrode it.
	EntryPoint() string
	Module() *wgpu.ShaderModuleDescriptor

	// Validate fails when the source has no entry point, when a layout entry visible
	// to this stage is missing from the source, or when the source binds something no
	// layout declares.
	Validate() error
}

var _ Shader = &shader{}

// NewShader wraps WGSL source for one stage.
//
// Parameters:
//   - key: label for the module and error messages
//   - shaderType: the stage
//   - source: WGSL
//   - options: layouts and entry point override
//
// Returns:
//   - Shader: the shader, not yet validated
func NewShader(key string, shaderType ShaderType, source string, options ...ShaderBuilderOption) Shader {
	s := &shader{
		key:     key,
		stage:   shaderType,
		wgsl:    source,
		groups:  make(map[int]wgpu.BindGroupLayoutDescriptor),
		summary: summarize(source),
	}
	s.entry = s.summary.entry(shaderType)
	for _, opt := range options {
		opt(s)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label:          s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: s.wgsl},
	}
	return s
}

func (s *shader) Key() string            { return s.key }
func (s *shader) Source() string         { return s.wgsl }
func (s *shader) ShaderType() ShaderType { return s.stage }
func (s *shader) EntryPoint() string     { return s.entry }

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.groups[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.groups
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexBuffers
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Validate() error {
	if s.entry == "" {
		return fmt.Errorf("shader %s: no entry point found", s.key)
	}
	declared := s.summary.bindings
	for group, desc := range s.groups {
		for _, entry := range desc.Entries {
			if !declared[bindingKey{group: group, binding: int(entry.Binding)}] && s.requiresBinding(entry) {
				return fmt.Errorf("shader %s: layout declares @group(%d) @binding(%d) but the source does not", s.key, group, entry.Binding)
			}
		}
	}
	for key := range declared {
		if !s.hasLayoutEntry(key) {
			return fmt.Errorf("shader %s: source declares @group(%d) @binding(%d) with no layout entry", s.key, key.group, key.binding)
		}
	}
	return nil
}

// requiresBinding reports whether a layout entry is visible to this stage and so must
// be declared by its source.
func (s *shader) requiresBinding(entry wgpu.BindGroupLayoutEntry) bool {
	switch s.stage {
	case ShaderTypeVertex:
		return entry.Visibility&wgpu.ShaderStageVertex != 0
	case ShaderTypeFragment:
		return entry.Visibility&wgpu.ShaderStageFragment != 0
	default:
		return false
	}
}

func (s *shader) hasLayoutEntry(key bindingKey) bool {
	desc, ok := s.groups[key.group]
	if !ok {
		return false
	}
	for _, entry := range desc.Entries {
		if int(entry.Binding) == key.binding {
			return true
		}
	}
	return false
}
