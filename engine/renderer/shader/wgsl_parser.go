package shader

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// stageFnRegex matches `@vertex fn name` and `@fragment fn name`, attributes in between allowed.
	stageFnRegex = regexp.MustCompile(`@(vertex|fragment)\b[^{;]*?\bfn\s+(\w+)`)
	// resourceRegex matches `@group(G) @binding(B) var`.
	resourceRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var`)
)

// bindingKey identifies one resource slot in a shader.
type bindingKey struct {
	group   int
	binding int
}

// wgslSummary is what the shader package needs from a WGSL source: the first entry point
// per stage and the declared resource slots.
type wgslSummary struct {
	entries  map[ShaderType]string
	bindings map[bindingKey]bool
}

// summarize scans WGSL source with comments removed.
func summarize(source string) wgslSummary {
	code := stripComments(source)
	sum := wgslSummary{
		entries:  make(map[ShaderType]string, 2),
		bindings: make(map[bindingKey]bool),
	}
	for _, m := range stageFnRegex.FindAllStringSubmatch(code, -1) {
		stage := ShaderTypeVertex
		if m[1] == "fragment" {
			stage = ShaderTypeFragment
		}
		if _, seen := sum.entries[stage]; !seen {
			sum.entries[stage] = m[2]
		}
	}
	for _, m := range resourceRegex.FindAllStringSubmatch(code, -1) {
		g, err1 := strconv.Atoi(m[1])
		b, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			sum.bindings[bindingKey{group: g, binding: b}] = true
		}
	}
	return sum
}

// entry returns the first entry point declared for a stage, or "".
func (s wgslSummary) entry(stage ShaderType) string {
	return s.entries[stage]
}

// stripComments blanks out // and nested /* */ comments in one pass. Newlines are kept so
// the result lines up with the source.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		c := source[i]
		var next byte
		if i+1 < len(source) {
			next = source[i+1]
		}
		switch {
		case c == '/' && next == '*':
			depth++
			i++
		case depth > 0 && c == '*' && next == '/':
			depth--
			i++
		case depth == 0 && c == '/' && next == '/':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			if i < len(source) {
				sb.WriteByte('\n')
			}
		case depth > 0:
			if c == '\n' {
				sb.WriteByte('\n')
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
