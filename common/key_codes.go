package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// namedKeys maps the non-printable key names accepted in config files to key codes.
var namedKeys = map[string]uint32{
	"SPACE":  KeySpace,
	"ESCAPE": KeyEsc,
	"UP":     KeyUp,
	"DOWN":   KeyDown,
	"LEFT":   KeyLeft,
	"RIGHT":  KeyRight,
}

// KeyCode resolves a key name ("w", "A", "up", "space") to its key code.
// Single letters and digits map to their upper-case ASCII value.
//
// Parameters:
//   - name: the key name, case-insensitive
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is not recognized
func KeyCode(name string) (uint32, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) == 1 {
		c := n[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return uint32(c), true
		}
		return 0, false
	}
	code, ok := namedKeys[n]
	return code, ok
}
