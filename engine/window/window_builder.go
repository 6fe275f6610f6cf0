package window

// WindowBuilderOption configures a window before it opens.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial logical size. Non-positive values keep the default.
//
// Parameters:
//   - width: initial width in screen coordinates
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing. Zero leaves a bound open.
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = unbounded(minWidth), unbounded(minHeight)
		w.maxWidth, w.maxHeight = unbounded(maxWidth), unbounded(maxHeight)
	}
}

// unbounded maps an unset limit to glfw.DontCare.
func unbounded(v int) int {
	if v <= 0 {
		return -1
	}
	return v
}
