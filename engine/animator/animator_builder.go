package animator

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithClip is an option builder that registers a clip during construction. Clips added this
// way get indices in option order, starting at 0.
//
// Parameters:
//   - c: the clip to register
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the clip option to an animator
func WithClip(c Clip) AnimatorBuilderOption {
	return func(a *animator) {
		a.AddClip(c)
	}
}
