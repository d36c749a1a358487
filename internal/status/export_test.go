package status

// WithLookPath overrides the executable lookup.
func WithLookPath(lookPath func(string) (string, error)) Option {
	return func(o *options) {
		o.lookPath = lookPath
	}
}
