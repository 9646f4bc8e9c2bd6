package uasset

// Options toggles the behaviors that differ between known variants of the format.
type Options struct {
	// StrictExports requires exactly one export descriptor per header.
	StrictExports bool
	// Names selects how symbolic name references are decoded.
	Names NameMode
}

// DefaultOptions returns the strict, fully-resolving variant.
func DefaultOptions() Options {
	return Options{
		StrictExports: true,
		Names:         NameInstanceSuffix,
	}
}
