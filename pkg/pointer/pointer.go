package pointer

// To returns a pointer to a copy of value.
func To[T any](value T) *T {
	return &value
}

// Copy returns a pointer to a copy of the value pointed to.
func Copy[T any](value *T) *T {
	if value == nil {
		return nil
	}

	cloned := *value
	return &cloned
}
