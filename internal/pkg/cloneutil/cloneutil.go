package cloneutil

import "slices"

// Ptr copies the value behind a pointer into a fresh allocation.
func Ptr[T any](src *T) *T {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}

// Slice copies a slice. A nil input stays nil.
func Slice[T any](src []T) []T {
	return slices.Clone(src)
}

// DeepSlice copies a slice of cloneable values element by element.
func DeepSlice[T interface{ Clone() T }](src []T) []T {
	if src == nil {
		return nil
	}
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = v.Clone()
	}
	return out
}
