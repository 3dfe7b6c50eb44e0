// Package stdx holds small generic helpers that the standard library lacks.
package stdx

// Zero returns the zero value of T. Generic code uses it on error paths
// where T may be a struct, pointer or interface.
func Zero[T any]() T {
	var zero T
	return zero
}
