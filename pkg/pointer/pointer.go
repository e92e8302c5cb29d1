// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides small generic helpers for optional fields.

Manifest values model "absent" as nil pointers (never sentinel values), so
construction and safe dereferencing of pointers happen everywhere. These
helpers keep that boilerplate out of the application logic.
*/
package pointer

// To returns a pointer to the provided value.
// Useful for filling optional struct fields from literals
// (e.g. pointer.To("FIC")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
