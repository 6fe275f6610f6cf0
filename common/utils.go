package common

import "unsafe"

// Coalesce returns the first argument that is not the zero value of T, or the zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// SliceToBytes reinterprets a slice of plain values as raw bytes for a GPU upload.
// The result aliases data and must not outlive it.
//
// Parameters:
//   - data: vertices, indices or any other fixed-layout values
//
// Returns:
//   - []byte: the byte view, nil for an empty slice
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	n := len(data) * int(unsafe.Sizeof(data[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(data))), n)
}
