// Package store persists a single named opaque value per file path,
// backing the content-integrity marker with filesystem extended attributes.
package store

import "errors"

var (
	// ErrNotFound is returned when the attribute is absent on the file.
	ErrNotFound = errors.New("attribute not found")
	// ErrNotSupported is returned when the underlying filesystem does not
	// support extended attributes.
	ErrNotSupported = errors.New("extended attributes not supported")
)

// Store provides get/set/delete for one named attribute keyed by file path.
// Values are opaque strings; the store adds no framing or encoding.
type Store interface {
	// Get returns the stored value, or ErrNotFound if absent.
	Get(path string) (string, error)
	// Set writes the value, overwriting any existing one.
	Set(path, value string) error
	// Remove deletes the value, returning ErrNotFound if absent.
	Remove(path string) error
}
