//go:build linux

package store

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// XattrStore stores values in a single named extended attribute per file.
// Symbolic links are never followed.
type XattrStore struct {
	attr string
}

// NewXattrStore creates a store backed by the named extended attribute.
func NewXattrStore(attr string) *XattrStore {
	return &XattrStore{attr: attr}
}

func (s *XattrStore) Get(path string) (string, error) {
	buf := make([]byte, 256)
	for {
		n, err := unix.Lgetxattr(path, s.attr, buf)
		switch {
		case err == nil:
			return string(buf[:n]), nil
		case errors.Is(err, unix.ERANGE):
			buf = make([]byte, len(buf)*2)
		case errors.Is(err, unix.ENODATA):
			return "", ErrNotFound
		case errors.Is(err, unix.ENOTSUP):
			return "", ErrNotSupported
		default:
			return "", fmt.Errorf("failed to read attribute %s on %s: %w", s.attr, path, err)
		}
	}
}

func (s *XattrStore) Set(path, value string) error {
	err := unix.Lsetxattr(path, s.attr, []byte(value), 0)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENOTSUP):
		return ErrNotSupported
	default:
		return fmt.Errorf("failed to write attribute %s on %s: %w", s.attr, path, err)
	}
}

func (s *XattrStore) Remove(path string) error {
	err := unix.Lremovexattr(path, s.attr)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENODATA):
		return ErrNotFound
	case errors.Is(err, unix.ENOTSUP):
		return ErrNotSupported
	default:
		return fmt.Errorf("failed to remove attribute %s on %s: %w", s.attr, path, err)
	}
}
