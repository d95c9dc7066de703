//go:build !linux

package store

// XattrStore stub for platforms without extended attribute support.
type XattrStore struct {
	attr string
}

// NewXattrStore creates a store backed by the named extended attribute.
func NewXattrStore(attr string) *XattrStore {
	return &XattrStore{attr: attr}
}

func (s *XattrStore) Get(path string) (string, error) { return "", ErrNotSupported }

func (s *XattrStore) Set(path, value string) error { return ErrNotSupported }

func (s *XattrStore) Remove(path string) error { return ErrNotSupported }
