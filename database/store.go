package database

import (
	"fmt"
	"strings"

	"github.com/kaulkaran/huti/visits"
)

// Store is a visits.Storage that owns an underlying handle.
type Store interface {
	visits.Storage
	Close() error
}

type memoryStore struct {
	*visits.MemoryStorage
}

func (memoryStore) Close() error { return nil }

// Open picks a backend from the URL scheme: sqlite://path, bolt://path or memory://.
func Open(url string) (Store, error) {
	scheme, path, ok := strings.Cut(url, "://")
	if !ok {
		return nil, fmt.Errorf("invalid store url %q, want scheme://path", url)
	}

	switch scheme {
	case "sqlite":
		return New(path)
	case "bolt", "bbolt":
		return NewBoltStore(path)
	case "memory":
		return memoryStore{visits.NewMemoryStorage()}, nil
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}
}
