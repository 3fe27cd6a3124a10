package catalog

import "fmt"

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Open creates an empty store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q (use memory or sqlite)", backend)
	}
}
