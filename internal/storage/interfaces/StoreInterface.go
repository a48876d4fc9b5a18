package interfaces

import "context"

// Store is a local key-value store holding JSON-encoded values.
// Get omits keys that are not present.
type Store interface {
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, items map[string][]byte) error
	Close() error
}

// Persister is implemented by stores that buffer writes in memory.
type Persister interface {
	Restore() error
	Persist() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
