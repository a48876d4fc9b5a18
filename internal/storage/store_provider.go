package storage

import (
	"fmt"
	"mindful/internal/providers"
	"mindful/internal/storage/interfaces"
	"mindful/internal/structures"
)

// NewStoreProvider builds the configured backend wrapped in the cache.
func NewStoreProvider(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) (interfaces.Store, func(), error) {
	var inner interfaces.Store

	switch conf.Storage.Driver {
	case "memory":
		inner = NewMemoryStore()
	case "file":
		compressor, err := NewSnapshotCompressor()
		if err != nil {
			return nil, nil, err
		}
		inner = NewFileStore(conf.Storage.FilePath, conf.Storage.SyncWrites, compressor, logger, metrics)
	case "sqlite":
		s, err := NewSQLiteStore(conf.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		inner = s
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}

	logger.Infof(providers.TypeStore, "Using %s store %s", conf.Storage.Driver, conf.Storage.FilePath)

	store := NewCachedStore(inner, cache)
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Errorf(providers.TypeStore, "Error while closing store: %s", err)
		}
	}
	return store, cleanup, nil
}
