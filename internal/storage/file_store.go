package storage

import (
	"context"
	"errors"
	"fmt"
	"mindful/internal/providers"
	"mindful/internal/storage/interfaces"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// FileStore keeps entries in memory and writes them to a zstd-compressed JSON
// snapshot. With syncWrites every Set is flushed before returning; otherwise
// the scheduler calls Persist periodically and on shutdown.
type FileStore struct {
	*MemoryStore

	path       string
	syncWrites bool
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	persistMu sync.Mutex
	dirtyMu   sync.Mutex
	dirty     bool
}

func NewFileStore(path string, syncWrites bool, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileStore {
	return &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
		syncWrites:  syncWrites,
		compressor:  compressor,
		logger:      logger,
		metrics:     metrics,
	}
}

func (f *FileStore) Set(ctx context.Context, items map[string][]byte) error {
	if err := f.MemoryStore.Set(ctx, items); err != nil {
		return err
	}
	f.markDirty(true)
	if f.syncWrites {
		return f.Persist()
	}
	return nil
}

func (f *FileStore) markDirty(v bool) {
	f.dirtyMu.Lock()
	f.dirty = v
	f.dirtyMu.Unlock()
}

// takeDirty clears the dirty flag and reports whether it was set.
func (f *FileStore) takeDirty() bool {
	f.dirtyMu.Lock()
	defer f.dirtyMu.Unlock()
	was := f.dirty
	f.dirty = false
	return was
}

// Persist writes the snapshot atomically via a temp file and rename. It is a
// no-op when nothing changed since the last write.
func (f *FileStore) Persist() error {
	f.persistMu.Lock()
	defer f.persistMu.Unlock()

	if !f.takeDirty() {
		return nil
	}
	start := time.Now()
	if err := f.flush(); err != nil {
		f.markDirty(true)
		return wrap("persist", nil, err)
	}
	f.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

func (f *FileStore) flush() error {
	snapshot := f.snapshot()
	doc := make(map[string]json.RawMessage, len(snapshot))
	for k, v := range snapshot {
		doc[k] = v
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}
	return writeFileAtomic(f.path, data)
}

func writeFileAtomic(fileName string, data []byte) error {
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// Restore loads the snapshot file. A missing file means a fresh install.
func (f *FileStore) Restore() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return wrap("restore", nil, err)
	}

	jsonData, err := f.compressor.Decompress(data)
	switch {
	case errors.Is(err, ErrNotCompressed):
		// Hand-edited or exported snapshots may be plain JSON.
		f.logger.Warnf(providers.TypeStore, "Snapshot %s is not zstd compressed, reading as plain JSON", f.path)
		jsonData = data
	case err != nil:
		return wrap("restore", nil, f.quarantine(err))
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return wrap("restore", nil, f.quarantine(err))
	}

	restored := make(map[string][]byte, len(doc))
	for k, v := range doc {
		restored[k] = []byte(v)
	}
	f.replace(restored)
	f.markDirty(false)

	f.logger.Infof(providers.TypeStore, "Restored %d keys from %s", len(restored), f.path)
	return nil
}

// quarantine moves an unreadable snapshot aside so a later Persist cannot
// overwrite it.
func (f *FileStore) quarantine(cause error) error {
	target := f.path + ".corrupt"
	if err := os.Rename(f.path, target); err != nil {
		return fmt.Errorf("snapshot %s is unreadable (%v) and could not be moved aside: %w", f.path, cause, err)
	}
	f.logger.Errorf(providers.TypeStore, "Snapshot %s is unreadable, moved to %s: %s", f.path, target, cause)
	return fmt.Errorf("snapshot moved to %s: %w", target, cause)
}

func (f *FileStore) Close() error {
	err := f.Persist()
	f.compressor.Close()
	return err
}
