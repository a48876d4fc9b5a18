package storage

import (
	"bytes"
	"errors"
	"fmt"
	"mindful/internal/storage/interfaces"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ErrNotCompressed is returned by Decompress for data without a zstd frame header.
var ErrNotCompressed = errors.New("snapshot is not zstd compressed")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// maxSnapshotMemory bounds what a damaged snapshot can make the decoder allocate.
const maxSnapshotMemory = 64 << 20

// SnapshotCompressor compresses FileStore snapshots. Snapshots are a few
// kilobytes and written by one goroutine, so both sides run single-threaded.
type SnapshotCompressor struct {
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	closeOnce sync.Once
}

func (c *SnapshotCompressor) Compress(doc []byte) ([]byte, error) {
	return c.encoder.EncodeAll(doc, nil), nil
}

func (c *SnapshotCompressor) Decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return nil, ErrNotCompressed
	}
	doc, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc, nil
}

// Close is safe to call more than once.
func (c *SnapshotCompressor) Close() {
	c.closeOnce.Do(func() {
		_ = c.encoder.Close()
		c.decoder.Close()
	})
}

func NewSnapshotCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotMemory),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("snapshot decoder: %w", err)
	}
	return &SnapshotCompressor{encoder: encoder, decoder: decoder}, nil
}
