// Package file persists snapshots as zstd-compressed JSON on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"makhzan/internal/domain/state"
	"makhzan/pkg/logger"
)

// SnapshotStore writes the snapshot to a single file. Saves are atomic
// via a temp file and rename, so a crash mid-write never corrupts the
// last good snapshot.
type SnapshotStore struct {
	path    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewSnapshotStore creates the store and its codec. The parent
// directory is created if missing.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotStore{path: path, encoder: enc, decoder: dec}, nil
}

// Load reads and decodes the snapshot file. A missing file yields
// state.ErrNoSnapshot.
func (s *SnapshotStore) Load(ctx context.Context) (*state.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, state.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	data, err := s.decoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	logger.Debug(ctx, "snapshot loaded",
		"path", s.path,
		"materials", len(snap.Materials),
		"documents", len(snap.Documents))

	return &snap, nil
}

// Save encodes and writes the snapshot atomically.
func (s *SnapshotStore) Save(ctx context.Context, snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	compressed := s.encoder.EncodeAll(data, nil)

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	logger.Debug(ctx, "snapshot saved", "path", s.path, "bytes", len(compressed))
	return nil
}
