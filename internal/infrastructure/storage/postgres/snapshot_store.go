package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel"

	"makhzan/internal/domain/state"
	"makhzan/pkg/logger"
)

var tracer = otel.Tracer("storage.postgres")

// SnapshotStore keeps every saved snapshot as a compressed row; Load
// returns the latest. Old rows double as point-in-time backups.
type SnapshotStore struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewSnapshotStore creates the store over an existing pool.
func NewSnapshotStore(pool *pgxpool.Pool) (*SnapshotStore, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &SnapshotStore{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		encoder: enc,
		decoder: dec,
	}, nil
}

type snapshotRow struct {
	Payload []byte `db:"payload"`
}

// Load returns the most recent snapshot, or state.ErrNoSnapshot when
// the table is empty.
func (s *SnapshotStore) Load(ctx context.Context) (*state.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "SnapshotStore.Load")
	defer span.End()

	query, args, err := s.builder.
		Select("payload").
		From("snapshots").
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row snapshotRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, state.ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	data, err := s.decoder.DecodeAll(row.Payload, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &snap, nil
}

// Save appends a new snapshot row.
func (s *SnapshotStore) Save(ctx context.Context, snap *state.Snapshot) error {
	ctx, span := tracer.Start(ctx, "SnapshotStore.Save")
	defer span.End()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	compressed := s.encoder.EncodeAll(data, nil)

	query, args, err := s.builder.
		Insert("snapshots").
		Columns("payload").
		Values(compressed).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	logger.Debug(ctx, "snapshot saved", "bytes", len(compressed))
	return nil
}
