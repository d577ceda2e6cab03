// Package state holds the authoritative in-memory dataset and its
// serialized form. The snapshot is the only persisted artifact: no
// balances, no derived rows, just catalogs and documents.
package state

import (
	"context"
	"errors"

	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
)

// ErrNoSnapshot is returned by a SnapshotStore when no snapshot has
// ever been saved. Callers bootstrap from DefaultSnapshot.
var ErrNoSnapshot = errors.New("no snapshot found")

// SnapshotStore persists and restores complete snapshots.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Snapshot is the full serialized state. Field names match the
// interchange format used by export and import.
type Snapshot struct {
	Materials  []material.Material  `json:"materials"`
	Entities   []partner.Partner    `json:"entities"`
	Documents  []documents.Document `json:"documents"`
	Categories []string             `json:"categories"`
	Units      []string             `json:"units"`
}

// DefaultSnapshot is the bootstrap dataset for a fresh installation:
// empty catalogs with a seed set of categories and units.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Materials:  []material.Material{},
		Entities:   []partner.Partner{},
		Documents:  []documents.Document{},
		Categories: []string{"بناء", "كهرباء", "سباكة"},
		Units:      []string{"كيس", "طن", "لتر", "متر", "قطعة"},
	}
}

// Clone returns a deep copy safe to hand outside the store's lock.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Materials:  make([]material.Material, len(s.Materials)),
		Entities:   make([]partner.Partner, len(s.Entities)),
		Documents:  make([]documents.Document, len(s.Documents)),
		Categories: make([]string, len(s.Categories)),
		Units:      make([]string, len(s.Units)),
	}
	copy(out.Materials, s.Materials)
	copy(out.Entities, s.Entities)
	copy(out.Categories, s.Categories)
	copy(out.Units, s.Units)
	for i, d := range s.Documents {
		out.Documents[i] = cloneDocument(d)
	}
	return out
}

func cloneDocument(d documents.Document) documents.Document {
	items := make([]documents.Item, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d
}
