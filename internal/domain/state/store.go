package state

import (
	"context"
	"encoding/json"
	"sync"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
)

// MutateHook receives a snapshot copy after every committed mutation.
// Hooks run synchronously outside the store lock; a slow hook delays
// the mutating request but never blocks concurrent readers. Because
// hooks run after the lock is released, persistence ordering across
// overlapping mutations relies on the single-logical-writer assumption.
type MutateHook func(ctx context.Context, snap *Snapshot)

// Store is the in-memory dataset guarded by a single RWMutex. Reads
// take the read lock and may run concurrently; every mutation takes
// the write lock, so writers serialize and readers always observe a
// complete snapshot, never a half-applied one.
type Store struct {
	mu    sync.RWMutex
	snap  Snapshot
	hooks []MutateHook
}

// NewStore creates a store seeded from snap. The snapshot is cloned,
// the caller keeps ownership of its copy.
func NewStore(snap *Snapshot) *Store {
	return &Store{snap: *snap.Clone()}
}

// OnMutate registers a hook. Not safe to call after the store is in use.
func (s *Store) OnMutate(h MutateHook) {
	s.hooks = append(s.hooks, h)
}

// Export returns a deep copy of the full state.
func (s *Store) Export() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// partialSnapshot distinguishes absent sections from empty ones:
// only sections present in the payload replace their counterpart.
type partialSnapshot struct {
	Materials  *[]material.Material  `json:"materials"`
	Entities   *[]partner.Partner    `json:"entities"`
	Documents  *[]documents.Document `json:"documents"`
	Categories *[]string             `json:"categories"`
	Units      *[]string             `json:"units"`
}

// Import replaces sections of the state from a serialized snapshot.
// Sections missing from the payload keep their current contents, and
// unknown top-level keys are ignored so older exports stay loadable.
// A payload that fails to decode leaves the state untouched.
func (s *Store) Import(ctx context.Context, payload []byte) error {
	var p partialSnapshot
	if err := json.Unmarshal(payload, &p); err != nil {
		return apperror.NewInvalidImport(err)
	}

	s.mu.Lock()
	if p.Materials != nil {
		s.snap.Materials = *p.Materials
	}
	if p.Entities != nil {
		s.snap.Entities = *p.Entities
	}
	if p.Documents != nil {
		s.snap.Documents = *p.Documents
	}
	if p.Categories != nil {
		s.snap.Categories = *p.Categories
	}
	if p.Units != nil {
		s.snap.Units = *p.Units
	}
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

// Categories returns the registered category names.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.snap.Categories))
	copy(out, s.snap.Categories)
	return out
}

// Units returns the registered unit names.
func (s *Store) Units() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.snap.Units))
	copy(out, s.snap.Units)
	return out
}

// AddCategory registers a category name if not already present.
func (s *Store) AddCategory(ctx context.Context, name string) {
	s.mu.Lock()
	if containsString(s.snap.Categories, name) {
		s.mu.Unlock()
		return
	}
	s.snap.Categories = append(s.snap.Categories, name)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
}

// AddUnit registers a unit name if not already present.
func (s *Store) AddUnit(ctx context.Context, name string) {
	s.mu.Lock()
	if containsString(s.snap.Units, name) {
		s.mu.Unlock()
		return
	}
	s.snap.Units = append(s.snap.Units, name)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
}

// Materials returns the material repository view of the store.
func (s *Store) Materials() material.Repository {
	return &materialRepo{store: s}
}

// Partners returns the partner repository view of the store.
func (s *Store) Partners() partner.Repository {
	return &partnerRepo{store: s}
}

// Documents returns the document repository view of the store.
func (s *Store) Documents() documents.Repository {
	return &documentRepo{store: s}
}

func (s *Store) notify(ctx context.Context, snap *Snapshot) {
	for _, h := range s.hooks {
		h(ctx, snap)
	}
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type materialRepo struct {
	store *Store
}

func (r *materialRepo) List(ctx context.Context) ([]material.Material, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]material.Material, len(r.store.snap.Materials))
	copy(out, r.store.snap.Materials)
	return out, nil
}

func (r *materialRepo) Get(ctx context.Context, materialID id.ID) (*material.Material, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.snap.Materials {
		if m.ID == materialID {
			cp := m
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("material", materialID.String())
}

// Insert appends a material and registers its category and unit in the
// reference lists so they become selectable for future entries.
func (r *materialRepo) Insert(ctx context.Context, m *material.Material) error {
	s := r.store
	s.mu.Lock()
	s.snap.Materials = append(s.snap.Materials, *m)
	if m.Category != "" && !containsString(s.snap.Categories, m.Category) {
		s.snap.Categories = append(s.snap.Categories, m.Category)
	}
	if m.Unit != "" && !containsString(s.snap.Units, m.Unit) {
		s.snap.Units = append(s.snap.Units, m.Unit)
	}
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

func (r *materialRepo) Update(ctx context.Context, m *material.Material) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Materials {
		if s.snap.Materials[i].ID == m.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("material", m.ID.String())
	}
	s.snap.Materials[idx] = *m
	if m.Category != "" && !containsString(s.snap.Categories, m.Category) {
		s.snap.Categories = append(s.snap.Categories, m.Category)
	}
	if m.Unit != "" && !containsString(s.snap.Units, m.Unit) {
		s.snap.Units = append(s.snap.Units, m.Unit)
	}
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

// Delete removes the catalog row only. Documents referencing the
// material keep their lines; read paths substitute placeholders.
func (r *materialRepo) Delete(ctx context.Context, materialID id.ID) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Materials {
		if s.snap.Materials[i].ID == materialID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("material", materialID.String())
	}
	s.snap.Materials = append(s.snap.Materials[:idx], s.snap.Materials[idx+1:]...)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

type partnerRepo struct {
	store *Store
}

func (r *partnerRepo) List(ctx context.Context) ([]partner.Partner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]partner.Partner, len(r.store.snap.Entities))
	copy(out, r.store.snap.Entities)
	return out, nil
}

func (r *partnerRepo) Get(ctx context.Context, partnerID id.ID) (*partner.Partner, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.snap.Entities {
		if p.ID == partnerID {
			cp := p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("partner", partnerID.String())
}

func (r *partnerRepo) Insert(ctx context.Context, p *partner.Partner) error {
	s := r.store
	s.mu.Lock()
	s.snap.Entities = append(s.snap.Entities, *p)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

func (r *partnerRepo) Update(ctx context.Context, p *partner.Partner) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Entities {
		if s.snap.Entities[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("partner", p.ID.String())
	}
	s.snap.Entities[idx] = *p
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

func (r *partnerRepo) Delete(ctx context.Context, partnerID id.ID) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Entities {
		if s.snap.Entities[i].ID == partnerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("partner", partnerID.String())
	}
	s.snap.Entities = append(s.snap.Entities[:idx], s.snap.Entities[idx+1:]...)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

type documentRepo struct {
	store *Store
}

func (r *documentRepo) List(ctx context.Context) ([]documents.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]documents.Document, len(r.store.snap.Documents))
	for i, d := range r.store.snap.Documents {
		out[i] = cloneDocument(d)
	}
	return out, nil
}

func (r *documentRepo) Get(ctx context.Context, docID id.ID) (*documents.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, d := range r.store.snap.Documents {
		if d.ID == docID {
			cp := cloneDocument(d)
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("document", docID.String())
}

// Insert prepends: documents are listed newest first, and the store
// position doubles as the tie-break for equal-date ordering.
func (r *documentRepo) Insert(ctx context.Context, doc *documents.Document) error {
	s := r.store
	s.mu.Lock()
	docs := make([]documents.Document, 0, len(s.snap.Documents)+1)
	docs = append(docs, cloneDocument(*doc))
	docs = append(docs, s.snap.Documents...)
	s.snap.Documents = docs
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

// Update replaces the document in place, keeping its store position.
func (r *documentRepo) Update(ctx context.Context, doc *documents.Document) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Documents {
		if s.snap.Documents[i].ID == doc.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("document", doc.ID.String())
	}
	s.snap.Documents[idx] = cloneDocument(*doc)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, docID id.ID) error {
	s := r.store
	s.mu.Lock()
	idx := -1
	for i := range s.snap.Documents {
		if s.snap.Documents[i].ID == docID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperror.NewNotFound("document", docID.String())
	}
	s.snap.Documents = append(s.snap.Documents[:idx], s.snap.Documents[idx+1:]...)
	snap := s.snap.Clone()
	s.mu.Unlock()

	s.notify(ctx, snap)
	return nil
}

func (r *documentRepo) CountByType(ctx context.Context, docType documents.Type) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	n := 0
	for _, d := range r.store.snap.Documents {
		if d.Type == docType {
			n++
		}
	}
	return n, nil
}
