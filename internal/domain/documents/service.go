package documents

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/numerator"
	"makhzan/pkg/logger"
)

// Repository defines storage operations for documents.
type Repository interface {
	List(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, docID id.ID) (*Document, error)
	Insert(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, docID id.ID) error
	CountByType(ctx context.Context, docType Type) (int, error)
}

// Service provides business operations for documents. Every mutation
// is applied atomically to the store; derived views (reports,
// transactions, alerts) are recomputed on the next read, so no
// invalidation step is needed here.
type Service struct {
	repo Repository
}

// NewService creates a document service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all documents in store order (newest first).
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.repo.List(ctx)
}

// Get returns one document by id.
func (s *Service) Get(ctx context.Context, docID id.ID) (*Document, error) {
	return s.repo.Get(ctx, docID)
}

// Create validates and appends a new document. An empty reference
// number is filled from the allocator's suggestion.
func (s *Service) Create(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if doc.ReferenceNo == "" {
		ref, err := s.NextReference(ctx, doc.Type)
		if err != nil {
			return err
		}
		doc.ReferenceNo = ref
	}

	if err := s.repo.Insert(ctx, doc); err != nil {
		return err
	}

	logger.Info(ctx, "document created",
		"id", doc.ID,
		"type", doc.Type,
		"referenceNo", doc.ReferenceNo,
		"items", len(doc.Items))

	return nil
}

// Update replaces header fields and item quantities by id.
// The id itself never changes.
func (s *Service) Update(ctx context.Context, doc *Document) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return err
	}

	logger.Info(ctx, "document updated", "id", doc.ID, "referenceNo", doc.ReferenceNo)
	return nil
}

// Delete removes a document by id. Balances of every material it
// touched change on the next read.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	if err := s.repo.Delete(ctx, docID); err != nil {
		return err
	}

	logger.Info(ctx, "document deleted", "id", docID)
	return nil
}

// NextReference suggests the next reference number for a type:
// "<PREFIX>-<count+1>" zero-padded to 4 digits. Reading it twice
// without committing a document returns the same suggestion.
func (s *Service) NextReference(ctx context.Context, docType Type) (string, error) {
	cfg, err := numeratorConfig(docType)
	if err != nil {
		return "", err
	}

	count, err := s.repo.CountByType(ctx, docType)
	if err != nil {
		return "", err
	}

	return cfg.Next(count), nil
}

func numeratorConfig(docType Type) (numerator.Config, error) {
	switch docType {
	case TypeReceipt:
		return numerator.DefaultConfig("REC"), nil
	case TypeIssue:
		return numerator.DefaultConfig("ISS"), nil
	}
	return numerator.Config{}, apperror.NewValidation("invalid document type").
		WithDetail("field", "type").
		WithDetail("value", string(docType))
}
