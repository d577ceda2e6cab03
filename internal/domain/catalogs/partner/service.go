package partner

import (
	"context"

	"makhzan/internal/core/id"
	"makhzan/pkg/logger"
)

// Repository defines storage operations for partners.
type Repository interface {
	List(ctx context.Context) ([]Partner, error)
	Get(ctx context.Context, partnerID id.ID) (*Partner, error)
	Insert(ctx context.Context, p *Partner) error
	Update(ctx context.Context, p *Partner) error
	Delete(ctx context.Context, partnerID id.ID) error
}

// Service provides business operations for the partner catalog.
type Service struct {
	repo Repository
}

// NewService creates a partner service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all partners.
func (s *Service) List(ctx context.Context) ([]Partner, error) {
	return s.repo.List(ctx)
}

// Get returns one partner by id.
func (s *Service) Get(ctx context.Context, partnerID id.ID) (*Partner, error) {
	return s.repo.Get(ctx, partnerID)
}

// Create validates and stores a new partner.
func (s *Service) Create(ctx context.Context, p *Partner) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "partner created", "id", p.ID, "name", p.Name, "type", p.Type)
	return nil
}

// Update replaces a partner's fields by id.
func (s *Service) Update(ctx context.Context, p *Partner) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "partner updated", "id", p.ID)
	return nil
}

// Delete removes a partner. Documents referencing it stay as-is;
// lookups substitute a placeholder name.
func (s *Service) Delete(ctx context.Context, partnerID id.ID) error {
	if err := s.repo.Delete(ctx, partnerID); err != nil {
		return err
	}

	logger.Info(ctx, "partner deleted", "id", partnerID)
	return nil
}
