package material

import (
	"context"

	"makhzan/internal/core/id"
	"makhzan/pkg/logger"
)

// Repository defines storage operations for materials.
type Repository interface {
	List(ctx context.Context) ([]Material, error)
	Get(ctx context.Context, materialID id.ID) (*Material, error)
	Insert(ctx context.Context, m *Material) error
	Update(ctx context.Context, m *Material) error
	Delete(ctx context.Context, materialID id.ID) error
}

// Service provides business operations for the material catalog.
type Service struct {
	repo Repository
}

// NewService creates a material service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all materials.
func (s *Service) List(ctx context.Context) ([]Material, error) {
	return s.repo.List(ctx)
}

// Get returns one material by id.
func (s *Service) Get(ctx context.Context, materialID id.ID) (*Material, error) {
	return s.repo.Get(ctx, materialID)
}

// Create validates and stores a new material.
func (s *Service) Create(ctx context.Context, m *Material) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		return err
	}

	logger.Info(ctx, "material created", "id", m.ID, "name", m.Name)
	return nil
}

// Update replaces a material's fields by id. The id itself never changes.
func (s *Service) Update(ctx context.Context, m *Material) error {
	if err := m.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return err
	}

	logger.Info(ctx, "material updated", "id", m.ID)
	return nil
}

// Delete removes a material from the catalog. Documents referencing it
// are left untouched: their read paths substitute a placeholder name.
func (s *Service) Delete(ctx context.Context, materialID id.ID) error {
	if err := s.repo.Delete(ctx, materialID); err != nil {
		return err
	}

	logger.Info(ctx, "material deleted", "id", materialID)
	return nil
}
