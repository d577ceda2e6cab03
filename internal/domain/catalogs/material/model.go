// Package material provides the Material catalog (قائمة المواد).
// Materials are the trackable stock-keeping units of the warehouse.
package material

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
)

// Material represents a stock-keeping unit.
type Material struct {
	// ID is immutable once created.
	ID id.ID `json:"id"`

	// Name is the display name (required).
	Name string `json:"name"`

	// SKU is a human-facing code. Uniqueness is advisory: the engine
	// does not enforce it, since imported legacy data may already
	// contain duplicates.
	SKU string `json:"sku"`

	// Unit is the unit of measure (كيس, طن, لتر...).
	Unit string `json:"unit"`

	// Category groups materials for filtering and reports.
	Category string `json:"category"`

	// MinQuantity is the low-stock threshold, never negative.
	MinQuantity types.Quantity `json:"minQuantity"`
}

// New creates a Material with a generated id.
func New(name, sku, unit, category string, minQuantity types.Quantity) *Material {
	return &Material{
		ID:          id.New(),
		Name:        name,
		SKU:         sku,
		Unit:        unit,
		Category:    category,
		MinQuantity: minQuantity,
	}
}

// Validate checks material invariants.
func (m *Material) Validate(ctx context.Context) error {
	if m.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if m.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}

	if m.MinQuantity.IsNegative() {
		return apperror.NewValidation("minQuantity must not be negative").
			WithDetail("field", "minQuantity").
			WithDetail("value", m.MinQuantity.String())
	}

	return nil
}
