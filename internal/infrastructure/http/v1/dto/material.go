package dto

import (
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/material"
)

// CreateMaterialRequest for creating materials.
type CreateMaterialRequest struct {
	Name        string         `json:"name" binding:"required"`
	SKU         string         `json:"sku"`
	Unit        string         `json:"unit" binding:"required"`
	Category    string         `json:"category"`
	MinQuantity types.Quantity `json:"minQuantity"`
}

// ToEntity builds a new Material.
func (r CreateMaterialRequest) ToEntity() *material.Material {
	return material.New(r.Name, r.SKU, r.Unit, r.Category, r.MinQuantity)
}

// UpdateMaterialRequest for updating materials. All fields are replaced.
type UpdateMaterialRequest struct {
	Name        string         `json:"name" binding:"required"`
	SKU         string         `json:"sku"`
	Unit        string         `json:"unit" binding:"required"`
	Category    string         `json:"category"`
	MinQuantity types.Quantity `json:"minQuantity"`
}

// ApplyTo overwrites the material's mutable fields.
func (r UpdateMaterialRequest) ApplyTo(m *material.Material) {
	m.Name = r.Name
	m.SKU = r.SKU
	m.Unit = r.Unit
	m.Category = r.Category
	m.MinQuantity = r.MinQuantity
}
