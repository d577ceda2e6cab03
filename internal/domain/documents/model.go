// Package documents provides the receipt/issue documents (السندات),
// the sole unit of stock movement. There is no stored balance anywhere:
// every stock figure is derived from the document history.
package documents

import (
	"context"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
)

// Type defines the kind of document.
type Type string

const (
	TypeReceipt Type = "RECEIPT" // سند استلام (من مورد)
	TypeIssue   Type = "ISSUE"   // سند صرف (لعميل)
)

// Valid reports whether t is a known document type.
func (t Type) Valid() bool {
	switch t {
	case TypeReceipt, TypeIssue:
		return true
	}
	return false
}

// Item is one line of a document.
type Item struct {
	// MaterialID references the material catalog. The target may have
	// been deleted since; read paths must tolerate that.
	MaterialID id.ID `json:"materialId"`

	// Quantity is positive, possibly fractional, with no upper bound.
	Quantity types.Quantity `json:"quantity"`
}

// Document is a dated receipt or issue record with one or more lines.
type Document struct {
	// ID is a generated UUIDv7, unique per store. Being time-ordered
	// it also serves as the creation timestamp surrogate.
	ID id.ID `json:"id"`

	// Type is the movement direction.
	Type Type `json:"type"`

	// EntityID references the partner catalog. Like material
	// references, it may dangle after a partner is deleted.
	EntityID id.ID `json:"entityId"`

	// Date is the business date of the movement.
	Date types.Date `json:"date"`

	// ReferenceNo is the human-facing number. Unique in practice,
	// not enforced by the engine.
	ReferenceNo string `json:"referenceNo"`

	// Notes is a free-form comment.
	Notes string `json:"notes"`

	// Items holds at least one line.
	Items []Item `json:"items"`
}

// New creates a Document with a generated id.
func New(docType Type, entityID id.ID, date types.Date, referenceNo, notes string, items []Item) *Document {
	return &Document{
		ID:          id.New(),
		Type:        docType,
		EntityID:    entityID,
		Date:        date,
		ReferenceNo: referenceNo,
		Notes:       notes,
		Items:       items,
	}
}

// Validate checks document invariants. Referential existence of the
// entity and materials is deliberately not checked: historical
// documents may reference since-deleted catalog entries, and blocking
// them here would make old snapshots unloadable.
func (d *Document) Validate(ctx context.Context) error {
	if !d.Type.Valid() {
		return apperror.NewValidation("invalid document type").
			WithDetail("field", "type").
			WithDetail("value", string(d.Type))
	}

	if id.IsNil(d.EntityID) {
		return apperror.NewValidation("entity is required").
			WithDetail("field", "entityId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if len(d.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, item := range d.Items {
		if id.IsNil(item.MaterialID) {
			return apperror.NewValidation("material is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if !item.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
