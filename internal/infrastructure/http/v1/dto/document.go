package dto

import (
	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/documents"
)

// DocumentItemRequest is one line of a document payload.
type DocumentItemRequest struct {
	MaterialID string         `json:"materialId" binding:"required"`
	Quantity   types.Quantity `json:"quantity"`
}

// CreateDocumentRequest for creating documents. An empty referenceNo
// lets the server assign the next suggested number.
type CreateDocumentRequest struct {
	Type        documents.Type        `json:"type" binding:"required"`
	EntityID    string                `json:"entityId" binding:"required"`
	Date        types.Date            `json:"date"`
	ReferenceNo string                `json:"referenceNo"`
	Notes       string                `json:"notes"`
	Items       []DocumentItemRequest `json:"items"`
}

// ToEntity builds a new Document, parsing referenced ids.
func (r CreateDocumentRequest) ToEntity() (*documents.Document, error) {
	entityID, err := id.Parse(r.EntityID)
	if err != nil {
		return nil, apperror.NewValidation("invalid entity id").
			WithDetail("field", "entityId").
			WithDetail("value", r.EntityID)
	}

	items, err := toItems(r.Items)
	if err != nil {
		return nil, err
	}

	return documents.New(r.Type, entityID, r.Date, r.ReferenceNo, r.Notes, items), nil
}

// UpdateDocumentRequest for updating documents. All fields are replaced.
type UpdateDocumentRequest struct {
	Type        documents.Type        `json:"type" binding:"required"`
	EntityID    string                `json:"entityId" binding:"required"`
	Date        types.Date            `json:"date"`
	ReferenceNo string                `json:"referenceNo"`
	Notes       string                `json:"notes"`
	Items       []DocumentItemRequest `json:"items"`
}

// ApplyTo overwrites the document's mutable fields, keeping its id.
func (r UpdateDocumentRequest) ApplyTo(d *documents.Document) error {
	entityID, err := id.Parse(r.EntityID)
	if err != nil {
		return apperror.NewValidation("invalid entity id").
			WithDetail("field", "entityId").
			WithDetail("value", r.EntityID)
	}

	items, err := toItems(r.Items)
	if err != nil {
		return err
	}

	d.Type = r.Type
	d.EntityID = entityID
	d.Date = r.Date
	d.ReferenceNo = r.ReferenceNo
	d.Notes = r.Notes
	d.Items = items
	return nil
}

func toItems(reqs []DocumentItemRequest) ([]documents.Item, error) {
	items := make([]documents.Item, 0, len(reqs))
	for i, it := range reqs {
		materialID, err := id.Parse(it.MaterialID)
		if err != nil {
			return nil, apperror.NewValidation("invalid material id").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1).
				WithDetail("value", it.MaterialID)
		}
		items = append(items, documents.Item{
			MaterialID: materialID,
			Quantity:   it.Quantity,
		})
	}
	return items, nil
}
