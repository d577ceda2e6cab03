package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/query"
	"makhzan/internal/domain/share"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// DocumentHandler serves documents, the movement log, reference
// suggestions and WhatsApp sharing.
type DocumentHandler struct {
	*BaseHandler
	documents *documents.Service
	materials *material.Service
	partners  *partner.Service
}

// NewDocumentHandler creates the handler.
func NewDocumentHandler(docs *documents.Service, materials *material.Service, partners *partner.Service) *DocumentHandler {
	return &DocumentHandler{
		BaseHandler: NewBaseHandler(),
		documents:   docs,
		materials:   materials,
		partners:    partners,
	}
}

// List returns the movement log: documents matching the combined
// filters (search, type, entityId, from, to, category), date descending.
func (h *DocumentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	from, ok := h.parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseDateQuery(c, "to")
	if !ok {
		return
	}
	entityID, ok := h.parseIDQuery(c, "entityId")
	if !ok {
		return
	}

	var docType *documents.Type
	if raw := c.Query("type"); raw != "" {
		t := documents.Type(raw)
		if !t.Valid() {
			h.Error(c, apperror.NewValidation("invalid document type").
				WithDetail("field", "type").
				WithDetail("value", raw))
			return
		}
		docType = &t
	}

	docs, err := h.documents.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	partnerName, err := h.partnerNames(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	categoryOf, err := h.materialCategories(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	filtered := query.Apply(docs, query.And(
		query.BySearch(c.Query("search"), partnerName),
		query.ByType(docType),
		query.ByPartner(entityID),
		query.ByDateRange(from, to),
		query.ByCategory(c.Query("category"), categoryOf),
	))

	h.OK(c, dto.ListResponse{Items: filtered, TotalCount: len(filtered)})
}

// Get returns one document.
func (h *DocumentHandler) Get(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	d, err := h.documents.Get(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Create adds a document.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}
	d, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := h.documents.Create(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, d.ID)
}

// Update replaces a document's fields and lines.
func (h *DocumentHandler) Update(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateDocumentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.documents.Get(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := req.ApplyTo(d); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.documents.Update(c.Request.Context(), d); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, d)
}

// Delete removes a document. All derived balances change accordingly.
func (h *DocumentHandler) Delete(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.documents.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// NextReference suggests the next reference number for ?type=.
func (h *DocumentHandler) NextReference(c *gin.Context) {
	docType := documents.Type(c.Query("type"))
	ref, err := h.documents.NextReference(c.Request.Context(), docType)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"referenceNo": ref})
}

type shareResponse struct {
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// ShareMessage builds the WhatsApp summary of a document. The link is
// present only when the partner has a phone number.
func (h *DocumentHandler) ShareMessage(c *gin.Context) {
	docID, ok := h.ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	d, err := h.documents.Get(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	entityName := query.UnknownPartnerName
	phone := ""
	if p, perr := h.partners.Get(ctx, d.EntityID); perr == nil {
		entityName = p.Name
		phone = p.Phone
	}

	label, err := h.materialLabels(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	msg := share.DocumentMessage(*d, entityName, label)

	resp := shareResponse{Message: msg}
	if phone != "" {
		if link, lerr := share.WhatsAppLink(phone, msg); lerr == nil {
			resp.Link = link
		}
	}
	h.OK(c, resp)
}

func (h *DocumentHandler) partnerNames(c *gin.Context) (func(id.ID) string, error) {
	partners, err := h.partners.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[id.ID]string, len(partners))
	for _, p := range partners {
		names[p.ID] = p.Name
	}
	return func(partnerID id.ID) string {
		return names[partnerID]
	}, nil
}

func (h *DocumentHandler) materialCategories(c *gin.Context) (func(id.ID) (string, bool), error) {
	materials, err := h.materials.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	categories := make(map[id.ID]string, len(materials))
	for _, m := range materials {
		categories[m.ID] = m.Category
	}
	return func(materialID id.ID) (string, bool) {
		cat, ok := categories[materialID]
		return cat, ok
	}, nil
}

func (h *DocumentHandler) materialLabels(c *gin.Context) (func(id.ID) (share.ItemLabel, bool), error) {
	materials, err := h.materials.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	labels := make(map[id.ID]share.ItemLabel, len(materials))
	for _, m := range materials {
		labels[m.ID] = share.ItemLabel{Name: m.Name, Unit: m.Unit}
	}
	return func(materialID id.ID) (share.ItemLabel, bool) {
		l, ok := labels[materialID]
		return l, ok
	}, nil
}
