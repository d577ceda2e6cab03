package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// PartnerHandler serves the partner catalog.
type PartnerHandler struct {
	*BaseHandler
	partners *partner.Service
}

// NewPartnerHandler creates the handler.
func NewPartnerHandler(partners *partner.Service) *PartnerHandler {
	return &PartnerHandler{
		BaseHandler: NewBaseHandler(),
		partners:    partners,
	}
}

// List returns all partners, optionally narrowed by ?type=.
func (h *PartnerHandler) List(c *gin.Context) {
	items, err := h.partners.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	if t := partner.Type(c.Query("type")); t != "" {
		filtered := make([]partner.Partner, 0, len(items))
		for _, p := range items {
			if p.Type == t {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}

	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Get returns one partner.
func (h *PartnerHandler) Get(c *gin.Context) {
	partnerID, ok := h.ParseID(c)
	if !ok {
		return
	}
	p, err := h.partners.Get(c.Request.Context(), partnerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Create adds a partner.
func (h *PartnerHandler) Create(c *gin.Context) {
	var req dto.CreatePartnerRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p := req.ToEntity()
	if err := h.partners.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, p.ID)
}

// Update replaces a partner's fields.
func (h *PartnerHandler) Update(c *gin.Context) {
	partnerID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePartnerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.partners.Get(c.Request.Context(), partnerID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(p)

	if err := h.partners.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, p)
}

// Delete removes a partner from the catalog.
func (h *PartnerHandler) Delete(c *gin.Context) {
	partnerID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.partners.Delete(c.Request.Context(), partnerID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
