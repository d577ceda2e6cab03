package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/query"
	"makhzan/internal/domain/share"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// MaterialHandler serves the material catalog and per-material history.
type MaterialHandler struct {
	*BaseHandler
	materials *material.Service
	partners  *partner.Service
	documents *documents.Service
}

// NewMaterialHandler creates the handler.
func NewMaterialHandler(materials *material.Service, partners *partner.Service, docs *documents.Service) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: NewBaseHandler(),
		materials:   materials,
		partners:    partners,
		documents:   docs,
	}
}

// List returns the full material catalog.
func (h *MaterialHandler) List(c *gin.Context) {
	items, err := h.materials.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Get returns one material.
func (h *MaterialHandler) Get(c *gin.Context) {
	materialID, ok := h.ParseID(c)
	if !ok {
		return
	}
	m, err := h.materials.Get(c.Request.Context(), materialID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// Create adds a material.
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.CreateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}
	m := req.ToEntity()
	if err := h.materials.Create(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, m.ID)
}

// Update replaces a material's fields.
func (h *MaterialHandler) Update(c *gin.Context) {
	materialID, ok := h.ParseID(c)
	if !ok {
		return
	}
	var req dto.UpdateMaterialRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.materials.Get(c.Request.Context(), materialID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(m)

	if err := h.materials.Update(c.Request.Context(), m); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// Delete removes a material from the catalog.
func (h *MaterialHandler) Delete(c *gin.Context) {
	materialID, ok := h.ParseID(c)
	if !ok {
		return
	}
	if err := h.materials.Delete(c.Request.Context(), materialID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

type historyLine struct {
	query.MovementLine

	// ShareMessage is the prepared WhatsApp body for this movement;
	// the link is present only when the partner has a phone number.
	ShareMessage string `json:"shareMessage"`
	ShareLink    string `json:"shareLink,omitempty"`
}

type historyResponse struct {
	Lines    []historyLine  `json:"lines"`
	TotalIn  types.Quantity `json:"totalIn"`
	TotalOut types.Quantity `json:"totalOut"`
	Net      types.Quantity `json:"net"`
}

// History returns every movement of one material, newest first, with
// optional from/to/search narrowing and running totals. Totals cover
// the filtered lines, matching what the caller sees. Each line carries
// its per-movement share message so callers can forward a single row.
func (h *MaterialHandler) History(c *gin.Context) {
	materialID, ok := h.ParseID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	m, err := h.materials.Get(ctx, materialID)
	if err != nil {
		h.Error(c, err)
		return
	}

	from, ok := h.parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseDateQuery(c, "to")
	if !ok {
		return
	}

	docs, err := h.documents.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	lookup, err := h.partnerLookup(c)
	if err != nil {
		h.Error(c, err)
		return
	}

	lines := query.MovementHistory(docs, materialID, lookup)
	lines = query.FilterLines(lines, query.LineFilter{
		From:   from,
		To:     to,
		Search: c.Query("search"),
	})

	out := make([]historyLine, 0, len(lines))
	for _, l := range lines {
		hl := historyLine{
			MovementLine: l,
			ShareMessage: share.MovementMessage(m.Name, m.Unit, l),
		}
		if l.EntityPhone != "" {
			if link, lerr := share.WhatsAppLink(l.EntityPhone, hl.ShareMessage); lerr == nil {
				hl.ShareLink = link
			}
		}
		out = append(out, hl)
	}

	totalIn, totalOut, net := query.LineTotals(lines)
	h.OK(c, historyResponse{
		Lines:    out,
		TotalIn:  totalIn,
		TotalOut: totalOut,
		Net:      net,
	})
}

func (h *MaterialHandler) partnerLookup(c *gin.Context) (func(id.ID) (*partner.Partner, bool), error) {
	partners, err := h.partners.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	byID := make(map[id.ID]partner.Partner, len(partners))
	for _, p := range partners {
		byID[p.ID] = p
	}
	return func(partnerID id.ID) (*partner.Partner, bool) {
		p, ok := byID[partnerID]
		if !ok {
			return nil, false
		}
		return &p, true
	}, nil
}
