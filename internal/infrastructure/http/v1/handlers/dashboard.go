package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/catalogs/partner"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/ledger"
)

// DashboardHandler serves the summary counters and recent activity.
type DashboardHandler struct {
	*BaseHandler
	materials *material.Service
	partners  *partner.Service
	documents *documents.Service
}

// NewDashboardHandler creates the handler.
func NewDashboardHandler(materials *material.Service, partners *partner.Service, docs *documents.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(),
		materials:   materials,
		partners:    partners,
		documents:   docs,
	}
}

type dashboardResponse struct {
	Materials          int                  `json:"materials"`
	Partners           int                  `json:"partners"`
	Documents          int                  `json:"documents"`
	Receipts           int                  `json:"receipts"`
	Issues             int                  `json:"issues"`
	LowStock           int                  `json:"lowStock"`
	OutOfStock         int                  `json:"outOfStock"`
	RecentTransactions []ledger.Transaction `json:"recentTransactions"`
}

// Summary returns the headline figures for the landing view.
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	materials, err := h.materials.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	partners, err := h.partners.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	docs, err := h.documents.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dashboardResponse{
		Materials: len(materials),
		Partners:  len(partners),
		Documents: len(docs),
	}

	for _, d := range docs {
		switch d.Type {
		case documents.TypeReceipt:
			resp.Receipts++
		case documents.TypeIssue:
			resp.Issues++
		}
	}

	for _, item := range ledger.EvaluateLowStock(ledger.BuildReports(materials, docs)) {
		if item.Status == ledger.StatusOutOfStock {
			resp.OutOfStock++
		} else {
			resp.LowStock++
		}
	}

	txs := ledger.Flatten(docs)
	if len(txs) > 5 {
		txs = txs[:5]
	}
	resp.RecentTransactions = txs

	h.OK(c, resp)
}
