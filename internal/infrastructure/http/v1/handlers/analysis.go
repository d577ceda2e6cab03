package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/ai"
)

// AnalysisHandler serves the AI inventory analysis.
type AnalysisHandler struct {
	*BaseHandler
	gemini    *ai.GeminiService
	materials *material.Service
	documents *documents.Service
}

// NewAnalysisHandler creates the handler.
func NewAnalysisHandler(gemini *ai.GeminiService, materials *material.Service, docs *documents.Service) *AnalysisHandler {
	return &AnalysisHandler{
		BaseHandler: NewBaseHandler(),
		gemini:      gemini,
		materials:   materials,
		documents:   docs,
	}
}

// Analyze folds the current balances and asks the model for an Arabic
// summary with reorder recommendations.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	ctx := c.Request.Context()

	materials, err := h.materials.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	docs, err := h.documents.List(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	reports := ledger.BuildReports(materials, docs)

	text, err := h.gemini.Analyze(ctx, reports)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			h.Error(c, apperror.NewValidation("ai analysis is not configured"))
			return
		}
		h.Error(c, apperror.NewInternal(err))
		return
	}

	h.OK(c, gin.H{"analysis": text})
}
