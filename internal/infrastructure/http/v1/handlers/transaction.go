package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/http/v1/dto"
)

// TransactionHandler serves the flattened movement stream.
type TransactionHandler struct {
	*BaseHandler
	documents *documents.Service
}

// NewTransactionHandler creates the handler.
func NewTransactionHandler(docs *documents.Service) *TransactionHandler {
	return &TransactionHandler{
		BaseHandler: NewBaseHandler(),
		documents:   docs,
	}
}

// List returns one transaction per document line, date descending.
func (h *TransactionHandler) List(c *gin.Context) {
	docs, err := h.documents.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	txs := ledger.Flatten(docs)
	h.OK(c, dto.ListResponse{Items: txs, TotalCount: len(txs)})
}
