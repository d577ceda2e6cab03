package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/domain/state"
)

// RefsHandler serves the category and unit reference lists.
type RefsHandler struct {
	*BaseHandler
	store *state.Store
}

// NewRefsHandler creates the handler.
func NewRefsHandler(store *state.Store) *RefsHandler {
	return &RefsHandler{
		BaseHandler: NewBaseHandler(),
		store:       store,
	}
}

type addRefRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories returns the registered categories.
func (h *RefsHandler) ListCategories(c *gin.Context) {
	h.OK(c, gin.H{"items": h.store.Categories()})
}

// AddCategory registers a category. Adding an existing name is a no-op.
func (h *RefsHandler) AddCategory(c *gin.Context) {
	var req addRefRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.store.AddCategory(c.Request.Context(), req.Name)
	h.Success(c, "category added")
}

// ListUnits returns the registered units.
func (h *RefsHandler) ListUnits(c *gin.Context) {
	h.OK(c, gin.H{"items": h.store.Units()})
}

// AddUnit registers a unit. Adding an existing name is a no-op.
func (h *RefsHandler) AddUnit(c *gin.Context) {
	var req addRefRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.store.AddUnit(c.Request.Context(), req.Name)
	h.Success(c, "unit added")
}
