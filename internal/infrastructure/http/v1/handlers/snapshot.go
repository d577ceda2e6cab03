package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/state"
)

// Snapshot payloads are user-supplied files; cap reads defensively.
const maxImportSize = 32 << 20

// SnapshotHandler serves full-state export and import.
type SnapshotHandler struct {
	*BaseHandler
	store *state.Store
}

// NewSnapshotHandler creates the handler.
func NewSnapshotHandler(store *state.Store) *SnapshotHandler {
	return &SnapshotHandler{
		BaseHandler: NewBaseHandler(),
		store:       store,
	}
}

// Export returns the complete state as a JSON download.
func (h *SnapshotHandler) Export(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="makhzan-backup.json"`)
	c.JSON(http.StatusOK, h.store.Export())
}

// Import replaces state sections from an uploaded snapshot. The body
// is the raw JSON export; sections it omits are left unchanged.
func (h *SnapshotHandler) Import(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		h.Error(c, apperror.NewInvalidImport(err))
		return
	}

	if err := h.store.Import(c.Request.Context(), payload); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "snapshot imported")
}
