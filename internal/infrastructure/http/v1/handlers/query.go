package handlers

import (
	"github.com/gin-gonic/gin"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/core/types"
)

// parseDateQuery parses an optional date query parameter.
// Returns (nil, true) when the parameter is absent.
func (h *BaseHandler) parseDateQuery(c *gin.Context, key string) (*types.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date").
			WithDetail("field", key).
			WithDetail("value", raw))
		return nil, false
	}
	return &d, true
}

// parseIDQuery parses an optional uuid query parameter.
// Returns (nil, true) when the parameter is absent.
func (h *BaseHandler) parseIDQuery(c *gin.Context, key string) (*id.ID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	parsed, err := id.Parse(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id").
			WithDetail("field", key).
			WithDetail("value", raw))
		return nil, false
	}
	return &parsed, true
}
