package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"makhzan/internal/core/apperror"
	"makhzan/internal/domain/catalogs/material"
	"makhzan/internal/domain/documents"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/export"
	"makhzan/internal/infrastructure/http/v1/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the derived stock reports and their exports.
type ReportHandler struct {
	*BaseHandler
	materials *material.Service
	documents *documents.Service
}

// NewReportHandler creates the handler.
func NewReportHandler(materials *material.Service, docs *documents.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(),
		materials:   materials,
		documents:   docs,
	}
}

func (h *ReportHandler) buildReports(c *gin.Context) ([]ledger.MaterialReport, bool) {
	ctx := c.Request.Context()

	from, ok := h.parseDateQuery(c, "from")
	if !ok {
		return nil, false
	}
	to, ok := h.parseDateQuery(c, "to")
	if !ok {
		return nil, false
	}
	entityID, ok := h.parseIDQuery(c, "entityId")
	if !ok {
		return nil, false
	}

	materials, err := h.materials.List(ctx)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	docs, err := h.documents.List(ctx)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}

	reports := ledger.BuildReportsFiltered(materials, docs, ledger.Filter{
		From:      from,
		To:        to,
		PartnerID: entityID,
	})

	// Name/SKU search narrows the rows after the fold, so totals of
	// the remaining rows are unaffected by it.
	if q := strings.ToLower(c.Query("search")); q != "" {
		filtered := make([]ledger.MaterialReport, 0, len(reports))
		for _, r := range reports {
			if strings.Contains(strings.ToLower(r.Name), q) ||
				strings.Contains(strings.ToLower(r.SKU), q) {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}

	return reports, true
}

// Materials returns the per-material balance report.
func (h *ReportHandler) Materials(c *gin.Context) {
	reports, ok := h.buildReports(c)
	if !ok {
		return
	}
	h.OK(c, dto.ListResponse{Items: reports, TotalCount: len(reports)})
}

// MaterialsExport streams the balance report as an xlsx workbook.
func (h *ReportHandler) MaterialsExport(c *gin.Context) {
	reports, ok := h.buildReports(c)
	if !ok {
		return
	}

	f, err := export.MaterialReportWorkbook(reports)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.streamWorkbook(c, f, "material-report.xlsx")
}

// LowStock returns the low stock alert rows, most critical first.
func (h *ReportHandler) LowStock(c *gin.Context) {
	reports, ok := h.buildReports(c)
	if !ok {
		return
	}
	items := ledger.EvaluateLowStock(reports)
	h.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// LowStockExport streams the low stock report as an xlsx workbook.
func (h *ReportHandler) LowStockExport(c *gin.Context) {
	reports, ok := h.buildReports(c)
	if !ok {
		return
	}
	items := ledger.EvaluateLowStock(reports)

	f, err := export.LowStockWorkbook(items)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	h.streamWorkbook(c, f, "low-stock-report.xlsx")
}

func (h *ReportHandler) streamWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		h.Error(c, apperror.NewInternal(err))
	}
}
