package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"stockflow/internal/core/id"
	"stockflow/internal/domain/reports"
	"stockflow/internal/infrastructure/export"
	"stockflow/internal/infrastructure/http/v1/dto"
)

// ReportService is what the reports handler needs from the domain.
type ReportService interface {
	Report(ctx context.Context, sel reports.Selection) (*reports.Report, error)
	AsOf(ctx context.Context, sel reports.Selection) (*reports.AsOfReport, error)
	Labels(ctx context.Context, productIDs, warehouseIDs []id.ID) *reports.Labels
}

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service ReportService
	now     func() time.Time
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service ReportService) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		now:         time.Now,
	}
}

// Report handles POST /report
func (h *ReportsHandler) Report(c *gin.Context) {
	var query dto.ReportQuery
	if !h.BindQuery(c, &query) {
		return
	}
	var req dto.ReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.service.Report(c.Request.Context(), req.ToSelection())
	if err != nil {
		h.Error(c, err)
		return
	}

	if query.Shape == "legacy" {
		h.OK(c, dto.FromReportLegacy(report))
		return
	}
	h.OK(c, dto.FromReport(report))
}

// AsOf handles POST /report/as-of
func (h *ReportsHandler) AsOf(c *gin.Context) {
	var req dto.ReportRequest
	if !h.BindJSON(c, &req) {
		return
	}

	report, err := h.service.AsOf(c.Request.Context(), req.ToSelection())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAsOfReport(report))
}

// ExportReport handles POST /report/export?format=csv|xls|pdf
func (h *ReportsHandler) ExportReport(c *gin.Context) {
	renderer, req, ok := h.bindExport(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sel := req.ToSelection()

	report, err := h.service.Report(ctx, sel)
	if err != nil {
		h.Error(c, err)
		return
	}

	labels := h.service.Labels(ctx, sel.ProductIDs, sel.WarehouseIDs)
	h.render(c, renderer, export.MovementDocument(sel, report, labels, h.now()),
		export.Filename("movement-report", sel, renderer))
}

// ExportAsOf handles POST /report/as-of/export?format=csv|xls|pdf
func (h *ReportsHandler) ExportAsOf(c *gin.Context) {
	renderer, req, ok := h.bindExport(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sel := req.ToSelection()

	report, err := h.service.AsOf(ctx, sel)
	if err != nil {
		h.Error(c, err)
		return
	}

	labels := h.service.Labels(ctx, sel.ProductIDs, sel.WarehouseIDs)
	h.render(c, renderer, export.AsOfDocument(sel, report, labels, h.now()),
		export.Filename("stock-as-of", sel, renderer))
}

func (h *ReportsHandler) bindExport(c *gin.Context) (export.Renderer, dto.ReportRequest, bool) {
	var query dto.ReportQuery
	var req dto.ReportRequest
	if !h.BindQuery(c, &query) {
		return nil, req, false
	}

	renderer, err := export.RendererFor(query.Format)
	if err != nil {
		h.Error(c, err)
		return nil, req, false
	}
	if !h.BindJSON(c, &req) {
		return nil, req, false
	}
	return renderer, req, true
}

func (h *ReportsHandler) render(c *gin.Context, r export.Renderer, doc export.Document, filename string) {
	body, err := r.Render(doc)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Attachment(c, filename, r.ContentType(), body)
}
