package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler serves period trade reports.
type reportHandler struct {
	reportService portssvc.ReportSvc
}

// registerReportRoutes registers report routes. STAFF cannot see margins.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvc) {
	h := &reportHandler{reportService: reportService}
	readers := middleware.RequireRole(domain.RoleAdmin, domain.RoleShareholder)

	reports := rg.Group("/reports", readers)
	{
		reports.GET("/trade", h.getTradeReport)
		reports.GET("/trade/export", h.exportTradeReport)
	}
}

// getTradeReport godoc
// @Summary Trade report for a period
// @Description Revenue (OUT), purchase cost (IN), gross profit and per-product totals of the transactions recorded between two days, both inclusive
// @Tags reports
// @Produce json
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {object} dto.TradeReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trade [get]
func (h *reportHandler) getTradeReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TradeReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	from, to, err := params.Period()
	if err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	r, err := h.reportService.GenerateTradeReport(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate trade report")
		return
	}
	c.JSON(http.StatusOK, dto.ToTradeReportResponse(r))
}

// exportTradeReport godoc
// @Summary Export a trade report
// @Description Downloads the trade report of a period as an Excel workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "First day, YYYY-MM-DD"
// @Param to query string true "Last day, YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trade/export [get]
func (h *reportHandler) exportTradeReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.TradeReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	from, to, err := params.Period()
	if err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportTradeReport(c.Request.Context(), from, to, &buf); err != nil {
		respondError(c, logger, err, "Failed to export trade report")
		return
	}

	filename := fmt.Sprintf("bao-cao-%s-%s.xlsx", params.From, params.To)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
