package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// debtHandler serves partner balances.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
	now         func() time.Time
}

func registerDebtRoutes(rg *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := &debtHandler{debtService: debtService, now: time.Now}

	debts := rg.Group("/debts")
	{
		debts.GET("", h.listDebtSummaries)
		debts.GET("/export", h.exportDebtSummaries)
		debts.GET("/:partnerID", h.getDebtDetail)
	}
}

// listDebtSummaries godoc
// @Summary List partner balances
// @Description Returns the outstanding balance of every partner with unsettled transactions, sorted by partner name
// @Tags debts
// @Produce json
// @Param isOverLimit query bool false "Only partners over (true) or within (false) their limit"
// @Param partnerType query string false "SUPPLIER, CUSTOMER or BOTH"
// @Success 200 {object} dto.ListDebtSummariesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Failed to compute balances or DATA_INTEGRITY"
// @Security BearerAuth
// @Router /debts [get]
func (h *debtHandler) listDebtSummaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDebtSummariesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	summaries, err := h.debtService.ListDebtSummaries(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, logger, err, "Failed to compute debt summaries")
		return
	}

	logger.Info("Debt summaries computed", slog.Int("count", len(summaries)))
	c.JSON(http.StatusOK, dto.ToListDebtSummariesResponse(summaries))
}

// getDebtDetail godoc
// @Summary Get one partner's balance
// @Description Returns the partner's balance and full transaction history, settled transactions included
// @Tags debts
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Success 200 {object} dto.DebtDetailResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Partner not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/{partnerID} [get]
func (h *debtHandler) getDebtDetail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("partnerID")
	logger = logger.With(slog.String("partner_id", partnerID))

	detail, err := h.debtService.GetDebtDetail(c.Request.Context(), partnerID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute debt detail")
		return
	}

	c.JSON(http.StatusOK, dto.ToDebtDetailResponse(detail))
}

// exportDebtSummaries godoc
// @Summary Export partner balances
// @Description Downloads the filtered balances as an Excel workbook
// @Tags debts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param isOverLimit query bool false "Only partners over (true) or within (false) their limit"
// @Param partnerType query string false "SUPPLIER, CUSTOMER or BOTH"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /debts/export [get]
func (h *debtHandler) exportDebtSummaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListDebtSummariesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	// Render into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.debtService.ExportDebtSummaries(c.Request.Context(), params.ToFilter(), &buf); err != nil {
		respondError(c, logger, err, "Failed to export debt summaries")
		return
	}

	filename := fmt.Sprintf("cong-no-%s.xlsx", h.now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
