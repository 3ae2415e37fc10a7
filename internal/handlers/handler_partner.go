package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/SscSPs/partner_ledger_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles HTTP requests related to partners.
type partnerHandler struct {
	partnerService      portssvc.PartnerSvcFacade
	notificationService portssvc.NotificationSvc
}

// registerPartnerRoutes registers partner routes. Writes are ADMIN only.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade, notificationService portssvc.NotificationSvc) {
	h := &partnerHandler{partnerService: partnerService, notificationService: notificationService}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	partners := rg.Group("/partners")
	{
		partners.GET("", h.listPartners)
		partners.POST("", adminOnly, h.createPartner)
		partners.GET("/:partnerID", h.getPartner)
		partners.PUT("/:partnerID", adminOnly, h.updatePartner)
		partners.PUT("/:partnerID/debt-limit", adminOnly, h.updateDebtLimit)
		partners.GET("/:partnerID/notifications", h.listNotifications)
	}
}

// createPartner godoc
// @Summary Create a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param partner body dto.CreatePartnerRequest true "Partner details"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.CreatePartner(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created successfully", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

// getPartner godoc
// @Summary Get a partner by ID
// @Tags partners
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Success 200 {object} dto.PartnerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID} [get]
func (h *partnerHandler) getPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partner, err := h.partnerService.GetPartnerByID(c.Request.Context(), c.Param("partnerID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// listPartners godoc
// @Summary List partners
// @Tags partners
// @Produce json
// @Param type query string false "SUPPLIER, CUSTOMER or BOTH"
// @Success 200 {object} dto.ListPartnersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	var partnerType *domain.PartnerType
	if params.Type != "" {
		pt := domain.PartnerType(params.Type)
		partnerType = &pt
	}

	partners, err := h.partnerService.ListPartners(c.Request.Context(), partnerType)
	if err != nil {
		respondError(c, logger, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPartnersResponse(partners))
}

// updatePartner godoc
// @Summary Update a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Param partner body dto.UpdatePartnerRequest true "Fields to update"
// @Success 200 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID} [put]
func (h *partnerHandler) updatePartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("partnerID")
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.UpdatePartner(c.Request.Context(), partnerID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update partner")
		return
	}
	logger.Info("Partner updated", slog.String("partner_id", partnerID))
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// updateDebtLimit godoc
// @Summary Set a partner's debt limit
// @Tags partners
// @Accept json
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Param limit body dto.UpdateDebtLimitRequest true "New debt limit"
// @Success 200 {object} dto.PartnerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID}/debt-limit [put]
func (h *partnerHandler) updateDebtLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partnerID := c.Param("partnerID")
	var req dto.UpdateDebtLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request format")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	partner, err := h.partnerService.UpdateDebtLimit(c.Request.Context(), partnerID, req.DebtLimit, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update debt limit")
		return
	}
	logger.Info("Debt limit updated", slog.String("partner_id", partnerID), slog.String("debt_limit", req.DebtLimit.String()))
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

// listNotifications godoc
// @Summary List notification attempts for a partner
// @Tags partners
// @Produce json
// @Param partnerID path string true "Partner ID"
// @Param limit query int false "Maximum entries" default(50)
// @Success 200 {array} dto.NotificationLogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{partnerID}/notifications [get]
func (h *partnerHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	limit = pagination.NormalizeLimit(limit, 50, 200)

	logs, err := h.notificationService.ListNotificationLogs(c.Request.Context(), c.Param("partnerID"), limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationLogResponse(logs))
}
