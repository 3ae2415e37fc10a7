package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/dto"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler handles authentication related requests.
type authHandler struct {
	userService portssvc.UserSvcFacade
}

// registerAuthRoutes sets up the public authentication routes. The login route
// is rate limited when loginLimiter is non-nil.
func registerAuthRoutes(r *gin.Engine, userService portssvc.UserSvcFacade, loginLimiter *limiter.Limiter) {
	h := &authHandler{userService: userService}

	handlers := []gin.HandlerFunc{}
	if loginLimiter != nil {
		handlers = append(handlers, middleware.RateLimit(loginLimiter))
	}
	handlers = append(handlers, h.login)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers...)
	}
}

// login godoc
// @Summary User login
// @Description Authenticates a user by email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "request body")
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, apperrors.ErrUnauthorized) {
		logger.Warn("Login rejected")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	token, expiresAt, err := h.userService.IssueToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}
