package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// telegramSecretHeader carries the secret_token registered with setWebhook.
const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// telegramUpdate is the part of a Bot API Update the webhook reads.
type telegramUpdate struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

type telegramHandler struct {
	secret              string
	notificationService portssvc.NotificationSvc
}

// registerTelegramRoutes mounts the bot webhook. It sits outside /api/v1:
// Telegram authenticates with the shared secret header, not a JWT.
func registerTelegramRoutes(r *gin.Engine, secret string, notificationService portssvc.NotificationSvc) {
	if secret == "" {
		return
	}
	h := &telegramHandler{secret: secret, notificationService: notificationService}
	r.POST("/telegram/webhook", h.webhook)
}

// webhook godoc
// @Summary Telegram bot webhook
// @Description Handles "/start <partnerID>" by binding the sending chat to the partner
// @Tags telegram
// @Accept json
// @Produce json
// @Param X-Telegram-Bot-Api-Secret-Token header string true "Webhook secret"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /telegram/webhook [post]
func (h *telegramHandler) webhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	got := c.GetHeader(telegramSecretHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
		logger.Warn("Rejected telegram webhook call with bad secret")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		// Telegram redelivers non-2xx updates; a malformed one will never parse.
		logger.Warn("Ignoring unparseable telegram update", slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	partnerID, ok := startPayload(update)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)

	err := h.notificationService.BindTelegramChat(c.Request.Context(), partnerID, chatID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"ok": true})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Telegram /start for unknown partner",
			slog.String("partner_id", partnerID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	default:
		logger.Error("Failed to bind telegram chat",
			slog.String("partner_id", partnerID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to bind telegram chat"})
	}
}

// startPayload extracts the partner ID from a "/start <partnerID>" message.
// Group chats may address the bot as "/start@bot_name".
func startPayload(update telegramUpdate) (string, bool) {
	if update.Message == nil {
		return "", false
	}
	fields := strings.Fields(update.Message.Text)
	if len(fields) < 2 {
		return "", false
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	if cmd != "/start" {
		return "", false
	}
	return fields[1], true
}
