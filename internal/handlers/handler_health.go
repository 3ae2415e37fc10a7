package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/partner_ledger_app/internal/jobs"
	"github.com/SscSPs/partner_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// QueueInspector is the subset of *asynq.Inspector the health check needs.
type QueueInspector interface {
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
}

type healthHandler struct {
	inspector QueueInspector
}

func registerHealthRoutes(r *gin.Engine, inspector QueueInspector) {
	h := &healthHandler{inspector: inspector}
	r.GET("/health", h.health)
	r.GET("/health/queue", h.queueHealth)
}

func (h *healthHandler) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// queueHealth godoc
// @Summary Background queue status
// @Description Reports the number of pending jobs in the default queue
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} ErrorResponse
// @Router /health/queue [get]
func (h *healthHandler) queueHealth(c *gin.Context) {
	if h.inspector == nil {
		c.JSON(http.StatusOK, gin.H{"queue": jobs.QueueDefault, "pending": 0, "enabled": false})
		return
	}
	info, err := h.inspector.GetQueueInfo(jobs.QueueDefault)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Queue health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Queue unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"queue":   info.Queue,
		"pending": info.Pending,
		"active":  info.Active,
		"retry":   info.Retry,
		"enabled": true,
	})
}
