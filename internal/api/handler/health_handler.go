package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"organizer/backend/internal/dto"
	"organizer/backend/pkg/response"
)

// Pinger 可做健康检查的依赖
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	db    Pinger
	redis Pinger // 可为 nil
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		resp.Status, resp.Database = "degraded", "unreachable"
	}
	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.PingContext(ctx); err != nil {
			resp.Status, resp.Redis = "degraded", "unreachable"
		}
	}

	if resp.Status != "ok" {
		response.ErrorWithData(c, http.StatusServiceUnavailable, response.CodeInternal, "依赖不可用", resp)
		return
	}
	response.OK(c, resp)
}
