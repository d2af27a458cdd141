package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and store reachability
type HealthController struct {
	driver string
	db     Pinger
}

// NewHealthController creates a new HealthController. db may be nil for the in-memory store.
func NewHealthController(driver string, db Pinger) *HealthController {
	return &HealthController{driver: driver, db: db}
}

// Health pings the store
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.HealthResponse}
// @Failure 503 {object} dto.APIResponse{data=dto.HealthResponse}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := &dto.HealthResponse{Status: "ok", Database: c.driver}

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.db.Ping(pingCtx); err != nil {
			logger.Error().Err(err).Str("driver", c.driver).Msg("Health check ping failed")
			resp.Status = "unavailable"
			body := dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Database unreachable")
			body.Data = resp
			ctx.JSON(http.StatusServiceUnavailable, body)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// Ping answers pong
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
}
