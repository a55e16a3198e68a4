package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gb-more-from-widget/cmd/api/dto"
)

// HealthHandler godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthDTO
// @Failure      503  {object}  dto.HealthDTO
// @Router       /health [get]
func HealthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthDTO{Status: "degraded", Mongo: "down", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok"})
	}
}
