package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HnM-Co/Yak-Tech/internal/catalog"
	"github.com/HnM-Co/Yak-Tech/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	catalog *catalog.Catalog
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// GetHealth responds with service status and catalog freshness.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	lastUpdated, count := h.catalog.Info()

	status := "healthy"
	if count == 0 {
		status = "empty"
	}

	utils.Success(c, http.StatusOK, "Service is healthy", gin.H{
		"status": status,
		"uptime": int(time.Since(startTime).Seconds()),
		"catalog": gin.H{
			"lastUpdated": lastUpdated,
			"totalCount":  count,
		},
	})
}
