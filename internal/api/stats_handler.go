package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rs/zerolog"
)

// StatsHandler serves storage and dashboard figures
type StatsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(services *service.Services, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{
		services: services,
		log:      log.With().Str("handler", "stats").Logger(),
	}
}

// Storage handles GET /api/stats/storage
func (h *StatsHandler) Storage(c *gin.Context) {
	stats, err := h.services.Stats.StorageStats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "", "Failed to get storage statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Metrics handles GET /metrics
func (h *StatsHandler) Metrics(c *gin.Context) {
	stats, err := h.services.Stats.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "", "Failed to get metrics")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content": gin.H{
			"articles":  stats.Articles,
			"images":    stats.Images,
			"published": stats.Published,
		},
		"pending": gin.H{
			"donations": stats.PendingDonations,
			"comments":  stats.PendingComments,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Health handles GET /health
func (h *StatsHandler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if h.services.Health != nil {
		if err := h.services.Health.HealthCheck(c.Request.Context()); err != nil {
			h.log.Error().Err(err).Msg("Database health check failed")
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "rosa-mystica-web",
	})
}
