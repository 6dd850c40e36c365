package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stockcast/backend-go/internal/cache"
	"github.com/stockcast/backend-go/internal/recommend"
	"github.com/stockcast/backend-go/internal/repository"
)

type DashboardHandler struct {
	inventory  repository.InventoryRepository
	sales      repository.SalesRepository
	statsCache cache.StatsCache
}

func NewDashboardHandler(inventory repository.InventoryRepository, sales repository.SalesRepository, statsCache cache.StatsCache) *DashboardHandler {
	return &DashboardHandler{
		inventory:  inventory,
		sales:      sales,
		statsCache: statsCache,
	}
}

// GetStats serves the dashboard aggregates, preferring the cache when a
// fresh entry exists.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok, err := h.statsCache.Get(ctx); err == nil && ok {
		c.JSON(http.StatusOK, cached)
		return
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard stats cache read failed")
	}

	items, err := h.inventory.ListItems(ctx)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list inventory")
		return
	}
	sales, err := h.sales.ListSales(ctx)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list sales")
		return
	}

	stats := recommend.ComputeStats(items, sales, time.Now().UTC())

	if err := h.statsCache.Set(ctx, &stats); err != nil {
		log.Warn().Err(err).Msg("dashboard stats cache write failed")
	}

	c.JSON(http.StatusOK, stats)
}
