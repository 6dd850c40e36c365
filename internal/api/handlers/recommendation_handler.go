package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockcast/backend-go/internal/recommend"
	"github.com/stockcast/backend-go/internal/repository"
)

type RecommendationHandler struct {
	recommender     *recommend.Service
	inventory       repository.InventoryRepository
	sales           repository.SalesRepository
	recommendations repository.RecommendationRepository
}

func NewRecommendationHandler(
	recommender *recommend.Service,
	inventory repository.InventoryRepository,
	sales repository.SalesRepository,
	recommendations repository.RecommendationRepository,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommender:     recommender,
		inventory:       inventory,
		sales:           sales,
		recommendations: recommendations,
	}
}

// List returns the most recently generated recommendations, highest
// priority first.
func (h *RecommendationHandler) List(c *gin.Context) {
	recs, err := h.recommendations.List(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list recommendations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
	})
}

// Generate re-evaluates every inventory item against the current model
// and replaces the stored recommendation set with the result.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

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

	recs := h.recommender.Generate(ctx, items, sales, time.Now().UTC())

	if err := h.recommendations.ReplaceAll(ctx, recs); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to persist recommendations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recs,
		"total":           len(recs),
		"model_trained":   h.recommender.Model().Trained(),
	})
}
