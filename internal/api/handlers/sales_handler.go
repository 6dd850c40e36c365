package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stockcast/backend-go/internal/cache"
	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stockcast/backend-go/internal/repository"
	"github.com/stockcast/backend-go/internal/repository/postgres"
)

type SalesHandler struct {
	sales      repository.SalesRepository
	inventory  repository.InventoryRepository
	statsCache cache.StatsCache
}

func NewSalesHandler(sales repository.SalesRepository, inventory repository.InventoryRepository, statsCache cache.StatsCache) *SalesHandler {
	return &SalesHandler{
		sales:      sales,
		inventory:  inventory,
		statsCache: statsCache,
	}
}

func (h *SalesHandler) ListSales(c *gin.Context) {
	sales, err := h.sales.ListSales(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list sales")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sales": sales,
		"total": len(sales),
	})
}

type recordSaleRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required"`
	SalePrice *float64 `json:"sale_price"`
	Customer  string   `json:"customer"`
}

// RecordSale inserts a sale and decrements the product's stock in one
// transaction. A missing sale price falls back to the item's unit price.
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Quantity <= 0 {
		errorResponse(c, http.StatusBadRequest, "quantity must be positive")
		return
	}

	ctx := c.Request.Context()

	item, err := h.inventory.GetItem(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "product not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to load product")
		return
	}

	price := item.UnitPrice
	if req.SalePrice != nil {
		if *req.SalePrice < 0 {
			errorResponse(c, http.StatusBadRequest, "sale_price must not be negative")
			return
		}
		price = *req.SalePrice
	}

	sale := &domain.SaleEvent{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		SalePrice: price,
		Customer:  req.Customer,
		Timestamp: time.Now().UTC(),
	}

	if err := h.sales.RecordSale(ctx, sale); err != nil {
		if errors.Is(err, postgres.ErrInsufficientStock) {
			errorResponse(c, http.StatusConflict, "insufficient stock for sale")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to record sale")
		return
	}

	if err := h.statsCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard stats cache")
	}

	c.JSON(http.StatusCreated, sale)
}
