package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stockcast/backend-go/internal/repository"
	"github.com/stockcast/backend-go/internal/repository/postgres"
)

type InventoryHandler struct {
	inventory repository.InventoryRepository
}

func NewInventoryHandler(inventory repository.InventoryRepository) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to list inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	id := c.Param("id")

	item, err := h.inventory.GetItem(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "item not found")
			return
		}
		errorResponse(c, http.StatusInternalServerError, "failed to load item")
		return
	}

	c.JSON(http.StatusOK, item)
}

type createItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku" binding:"required"`
	Category     string  `json:"category"`
	CurrentStock int     `json:"current_stock"`
	MinStock     int     `json:"min_stock"`
	UnitPrice    float64 `json:"unit_price"`
	Supplier     string  `json:"supplier"`
	Description  string  `json:"description"`
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.CurrentStock < 0 || req.MinStock < 0 || req.UnitPrice < 0 {
		errorResponse(c, http.StatusBadRequest, "stock and price values must not be negative")
		return
	}

	item := &domain.InventoryItem{
		Name:         strings.TrimSpace(req.Name),
		SKU:          strings.TrimSpace(req.SKU),
		Category:     strings.TrimSpace(req.Category),
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		UnitPrice:    req.UnitPrice,
		Supplier:     strings.TrimSpace(req.Supplier),
		Description:  req.Description,
		LastUpdated:  time.Now().UTC(),
	}

	if err := h.inventory.CreateItem(c.Request.Context(), item); err != nil {
		errorResponse(c, http.StatusInternalServerError, "failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}
