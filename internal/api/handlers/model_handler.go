package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockcast/backend-go/internal/forecast"
	"github.com/stockcast/backend-go/internal/repository"
)

type ModelHandler struct {
	model     *forecast.Model
	inventory repository.InventoryRepository
	sales     repository.SalesRepository
}

func NewModelHandler(model *forecast.Model, inventory repository.InventoryRepository, sales repository.SalesRepository) *ModelHandler {
	return &ModelHandler{
		model:     model,
		inventory: inventory,
		sales:     sales,
	}
}

// Train fits the demand model on the full sales history. Too little
// history is a normal outcome, reported with success=false rather than
// an error status.
func (h *ModelHandler) Train(c *gin.Context) {
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

	report, err := h.model.Train(ctx, sales, items, time.Now().UTC())
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			c.JSON(http.StatusOK, gin.H{
				"report":  report,
				"message": "not enough sales history to train",
			})
			return
		}
		errorResponse(c, http.StatusInternalServerError, "training failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

func (h *ModelHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"trained": h.model.Trained(),
	})
}
