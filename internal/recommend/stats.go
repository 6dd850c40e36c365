package recommend

import (
	"time"

	"github.com/stockcast/backend-go/internal/domain"
)

// ComputeStats aggregates the dashboard figures from full inventory and
// sales snapshots.
func ComputeStats(inventory []domain.InventoryItem, sales []domain.SaleEvent, now time.Time) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalSales:  len(sales),
		LastUpdated: now,
	}

	for _, item := range inventory {
		stats.TotalItems += item.CurrentStock
		stats.TotalValue += float64(item.CurrentStock) * item.UnitPrice
		if item.CurrentStock <= item.MinStock {
			stats.LowStockItems++
		}
	}

	return stats
}
