package recommend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stockcast/backend-go/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steadySales(productIDs []string, start time.Time, days, quantity int, price float64) []domain.SaleEvent {
	var sales []domain.SaleEvent
	for _, id := range productIDs {
		for i := 0; i < days; i++ {
			sales = append(sales, domain.SaleEvent{
				ProductID: id,
				Quantity:  quantity,
				SalePrice: price,
				Timestamp: start.AddDate(0, 0, i).Add(12 * time.Hour),
			})
		}
	}
	return sales
}

func newTrainedModel(t *testing.T, sales []domain.SaleEvent, inventory []domain.InventoryItem, asOf time.Time) *forecast.Model {
	t.Helper()
	model := forecast.NewModel(forecast.NewFileStore(filepath.Join(t.TempDir(), "model.json")))
	_, err := model.Train(context.Background(), sales, inventory, asOf)
	require.NoError(t, err)
	return model
}

func TestGenerateUntrainedModel(t *testing.T) {
	model := forecast.NewModel(forecast.NewFileStore(filepath.Join(t.TempDir(), "model.json")))
	svc := NewService(model, false)

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	inventory := []domain.InventoryItem{{ID: "p1", CurrentStock: 1, MinStock: 5}}
	sales := steadySales([]string{"p1"}, start, 30, 5, 10)

	recs := svc.Generate(context.Background(), inventory, sales, start.AddDate(0, 0, 29))
	assert.Empty(t, recs)
	assert.False(t, model.Trained())
}

func TestGenerateAutoTrain(t *testing.T) {
	model := forecast.NewModel(forecast.NewFileStore(filepath.Join(t.TempDir(), "model.json")))
	svc := NewService(model, true)

	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	inventory := []domain.InventoryItem{{ID: "p1", CurrentStock: 1, MinStock: 5, UnitPrice: 10}}
	sales := steadySales([]string{"p1"}, start, 30, 5, 10)

	recs := svc.Generate(context.Background(), inventory, sales, start.AddDate(0, 0, 29))
	assert.True(t, model.Trained())
	assert.NotEmpty(t, recs)
}

func TestGenerateOrdersAndFills(t *testing.T) {
	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	asOf := start.AddDate(0, 0, 29)

	inventory := []domain.InventoryItem{
		// 5 units/day forecast against these stocks:
		{ID: "out", CurrentStock: 0, MinStock: 5, UnitPrice: 10},         // high, 0 days
		{ID: "below-min", CurrentStock: 20, MinStock: 25, UnitPrice: 10}, // high, 4 days
		{ID: "tight", CurrentStock: 30, MinStock: 5, UnitPrice: 10},      // medium, 6 days
		{ID: "healthy", CurrentStock: 100, MinStock: 5, UnitPrice: 10},   // no recommendation
	}
	ids := []string{"out", "below-min", "tight", "healthy"}
	sales := steadySales(ids, start, 30, 5, 10)

	model := newTrainedModel(t, sales, inventory, asOf)
	svc := NewService(model, false)

	recs := svc.Generate(context.Background(), inventory, sales, asOf)
	require.Len(t, recs, 3)

	// Highest priority first, ties broken by fewest days remaining.
	assert.Equal(t, "out", recs[0].ProductID)
	assert.Equal(t, domain.PriorityHigh, recs[0].Priority)
	assert.Equal(t, 0, recs[0].DaysRemaining)

	assert.Equal(t, "below-min", recs[1].ProductID)
	assert.Equal(t, domain.PriorityHigh, recs[1].Priority)

	assert.Equal(t, "tight", recs[2].ProductID)
	assert.Equal(t, domain.PriorityMedium, recs[2].Priority)

	for _, rec := range recs {
		assert.InDelta(t, 5, rec.PredictedDailyDemand, 0.2)
		assert.Regexp(t, `^Forecast \d+\.\d units/day demand\. Stock will last \d+ days\.$`, rec.Reason)
		assert.Greater(t, rec.RecommendedQuantity, 0)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	inventory := []domain.InventoryItem{
		{ID: "a", CurrentStock: 10, MinStock: 5, UnitPrice: 2},
		{ID: "b", CurrentStock: 3, MinStock: 5, UnitPrice: 10},
	}
	sales := []domain.SaleEvent{{ProductID: "a"}, {ProductID: "b"}, {ProductID: "a"}}

	stats := ComputeStats(inventory, sales, now)

	assert.Equal(t, 13, stats.TotalItems)
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 50.0, stats.TotalValue)
	assert.Equal(t, 3, stats.TotalSales)
	assert.Equal(t, now, stats.LastUpdated)
}
