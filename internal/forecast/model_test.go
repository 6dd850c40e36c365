package forecast

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySales(productID string, start time.Time, days, quantity int, price float64) []domain.SaleEvent {
	sales := make([]domain.SaleEvent, 0, days)
	for i := 0; i < days; i++ {
		sales = append(sales, domain.SaleEvent{
			ProductID: productID,
			Quantity:  quantity,
			SalePrice: price,
			Timestamp: start.AddDate(0, 0, i).Add(10 * time.Hour),
		})
	}
	return sales
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	return NewModel(NewFileStore(filepath.Join(t.TempDir(), "model.json")))
}

func TestTrainAndPredict(t *testing.T) {
	start := day(2026, time.February, 1)
	asOf := start.AddDate(0, 0, 29)
	item := domain.InventoryItem{ID: "p1", CurrentStock: 50, MinStock: 10, UnitPrice: 10}
	sales := dailySales("p1", start, 30, 5, 10)

	model := newTestModel(t)
	report, err := model.Train(context.Background(), sales, []domain.InventoryItem{item}, asOf)
	require.NoError(t, err)

	assert.True(t, report.Success)
	assert.Greater(t, report.PooledSampleCount, 0)
	assert.True(t, model.Trained())

	// Steady demand of 5 units/day should forecast about 35 for a week.
	weekly := model.Predict(item, sales, 7, asOf)
	assert.InDelta(t, 35, weekly, 1)

	// Repeated predictions with identical inputs are identical.
	assert.Equal(t, weekly, model.Predict(item, sales, 7, asOf))
}

func TestTrainIsReproducible(t *testing.T) {
	start := day(2026, time.February, 1)
	asOf := start.AddDate(0, 0, 29)

	// Several products with distinct demand levels so the train/test
	// partition actually influences the fit.
	var inventory []domain.InventoryItem
	var sales []domain.SaleEvent
	for i := 0; i < 8; i++ {
		id := string(rune('a' + i))
		inventory = append(inventory, domain.InventoryItem{
			ID: id, CurrentStock: 10 * (i + 1), MinStock: i + 1, UnitPrice: float64(i + 1),
		})
		sales = append(sales, dailySales(id, start, 30, i+1, float64(i+1))...)
	}

	first := newTestModel(t)
	firstReport, err := first.Train(context.Background(), sales, inventory, asOf)
	require.NoError(t, err)

	second := newTestModel(t)
	secondReport, err := second.Train(context.Background(), sales, inventory, asOf)
	require.NoError(t, err)

	assert.Equal(t, firstReport.PooledSampleCount, secondReport.PooledSampleCount)
	assert.Equal(t, firstReport.TrainScore, secondReport.TrainScore)
	assert.Equal(t, firstReport.TestScore, secondReport.TestScore)
	for _, item := range inventory {
		assert.Equal(t,
			first.Predict(item, sales, 7, asOf),
			second.Predict(item, sales, 7, asOf),
			"product %s", item.ID)
	}
}

func TestTrainInsufficientData(t *testing.T) {
	start := day(2026, time.February, 1)
	item := domain.InventoryItem{ID: "p1"}
	sales := dailySales("p1", start, 5, 2, 10)

	model := newTestModel(t)
	report, err := model.Train(context.Background(), sales, []domain.InventoryItem{item}, start.AddDate(0, 0, 4))

	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.False(t, report.Success)
	assert.Zero(t, report.PooledSampleCount)
	assert.False(t, model.Trained())
}

func TestTrainFailureKeepsPreviousState(t *testing.T) {
	start := day(2026, time.February, 1)
	asOf := start.AddDate(0, 0, 29)
	item := domain.InventoryItem{ID: "p1", CurrentStock: 50, MinStock: 10, UnitPrice: 10}
	sales := dailySales("p1", start, 30, 5, 10)

	model := newTestModel(t)
	_, err := model.Train(context.Background(), sales, []domain.InventoryItem{item}, asOf)
	require.NoError(t, err)
	before := model.Predict(item, sales, 7, asOf)

	// Retraining on an empty snapshot fails and must not clobber the
	// fitted state.
	_, err = model.Train(context.Background(), nil, []domain.InventoryItem{item}, asOf)
	assert.ErrorIs(t, err, ErrInsufficientData)

	assert.True(t, model.Trained())
	assert.Equal(t, before, model.Predict(item, sales, 7, asOf))
}

func TestPredictUntrained(t *testing.T) {
	start := day(2026, time.February, 1)
	item := domain.InventoryItem{ID: "p1"}
	sales := dailySales("p1", start, 30, 5, 10)

	model := newTestModel(t)
	assert.Zero(t, model.Predict(item, sales, 7, start.AddDate(0, 0, 29)))
}

func TestPredictNoHistoryFailsClosed(t *testing.T) {
	start := day(2026, time.February, 1)
	asOf := start.AddDate(0, 0, 29)
	item := domain.InventoryItem{ID: "p1", CurrentStock: 50, MinStock: 10, UnitPrice: 10}
	sales := dailySales("p1", start, 30, 5, 10)

	model := newTestModel(t)
	_, err := model.Train(context.Background(), sales, []domain.InventoryItem{item}, asOf)
	require.NoError(t, err)

	// A product with no recorded sales cannot produce a feature row.
	stranger := domain.InventoryItem{ID: "p2", CurrentStock: 5, MinStock: 2}
	assert.Zero(t, model.Predict(stranger, sales, 7, asOf))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	start := day(2026, time.February, 1)
	asOf := start.AddDate(0, 0, 29)
	item := domain.InventoryItem{ID: "p1", CurrentStock: 50, MinStock: 10, UnitPrice: 10}
	sales := dailySales("p1", start, 30, 5, 10)

	path := filepath.Join(t.TempDir(), "model.json")
	trained := NewModel(NewFileStore(path))
	_, err := trained.Train(context.Background(), sales, []domain.InventoryItem{item}, asOf)
	require.NoError(t, err)
	want := trained.Predict(item, sales, 7, asOf)

	restored := NewModel(NewFileStore(path))
	require.True(t, restored.Load(context.Background()))
	assert.True(t, restored.Trained())
	assert.InDelta(t, want, restored.Predict(item, sales, 7, asOf), 1e-9)
}

func TestLoadMissingArtifact(t *testing.T) {
	model := NewModel(NewFileStore(filepath.Join(t.TempDir(), "missing.json")))
	assert.False(t, model.Load(context.Background()))
	assert.False(t, model.Trained())
}

func TestSaveUntrained(t *testing.T) {
	model := newTestModel(t)
	assert.ErrorIs(t, model.Save(context.Background()), ErrUntrained)
}
