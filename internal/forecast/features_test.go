package forecast

import (
	"testing"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantSeries(start time.Time, days int, quantity, price float64) []domain.DailySalesPoint {
	series := make([]domain.DailySalesPoint, days)
	for i := range series {
		series[i] = domain.DailySalesPoint{
			Date:     start.AddDate(0, 0, i),
			Quantity: quantity,
			Price:    price,
		}
	}
	return series
}

func TestWindowSize(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{days: 7, want: 2},
		{days: 10, want: 2},
		{days: 13, want: 3},
		{days: 50, want: 10},
		{days: 150, want: 30},
		{days: 365, want: 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WindowSize(tt.days), "days=%d", tt.days)
	}
}

func TestBuildPredictionRowShape(t *testing.T) {
	item := domain.InventoryItem{
		ID:           "p1",
		CurrentStock: 12,
		MinStock:     4,
		UnitPrice:    3.5,
	}
	start := day(2026, time.March, 1)
	series := constantSeries(start, 10, 5, 2)
	asOf := start.AddDate(0, 0, 9)

	row, err := BuildPredictionRow(item, series, asOf)
	require.NoError(t, err)
	require.Len(t, row, FeatureVectorLen)

	// 10 days of history gives a window of 2, anchored at the right end
	// of the quantity slots; everything left of it stays zero.
	for i := 0; i < MaxWindowSize-2; i++ {
		assert.Zero(t, row[i], "slot %d", i)
	}
	assert.Equal(t, 5.0, row[MaxWindowSize-2])
	assert.Equal(t, 5.0, row[MaxWindowSize-1])

	// Mean window price, then target-day calendar features.
	assert.Equal(t, 2.0, row[MaxWindowSize])
	target := asOf.AddDate(0, 0, 1)
	assert.Equal(t, float64((int(target.Weekday())+6)%7), row[MaxWindowSize+1])
	assert.Equal(t, float64(target.Month()), row[MaxWindowSize+2])
	assert.Equal(t, float64(target.Day()), row[MaxWindowSize+3])

	assert.Equal(t, 12.0, row[MaxWindowSize+4])
	assert.Equal(t, 4.0, row[MaxWindowSize+5])
	assert.Equal(t, 3.5, row[MaxWindowSize+6])
	assert.Equal(t, 2.0, row[MaxWindowSize+7])
}

func TestBuildPredictionRowMondayIndexedWeekday(t *testing.T) {
	item := domain.InventoryItem{ID: "p1"}
	// 2026-03-01 is a Sunday, so ten days later 2026-03-10 is a Tuesday
	// and the target day 2026-03-11 a Wednesday.
	start := day(2026, time.March, 1)
	series := constantSeries(start, 10, 1, 1)

	row, err := BuildPredictionRow(item, series, day(2026, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, 2.0, row[MaxWindowSize+1])
}

func TestBuildPredictionRowTooShort(t *testing.T) {
	item := domain.InventoryItem{ID: "p1"}
	series := constantSeries(day(2026, time.March, 1), 6, 1, 1)

	_, err := BuildPredictionRow(item, series, day(2026, time.March, 6))
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestBuildTrainingRows(t *testing.T) {
	item := domain.InventoryItem{ID: "p1"}
	series := constantSeries(day(2026, time.March, 1), 10, 5, 2)

	rows, targets := BuildTrainingRows(item, series)
	// Window of 2 sliding over 10 days: positions 0..7.
	require.Len(t, rows, 8)
	require.Len(t, targets, 8)

	for _, row := range rows {
		assert.Len(t, row, FeatureVectorLen)
	}
	assert.Equal(t, series[2].Quantity, targets[0])
}

func TestBuildTrainingRowsShortHistory(t *testing.T) {
	item := domain.InventoryItem{ID: "p1"}
	series := constantSeries(day(2026, time.March, 1), 6, 5, 2)

	rows, targets := BuildTrainingRows(item, series)
	assert.Nil(t, rows)
	assert.Nil(t, targets)
}
