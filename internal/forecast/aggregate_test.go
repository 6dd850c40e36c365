package forecast

import (
	"testing"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDailySeriesFillsGaps(t *testing.T) {
	events := []domain.SaleEvent{
		{ProductID: "p1", Quantity: 2, SalePrice: 10, Timestamp: day(2026, time.March, 1).Add(9 * time.Hour)},
		{ProductID: "p1", Quantity: 1, SalePrice: 18, Timestamp: day(2026, time.March, 3).Add(10 * time.Hour)},
		{ProductID: "p1", Quantity: 3, SalePrice: 22, Timestamp: day(2026, time.March, 3).Add(15 * time.Hour)},
	}

	series := BuildDailySeries(events, day(2026, time.March, 5))
	require.Len(t, series, 5)

	assert.Equal(t, day(2026, time.March, 1), series[0].Date)
	assert.Equal(t, 2.0, series[0].Quantity)
	assert.Equal(t, 10.0, series[0].Price)

	// Day without sales: zero quantity, forward-filled price.
	assert.Equal(t, 0.0, series[1].Quantity)
	assert.Equal(t, 10.0, series[1].Price)

	// Two sales on one day are summed; price is the day's mean.
	assert.Equal(t, 4.0, series[2].Quantity)
	assert.Equal(t, 20.0, series[2].Price)

	// Trailing gap through the as-of date.
	assert.Equal(t, 0.0, series[3].Quantity)
	assert.Equal(t, 20.0, series[3].Price)
	assert.Equal(t, day(2026, time.March, 5), series[4].Date)
	assert.Equal(t, 20.0, series[4].Price)
}

func TestBuildDailySeriesEmpty(t *testing.T) {
	assert.Nil(t, BuildDailySeries(nil, day(2026, time.March, 5)))
}

func TestBuildDailySeriesAsOfBeforeFirstSale(t *testing.T) {
	events := []domain.SaleEvent{
		{ProductID: "p1", Quantity: 1, SalePrice: 5, Timestamp: day(2026, time.March, 10)},
	}

	series := BuildDailySeries(events, day(2026, time.March, 1))
	require.Len(t, series, 1)
	assert.Equal(t, day(2026, time.March, 10), series[0].Date)
}

func TestBuildDailySeriesCollapsesTimezones(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	events := []domain.SaleEvent{
		{ProductID: "p1", Quantity: 1, SalePrice: 5, Timestamp: time.Date(2026, time.March, 2, 1, 0, 0, 0, jakarta)},
		{ProductID: "p1", Quantity: 2, SalePrice: 5, Timestamp: time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC)},
	}

	// 01:00 WIB on March 2 is 18:00 UTC on March 1.
	series := BuildDailySeries(events, day(2026, time.March, 1))
	require.Len(t, series, 1)
	assert.Equal(t, 3.0, series[0].Quantity)
}

func TestSalesByProduct(t *testing.T) {
	sales := []domain.SaleEvent{
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 2},
		{ProductID: "a", Quantity: 3},
	}

	grouped := SalesByProduct(sales)
	assert.Len(t, grouped["a"], 2)
	assert.Len(t, grouped["b"], 1)
}
