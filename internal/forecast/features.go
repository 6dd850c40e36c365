package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
)

const (
	// MinHistoryDays is the minimum daily-series length a product needs to
	// participate in training or prediction.
	MinHistoryDays = 7

	// MinWindowSize and MaxWindowSize bound the adaptive lookback window.
	MinWindowSize = 2
	MaxWindowSize = 30

	// FeatureVectorLen is the fixed length of every feature row: the padded
	// quantity window, mean window price, target-day weekday/month/day,
	// the item's stock and price attributes, and the window size itself.
	FeatureVectorLen = MaxWindowSize + 8
)

// WindowSize derives the adaptive lookback length for a product with the
// given number of days in inventory: one fifth of the history, clamped to
// [MinWindowSize, MaxWindowSize].
func WindowSize(daysInInventory int) int {
	w := int(math.Round(float64(daysInInventory) / 5))
	if w < MinWindowSize {
		w = MinWindowSize
	}
	if w > MaxWindowSize {
		w = MaxWindowSize
	}
	return w
}

// encodeRow builds one fixed-length feature row from a quantity window, the
// date the model is asked to predict, and the item's inventory attributes.
// The window is anchored at the right end of the slot array so the most
// recent day always lands in the same slot regardless of window size; unused
// slots on the left stay zero.
func encodeRow(window []domain.DailySalesPoint, targetDate time.Time, item domain.InventoryItem, windowSize int) []float64 {
	row := make([]float64, 0, FeatureVectorLen)

	quantities := make([]float64, MaxWindowSize)
	offset := MaxWindowSize - len(window)
	priceSum := 0.0
	for i, p := range window {
		quantities[offset+i] = p.Quantity
		priceSum += p.Price
	}
	row = append(row, quantities...)
	row = append(row, priceSum/float64(len(window)))

	// Monday-indexed weekday
	row = append(row, float64((int(targetDate.Weekday())+6)%7))
	row = append(row, float64(targetDate.Month()))
	row = append(row, float64(targetDate.Day()))

	row = append(row,
		float64(item.CurrentStock),
		float64(item.MinStock),
		item.UnitPrice,
		float64(windowSize),
	)

	return row
}

// BuildTrainingRows slides the product's adaptive window across its daily
// series and emits one feature row per valid position, each labeled with the
// next day's quantity. Products with fewer than MinHistoryDays days yield no
// rows.
func BuildTrainingRows(item domain.InventoryItem, series []domain.DailySalesPoint) ([][]float64, []float64) {
	if len(series) < MinHistoryDays {
		return nil, nil
	}

	w := WindowSize(len(series))
	var features [][]float64
	var targets []float64
	for i := 0; i+w < len(series); i++ {
		target := series[i+w]
		features = append(features, encodeRow(series[i:i+w], target.Date, item, w))
		targets = append(targets, target.Quantity)
	}

	return features, targets
}

// BuildPredictionRow builds the single feature row for the most recent
// window, with calendar features taken from the day after asOf.
func BuildPredictionRow(item domain.InventoryItem, series []domain.DailySalesPoint, asOf time.Time) ([]float64, error) {
	if len(series) < MinHistoryDays {
		return nil, fmt.Errorf("product %s has %d days of history: %w", item.ID, len(series), ErrNoHistory)
	}

	w := WindowSize(len(series))
	window := series[len(series)-w:]
	targetDate := dayOf(asOf).AddDate(0, 0, 1)

	return encodeRow(window, targetDate, item, w), nil
}
