package recommend

import (
	"testing"

	"github.com/stockcast/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateAmpleStockNoDemand(t *testing.T) {
	_, ok := Evaluate(0, 10, 5)
	assert.False(t, ok)
}

func TestEvaluateAmpleStockSlowDemand(t *testing.T) {
	// 1 unit/day against 100 in stock: 100 days of cover, no reorder.
	_, ok := Evaluate(7, 100, 5)
	assert.False(t, ok)
}

func TestEvaluateAtMinStockNoDemand(t *testing.T) {
	d, ok := Evaluate(0, 5, 5)
	require.True(t, ok)

	assert.Equal(t, domain.PriorityHigh, d.Priority)
	// No forecast demand: the floor of twice the minimum stock applies.
	assert.Equal(t, 10, d.RecommendedQuantity)
	assert.Equal(t, 999, d.DaysRemaining)
	assert.Equal(t, 0.5, d.Confidence)
}

func TestEvaluateZeroStock(t *testing.T) {
	d, ok := Evaluate(7, 0, 5)
	require.True(t, ok)

	assert.Equal(t, domain.PriorityHigh, d.Priority)
	// Lead-time demand plus min stock, nothing on hand.
	assert.Equal(t, 12, d.RecommendedQuantity)
	assert.Equal(t, 0, d.DaysRemaining)
	assert.Equal(t, 1.0, d.DailyDemand)
	assert.Equal(t, 0.5, d.Confidence)
}

func TestEvaluateLeadTimeDemandMath(t *testing.T) {
	// 2 units/day, 1 in stock, min 3: round(14 + 3 - 1) = 16 beats the
	// floor of 6.
	d, ok := Evaluate(14, 1, 3)
	require.True(t, ok)

	assert.Equal(t, 16, d.RecommendedQuantity)
	assert.Equal(t, domain.PriorityHigh, d.Priority)
}

func TestEvaluateMediumPriority(t *testing.T) {
	// 2 units/day, 12 in stock, 6 days of cover: inside the lead time
	// but not critical.
	d, ok := Evaluate(14, 12, 5)
	require.True(t, ok)

	assert.Equal(t, domain.PriorityMedium, d.Priority)
	assert.Equal(t, 6, d.DaysRemaining)
	// round(14 + 5 - 12) = 7, lifted to the floor of 10.
	assert.Equal(t, 10, d.RecommendedQuantity)
	assert.InDelta(t, 2.0/3.0, d.Confidence, 1e-9)
}

func TestEvaluateCriticalDaysRemaining(t *testing.T) {
	// 4 units/day, 12 in stock, exactly 3 days of cover.
	d, ok := Evaluate(28, 12, 5)
	require.True(t, ok)

	assert.Equal(t, domain.PriorityHigh, d.Priority)
	assert.Equal(t, 3, d.DaysRemaining)
}

func TestEvaluateConfidenceClamp(t *testing.T) {
	d, ok := Evaluate(700, 5, 5)
	require.True(t, ok)

	assert.Equal(t, 0.95, d.Confidence)
}

func TestEvaluateDaysRemainingTruncates(t *testing.T) {
	// 3 units/day over 10 in stock: 3.33 days reported as 3.
	d, ok := Evaluate(21, 10, 5)
	require.True(t, ok)

	assert.Equal(t, 3, d.DaysRemaining)
	assert.Equal(t, domain.PriorityMedium, d.Priority)
}

func TestEvaluateTinyDemandReportsSentinel(t *testing.T) {
	// Vanishingly small demand gives finite but astronomical cover; it
	// must report the sentinel like the zero-demand case, not an
	// overflowed zero that would sort ahead of critical items.
	d, ok := Evaluate(1e-300, 5, 5)
	require.True(t, ok)

	assert.Equal(t, 999, d.DaysRemaining)
	assert.Equal(t, domain.PriorityHigh, d.Priority)
	assert.Equal(t, 10, d.RecommendedQuantity)
}

func TestEvaluateQuantityNeverNegative(t *testing.T) {
	// Huge stock against tiny min stock can push the raw quantity
	// negative; the decision still never recommends less than zero.
	d, ok := Evaluate(7, 6, 6)
	require.True(t, ok)
	assert.GreaterOrEqual(t, d.RecommendedQuantity, 0)
}
