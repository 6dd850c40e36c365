package recommend

import (
	"math"

	"github.com/stockcast/backend-go/internal/domain"
)

const (
	// leadTimeDays is the fixed interval between placing a reorder and the
	// replenishment arriving.
	leadTimeDays = 7

	// daysRemainingSentinel replaces an infinite days-remaining figure.
	daysRemainingSentinel = 999

	minConfidence = 0.5
	maxConfidence = 0.95
)

// Decision is the outcome of evaluating the reorder policy for one product.
type Decision struct {
	Priority            string
	RecommendedQuantity int
	DaysRemaining       int
	DailyDemand         float64
	Confidence          float64
}

// Evaluate maps a predicted weekly demand plus current and minimum stock to
// a reorder decision. It is a pure function; the second return value is
// false when no reorder is needed.
func Evaluate(predictedWeeklyDemand float64, currentStock, minStock int) (Decision, bool) {
	dailyDemand := 0.0
	if predictedWeeklyDemand > 0 {
		dailyDemand = predictedWeeklyDemand / 7
	}

	daysRemaining := math.Inf(1)
	if dailyDemand > 0 {
		daysRemaining = float64(currentStock) / dailyDemand
	}

	if currentStock > minStock && daysRemaining > leadTimeDays {
		return Decision{}, false
	}

	demandDuringLeadTime := dailyDemand * leadTimeDays
	quantity := int(math.Round(demandDuringLeadTime + float64(minStock) - float64(currentStock)))
	// Floor: a minimum restock even when the forecast is near zero.
	if floor := minStock * 2; quantity < floor {
		quantity = floor
	}
	if quantity < 0 {
		quantity = 0
	}

	priority := domain.PriorityLow
	switch {
	case currentStock == 0, currentStock <= minStock, daysRemaining <= 3:
		priority = domain.PriorityHigh
	case daysRemaining <= leadTimeDays:
		priority = domain.PriorityMedium
	}

	confidence := dailyDemand / (dailyDemand + 1)
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	// Cap before converting: a finite but astronomical cover would
	// overflow int and must report the sentinel, not wrap around.
	days := daysRemainingSentinel
	if daysRemaining < daysRemainingSentinel {
		days = int(daysRemaining)
		if days < 0 {
			days = 0
		}
	}

	return Decision{
		Priority:            priority,
		RecommendedQuantity: quantity,
		DaysRemaining:       days,
		DailyDemand:         dailyDemand,
		Confidence:          confidence,
	}, true
}
