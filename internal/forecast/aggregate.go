package forecast

import (
	"sort"
	"time"

	"github.com/stockcast/backend-go/internal/domain"
)

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildDailySeries converts the raw sale events of one product into a
// contiguous daily series from the first sale's date through asOf, one point
// per calendar day. Days without a sale get quantity 0 and a price
// forward-filled from the most recent day that had one. A product with no
// sale events yields an empty series.
func BuildDailySeries(events []domain.SaleEvent, asOf time.Time) []domain.DailySalesPoint {
	if len(events) == 0 {
		return nil
	}

	type dayTotal struct {
		quantity float64
		priceSum float64
		sales    int
	}

	totals := make(map[time.Time]*dayTotal)
	for _, e := range events {
		day := dayOf(e.Timestamp)
		t, ok := totals[day]
		if !ok {
			t = &dayTotal{}
			totals[day] = t
		}
		t.quantity += float64(e.Quantity)
		t.priceSum += e.SalePrice
		t.sales++
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	first := days[0]
	last := dayOf(asOf)
	if last.Before(first) {
		last = first
	}

	var series []domain.DailySalesPoint
	lastPrice := 0.0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		point := domain.DailySalesPoint{Date: day}
		if t, ok := totals[day]; ok {
			point.Quantity = t.quantity
			point.Price = t.priceSum / float64(t.sales)
			lastPrice = point.Price
		} else {
			point.Price = lastPrice
		}
		series = append(series, point)
	}

	return series
}

// SalesByProduct groups a sales snapshot by product id.
func SalesByProduct(sales []domain.SaleEvent) map[string][]domain.SaleEvent {
	grouped := make(map[string][]domain.SaleEvent)
	for _, s := range sales {
		grouped[s.ProductID] = append(grouped[s.ProductID], s)
	}
	return grouped
}
