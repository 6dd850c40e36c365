package domain

import "strings"

// Recommendation priorities, highest urgency first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var priorityRanks = map[string]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// PriorityRank returns a sortable rank for a priority label; higher means
// more urgent. Unknown labels rank below low.
func PriorityRank(priority string) int {
	if rank, ok := priorityRanks[strings.ToLower(priority)]; ok {
		return rank
	}

	return 0
}
