// Package analytics stores the per-client daily visit series shown on
// the portal dashboard.
package analytics

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WeekLength is the fixed size of the visit series: one slot per day of
// the current week window.
const WeekLength = 7

// VisitStats is a one-row-per-client side table.
type VisitStats struct {
	gorm.Model
	ClientID uint                     `json:"clientId" gorm:"uniqueIndex;not null"`
	Visits   datatypes.JSONSlice[int] `json:"visits"`
}

// NormalizeWeek coerces any series to exactly WeekLength entries:
// missing slots become zero, extras are dropped.
func NormalizeWeek(visits []int) []int {
	out := make([]int, WeekLength)
	copy(out, visits)
	return out
}
