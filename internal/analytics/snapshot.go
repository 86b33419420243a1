// Package analytics derives dashboard and report figures from an in-memory
// snapshot of the store. Every function here is pure: the snapshot is never
// mutated and identical inputs produce identical outputs.
package analytics

import (
	"time"

	"go-resale-ops/internal/model"
)

// Snapshot is the read-only input for all computations. Orders are expected
// with Items and Client preloaded.
type Snapshot struct {
	Orders   []model.Order
	Clients  []model.Client
	Expenses []model.Expense
	Revenue  []model.RevenueEntry
}

// Range selects the report time window. Inactive-client detection ignores it
// and always looks back a fixed 30 days.
type Range int

const (
	Today Range = iota
	Last7Days
	Last30Days
	AllTime
)

// ParseRange maps the query-param spellings; anything unknown falls back to
// the dashboard default of the last 30 days.
func ParseRange(s string) Range {
	switch s {
	case "today":
		return Today
	case "week":
		return Last7Days
	case "all":
		return AllTime
	default:
		return Last30Days
	}
}

func (r Range) String() string {
	switch r {
	case Today:
		return "today"
	case Last7Days:
		return "week"
	case AllTime:
		return "all"
	default:
		return "month"
	}
}

// contains reports whether t falls inside the window ending at now.
func (r Range) contains(t, now time.Time) bool {
	if r == AllTime {
		return true
	}
	var start time.Time
	switch r {
	case Today:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case Last7Days:
		start = now.AddDate(0, 0, -7)
	default:
		start = now.AddDate(0, 0, -30)
	}
	return !t.Before(start) && !t.After(now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// fallbackClientName labels orders whose client reference is missing or was
// deleted after the order was placed.
const fallbackClientName = "Unknown client"

func clientName(o *model.Order) string {
	if o.Client != nil && o.Client.Name != "" {
		return o.Client.Name
	}
	return fallbackClientName
}
