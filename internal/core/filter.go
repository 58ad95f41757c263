package core

import (
	"strings"
	"time"
)

const (
	RangeAllTime DateRange = "All Time"
	RangeToday   DateRange = "Today"
	RangeLast7   DateRange = "Last 7 Days"
	RangeLast30  DateRange = "Last 30 Days"
	RangeCustom  DateRange = "Custom"
)

// FilterAll is the wildcard value for category and kind criteria.
const FilterAll = "All"

type (
	// DateRange selects which window of transaction dates a filter accepts.
	DateRange string

	// Criteria is the transient filter state. Zero CustomDate means no
	// custom day was chosen, in which case RangeCustom matches nothing.
	Criteria struct {
		Category   string
		Kind       string
		Range      DateRange
		CustomDate time.Time
	}
)

// DateRanges lists the selectable ranges in picker order.
func DateRanges() []DateRange {
	return []DateRange{RangeAllTime, RangeToday, RangeLast7, RangeLast30, RangeCustom}
}

// Apply returns the subset of txs matching every criterion. It is pure:
// now is passed in so results are deterministic. Category matching is
// case-insensitive, matching the catalog lookup policy.
func Apply(txs []Transaction, c Criteria, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if !matchesCategory(t, c.Category) {
			continue
		}
		if !matchesKind(t, c.Kind) {
			continue
		}
		if !matchesRange(t, c, now) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesCategory(t Transaction, category string) bool {
	if category == "" || category == FilterAll {
		return true
	}
	return strings.EqualFold(t.Category, category)
}

func matchesKind(t Transaction, kind string) bool {
	if kind == "" || kind == FilterAll {
		return true
	}
	k, err := ParseKind(kind)
	if err != nil {
		return false
	}
	return t.Kind == k
}

func matchesRange(t Transaction, c Criteria, now time.Time) bool {
	switch c.Range {
	case RangeAllTime, "":
		return true
	case RangeToday:
		return SameCalendarDay(t.Date, now)
	case RangeLast7:
		return inWindow(t.Date, now, 7)
	case RangeLast30:
		return inWindow(t.Date, now, 30)
	case RangeCustom:
		if c.CustomDate.IsZero() {
			return false
		}
		return SameCalendarDay(t.Date, c.CustomDate)
	}
	return false
}

func inWindow(date, now time.Time, days int) bool {
	start := now.AddDate(0, 0, -days)
	return date.After(start) && !date.After(now)
}
