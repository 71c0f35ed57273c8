// Package period generates the labeled, closed date intervals that bucket
// events for reporting.
package period

import (
	"fmt"
	"time"

	"github.com/finfolio/folio/internal/domain"
)

// Type selects the reporting period granularity.
type Type string

const (
	TypeYearly    Type = "yearly"
	TypeQuarterly Type = "quarterly"
)

// ParseType converts a request parameter into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeYearly, TypeQuarterly:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown period type %q", s)
	}
}

// MaxYearlySpan caps the number of yearly periods produced in one request.
const MaxYearlySpan = 5

// Period is a labeled, closed date interval. Periods in a set are
// non-overlapping, chronological, and never extend past today.
type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the date falls inside the period (inclusive).
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}

// Build produces the period set for the given type. For yearly, year and
// endYear bound the range; for quarterly, only year is used.
func Build(t Type, year, endYear int, today time.Time) []Period {
	if t == TypeQuarterly {
		return Quarterly(year, today)
	}
	return Yearly(year, endYear, today)
}

// Yearly produces one period per year in [startYear, endYear]. Reversed
// bounds are swapped, the end is clamped to the current year, and the span
// is capped at MaxYearlySpan keeping the start year fixed. The current
// year's period ends today and its label carries a " (YTD)" suffix.
func Yearly(startYear, endYear int, today time.Time) []Period {
	if startYear > endYear {
		startYear, endYear = endYear, startYear
	}
	if endYear > today.Year() {
		endYear = today.Year()
	}
	if endYear-startYear+1 > MaxYearlySpan {
		endYear = startYear + MaxYearlySpan - 1
	}

	var periods []Period
	for year := startYear; year <= endYear; year++ {
		start := domain.Day(year, time.January, 1)
		end := domain.Day(year, time.December, 31)
		label := fmt.Sprintf("%d", year)
		if year == today.Year() && today.Before(end) {
			label += " (YTD)"
			end = today
		}
		periods = append(periods, Period{Label: label, Start: start, End: end})
	}
	return periods
}

// Quarterly produces the calendar quarters of one year. A future year is
// clamped to the current year, quarters that have not started yet are
// skipped, and the quarter containing today ends today with a " (YTD)"
// label suffix.
func Quarterly(year int, today time.Time) []Period {
	if year > today.Year() {
		year = today.Year()
	}

	quarters := []Period{
		{Label: "Q1", Start: domain.Day(year, time.January, 1), End: domain.Day(year, time.March, 31)},
		{Label: "Q2", Start: domain.Day(year, time.April, 1), End: domain.Day(year, time.June, 30)},
		{Label: "Q3", Start: domain.Day(year, time.July, 1), End: domain.Day(year, time.September, 30)},
		{Label: "Q4", Start: domain.Day(year, time.October, 1), End: domain.Day(year, time.December, 31)},
	}

	var periods []Period
	for _, q := range quarters {
		if q.Start.After(today) {
			continue
		}
		label := fmt.Sprintf("%d-%s", year, q.Label)
		if !today.Before(q.Start) && today.Before(q.End) {
			label += " (YTD)"
			q.End = today
		}
		periods = append(periods, Period{Label: label, Start: q.Start, End: q.End})
	}
	return periods
}

// Month is one entry of the monthly wealth-evolution timeline. Next is the
// first day of the following month, used as an exclusive upper bound for
// as-of snapshots.
type Month struct {
	Label string    `json:"label"` // YYYY-MM
	Next  time.Time `json:"-"`
}

// MonthlyTimeline walks month by month from the month of the first trade
// (or today when there are no trades) through the current month. The walk
// is bounded by construction: a first date after today yields no entries.
func MonthlyTimeline(first, today time.Time) []Month {
	if first.IsZero() {
		first = today
	}
	cursor := domain.Day(first.Year(), first.Month(), 1)
	last := domain.Day(today.Year(), today.Month(), 1)

	var months []Month
	for !cursor.After(last) {
		next := cursor.AddDate(0, 1, 0)
		months = append(months, Month{Label: cursor.Format("2006-01"), Next: next})
		cursor = next
	}
	return months
}
