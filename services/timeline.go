package services

import (
	"fmt"
	"time"
)

// Timeline is a coarse date bucket used by the roadmap views.
type Timeline string

const (
	TimelinePast        Timeline = "past"
	TimelineThisQuarter Timeline = "this-quarter"
	TimelineNextQuarter Timeline = "next-quarter"
	TimelineLater       Timeline = "later"
)

// ParseTimeline validates a raw timeline value from a request.
func ParseTimeline(value string) (Timeline, error) {
	switch Timeline(value) {
	case TimelinePast, TimelineThisQuarter, TimelineNextQuarter, TimelineLater:
		return Timeline(value), nil
	}
	return "", fmt.Errorf("%w: unknown timeline %q", ErrValidation, value)
}

// QuarterBounds holds the inclusive UTC start and end of a calendar quarter.
type QuarterBounds struct {
	Start time.Time
	End   time.Time
}

// CurrentQuarter returns the calendar year and quarter (1-4) containing now.
func CurrentQuarter(now time.Time) (int, int) {
	now = now.UTC()
	return now.Year(), int(now.Month()-1)/3 + 1
}

// QuarterDates returns the UTC boundaries of the given quarter. Quarter
// values above 4 roll over into the following year, so callers can ask for
// "current quarter + 1" without normalising.
func QuarterDates(year, quarter int) QuarterBounds {
	year += (quarter - 1) / 4
	quarter = (quarter-1)%4 + 1

	start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0).Add(-time.Millisecond)
	return QuarterBounds{Start: start, End: end}
}

// Classify buckets a date relative to now. Boundary equality is inclusive: a
// date exactly equal to a quarter's end still belongs to that quarter.
func Classify(date, now time.Time) Timeline {
	year, quarter := CurrentQuarter(now)
	current := QuarterDates(year, quarter)
	next := QuarterDates(year, quarter+1)

	switch {
	case date.Before(current.Start):
		return TimelinePast
	case !date.After(current.End):
		return TimelineThisQuarter
	case !date.After(next.End):
		return TimelineNextQuarter
	default:
		return TimelineLater
	}
}
