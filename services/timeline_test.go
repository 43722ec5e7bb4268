package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentQuarter(t *testing.T) {
	cases := []struct {
		month   time.Month
		quarter int
	}{
		{time.January, 1},
		{time.March, 1},
		{time.April, 2},
		{time.June, 2},
		{time.July, 3},
		{time.October, 4},
		{time.December, 4},
	}
	for _, tc := range cases {
		year, quarter := CurrentQuarter(time.Date(2026, tc.month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 2026, year)
		assert.Equal(t, tc.quarter, quarter, "month %s", tc.month)
	}
}

func TestQuarterDates(t *testing.T) {
	b := QuarterDates(2026, 2)
	assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, time.Date(2026, time.June, 30, 23, 59, 59, 999000000, time.UTC), b.End)
}

func TestQuarterDates_RollsOverYear(t *testing.T) {
	// Quarter 5 of 2026 is quarter 1 of 2027.
	b := QuarterDates(2026, 5)
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, time.Date(2027, time.March, 31, 23, 59, 59, 999000000, time.UTC), b.End)
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC) // Q1 2026

	cases := []struct {
		name string
		date time.Time
		want Timeline
	}{
		{"previous year", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), TimelinePast},
		{"day before quarter", time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC), TimelinePast},
		{"quarter start", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), TimelineThisQuarter},
		{"now itself", now, TimelineThisQuarter},
		{"quarter end is inclusive", time.Date(2026, time.March, 31, 23, 59, 59, 999000000, time.UTC), TimelineThisQuarter},
		{"next quarter start", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), TimelineNextQuarter},
		{"next quarter end is inclusive", time.Date(2026, time.June, 30, 23, 59, 59, 999000000, time.UTC), TimelineNextQuarter},
		{"after next quarter", time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), TimelineLater},
		{"far future", time.Date(2027, time.July, 1, 0, 0, 0, 0, time.UTC), TimelineLater},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.date, now))
		})
	}
}

func TestClassify_Q4RollsIntoNextYear(t *testing.T) {
	now := time.Date(2026, time.November, 5, 0, 0, 0, 0, time.UTC) // Q4 2026

	assert.Equal(t, TimelineNextQuarter, Classify(time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, TimelineLater, Classify(time.Date(2027, time.April, 1, 0, 0, 0, 0, time.UTC), now))
}

func TestParseTimeline(t *testing.T) {
	for _, valid := range []string{"past", "this-quarter", "next-quarter", "later"} {
		tl, err := ParseTimeline(valid)
		require.NoError(t, err)
		assert.Equal(t, Timeline(valid), tl)
	}

	_, err := ParseTimeline("someday")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
