package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriodWeek(t *testing.T) {
	now := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	start, end := ResolvePeriod(PeriodWeek, now)

	assert.Equal(t, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2026, end.Year())
	assert.Equal(t, time.March, end.Month())
	assert.Equal(t, 15, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 7, DaysIn(start, end))
}

func TestResolvePeriodMonth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

	start, end := ResolvePeriod(PeriodMonth, now)

	assert.Equal(t, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 30, DaysIn(start, end))
}

func TestResolvePeriodYear(t *testing.T) {
	now := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	start, end := ResolvePeriod(PeriodYear, now)

	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}

func TestResolvePeriodUnknownFallsBackToYear(t *testing.T) {
	now := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)

	start, end := ResolvePeriod("quarter", now)
	yearStart, yearEnd := ResolvePeriod(PeriodYear, now)

	assert.Equal(t, yearStart, start)
	assert.Equal(t, yearEnd, end)
}

func TestDaysInNeverBelowOne(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysIn(now, now))
	assert.Equal(t, 1, DaysIn(now, now.Add(-48*time.Hour)))
}
