package analytics

import "time"

// Period tokens accepted by the reporting endpoints.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ResolvePeriod maps a period token to the closed [start, end] interval it
// covers: week is the last 7 days including today, month the last 30 days,
// year the current calendar year. Unknown tokens fall back to year.
func ResolvePeriod(token string, now time.Time) (time.Time, time.Time) {
	switch token {
	case PeriodWeek:
		return startOfDay(now.AddDate(0, 0, -6)), endOfDay(now)
	case PeriodMonth:
		return startOfDay(now.AddDate(0, 0, -29)), endOfDay(now)
	default:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), time.December, 31, 23, 59, 59, int(999*time.Millisecond), now.Location())
		return start, end
	}
}

// DaysIn returns the number of calendar days covered by [start, end], never
// less than 1 so it can be used as a denominator.
func DaysIn(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
