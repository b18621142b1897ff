package dashboard

import "time"

// nextStreak returns the streak after an activity at now, given the previous
// streak and last activity. Days are compared as calendar dates in loc.
//
// A gap of two or more days restarts the streak at 1, counting today.
func nextStreak(streak int, last, now time.Time, loc *time.Location) int {
	if streak <= 0 {
		return 1
	}

	lastDay := calendarDay(last, loc)
	today := calendarDay(now, loc)

	switch {
	case lastDay.Equal(today):
		return streak
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return streak + 1
	default:
		return 1
	}
}

// calendarDay truncates t to midnight of its date in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// sameDay reports whether a and b fall on the same calendar date in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	return calendarDay(a, loc).Equal(calendarDay(b, loc))
}
