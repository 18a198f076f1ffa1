// Package workday holds the calendar math for leave and timesheet
// handling: inclusive Monday-Friday counting and ISO week windows.
// There is no holiday table; a business day is strictly Mon-Fri.
package workday

import "time"

// Count returns the number of business days in the closed range
// [start, end], iterating one day at a time. start must not be after
// end; callers validate the range before computing.
func Count(start, end time.Time) int {
	start = truncate(start)
	end = truncate(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d) {
			days++
		}
	}
	return days
}

func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Week returns the five weekday dates (Monday through Friday) of the
// given ISO 8601 week.
func Week(isoYear, isoWeek int) []time.Time {
	monday := isoWeekStart(isoYear, isoWeek)
	days := make([]time.Time, 5)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// WeekOf returns the ISO week window containing d.
func WeekOf(d time.Time) (isoYear, isoWeek int, days []time.Time) {
	isoYear, isoWeek = d.ISOWeek()
	return isoYear, isoWeek, Week(isoYear, isoWeek)
}

// isoWeekStart finds the Monday of ISO week 1 (the week containing
// January 4th) and offsets from there.
func isoWeekStart(isoYear, isoWeek int) time.Time {
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, -(wd - 1))
	return week1Monday.AddDate(0, 0, (isoWeek-1)*7)
}

func truncate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
