package scheduler

import "time"

// dayIndex converts a time.Time to the engine's Monday=0..Sunday=6 index,
// matching entity.ShiftTemplate.ActiveDays and entity.CoverageRule.DayIndex.
func dayIndex(t time.Time) int {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 6
	}
	return int(wd) - 1
}

// weekStart returns the Monday (00:00) of the week containing t.
func weekStart(t time.Time) time.Time {
	d := truncate(t)
	offset := dayIndex(d)
	return d.AddDate(0, 0, -offset)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
