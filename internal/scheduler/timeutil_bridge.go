package scheduler

import "github.com/liftform/shiftcraft/internal/scheduler/timeutil"

// durationHHMM wraps timeutil.Duration. Load does not parse time strings,
// so a malformed "HH:MM" in the resources surfaces here (and in the other
// wrappers below) as a *timeutil.ParseError.
func durationHHMM(start, end string) (float64, error) {
	return timeutil.Duration(start, end)
}

func restHoursHHMM(prevEnd, nextStart string) (float64, error) {
	return timeutil.RestHours(prevEnd, nextStart)
}

func overlapsHHMM(aStart, aEnd, bStart, bEnd string) (bool, error) {
	return timeutil.IntervalsOverlap(aStart, aEnd, bStart, bEnd)
}

func minutesOf(s string) (int, error) {
	return timeutil.ParseHHMM(s)
}
