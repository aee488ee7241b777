// Package timeutil provides pure, deterministic time-math helpers used
// throughout the scheduling engine: "HH:MM" string parsing, duration and
// rest-hour arithmetic, and overnight-aware interval overlap tests.
//
// ParseHHMM and Duration are memoized on their string inputs, matching the
// Python scheduler this engine is modeled on (functools.lru_cache over
// time_to_minutes/calculate_duration). RestHours and IntervalsOverlap keep
// no cache of their own; they parse through the memoized ParseHHMM.
package timeutil

import (
	"fmt"
	"sync"
)

// ParseError reports a malformed "HH:MM" time string.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("timeutil: invalid HH:MM time string %q", e.Input)
}

var parseCache sync.Map // string -> int

// ParseHHMM converts an "HH:MM" string to minutes since midnight (0..1439).
func ParseHHMM(s string) (int, error) {
	if v, ok := parseCache.Load(s); ok {
		return v.(int), nil
	}

	minutes, err := parseHHMM(s)
	if err != nil {
		return 0, err
	}

	parseCache.Store(s, minutes)
	return minutes, nil
}

func parseHHMM(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, &ParseError{Input: s}
	}

	hh, ok1 := digits2(s[0], s[1])
	mm, ok2 := digits2(s[3], s[4])
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return 0, &ParseError{Input: s}
	}

	return hh*60 + mm, nil
}

func digits2(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FormatMinutes renders minutes-since-midnight back to "HH:MM". m must be
// in [0, 1440).
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

type durKey struct{ start, end string }

var durCache sync.Map // durKey -> float64

// Duration returns the length, in hours, of the interval [start, end).
// If end <= start (minute-wise) the interval is treated as overnight and
// 1440 minutes are added before subtracting, so the result is always in
// the half-open range (0, 24].
func Duration(start, end string) (float64, error) {
	key := durKey{start, end}
	if v, ok := durCache.Load(key); ok {
		return v.(float64), nil
	}

	startMin, err := ParseHHMM(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseHHMM(end)
	if err != nil {
		return 0, err
	}

	if endMin <= startMin {
		endMin += 24 * 60
	}

	hours := float64(endMin-startMin) / 60.0
	durCache.Store(key, hours)
	return hours, nil
}

// RestHours returns the number of hours between the end of one shift and
// the start of the next, treating next < prev as crossing midnight.
// Overlapping shifts (a non-positive raw result) are clamped to 0.
func RestHours(prevEnd, nextStart string) (float64, error) {
	prevMin, err := ParseHHMM(prevEnd)
	if err != nil {
		return 0, err
	}
	nextMin, err := ParseHHMM(nextStart)
	if err != nil {
		return 0, err
	}

	if nextMin < prevMin {
		nextMin += 24 * 60
	}

	rest := float64(nextMin-prevMin) / 60.0
	if rest < 0 {
		rest = 0
	}
	return rest, nil
}

// IntervalsOverlap reports whether [aStart, aEnd) and [bStart, bEnd)
// intersect, treating end <= start for either interval as overnight
// (normalized by adding 1440 minutes to that interval's end). Both
// intervals are taken to start on the same day, so an early-morning
// interval is not matched against the after-midnight tail of an overnight
// one.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd string) (bool, error) {
	as, err := ParseHHMM(aStart)
	if err != nil {
		return false, err
	}
	ae, err := ParseHHMM(aEnd)
	if err != nil {
		return false, err
	}
	bs, err := ParseHHMM(bStart)
	if err != nil {
		return false, err
	}
	be, err := ParseHHMM(bEnd)
	if err != nil {
		return false, err
	}

	if ae <= as {
		ae += 24 * 60
	}
	if be <= bs {
		be += 24 * 60
	}

	return as < be && bs < ae, nil
}
