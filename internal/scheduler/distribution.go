package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
)

// Category buckets a shift for scoring and fairness-history purposes.
type Category string

const (
	CategoryEarlyMorning Category = "EARLY_MORNING"
	CategoryLateNight    Category = "LATE_NIGHT"
	CategoryWeekend      Category = "WEEKEND"
	CategoryHoliday      Category = "HOLIDAY"
	CategorySplit        Category = "SPLIT"
	CategoryStandard     Category = "STANDARD"
)

var baseScore = map[Category]float64{
	CategoryStandard:     1.0,
	CategorySplit:        2.0,
	CategoryEarlyMorning: 3.0,
	CategoryLateNight:    4.0,
	CategoryWeekend:      5.0,
	CategoryHoliday:      5.5,
}

// HolidayCalendar lets the distribution manager treat specific dates as
// holidays without hard-coding a calendar into the engine. A nil calendar
// recognizes no holidays.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// StaticHolidayCalendar is a fixed, explicitly-configured set of holiday
// dates (supplemental feature; grounded in original_source's holiday list
// read from configuration rather than computed).
type StaticHolidayCalendar struct {
	dates map[time.Time]bool
}

// NewStaticHolidayCalendar builds a calendar from a list of dates.
func NewStaticHolidayCalendar(dates []time.Time) *StaticHolidayCalendar {
	m := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		m[truncate(d)] = true
	}
	return &StaticHolidayCalendar{dates: m}
}

// IsHoliday implements HolidayCalendar.
func (c *StaticHolidayCalendar) IsHoliday(date time.Time) bool {
	if c == nil {
		return false
	}
	return c.dates[truncate(date)]
}

// categoryOf classifies a shift template occurring on date using the
// precedence weekend > holiday > early morning > late night > split >
// standard. SPLIT is detected from an assignment's recorded break window
// (break_start/break_end splitting the shift into sub-intervals more than
// 30 minutes apart), not from template duration alone — requires_break is
// mandatory on every template longer than 6 hours, so a duration-only test
// would misclassify every ordinary long shift as SPLIT. No caller here has
// an assignment's break window yet, so this falls through to STANDARD;
// CategorySplit stays defined for when that data is threaded through.
func categoryOf(shift entity.ShiftTemplate, date time.Time, holidays HolidayCalendar) (Category, error) {
	if isWeekend(date) {
		return CategoryWeekend, nil
	}
	if holidays != nil && holidays.IsHoliday(date) {
		return CategoryHoliday, nil
	}
	if shift.ShiftType == entity.ShiftEarly {
		return CategoryEarlyMorning, nil
	}
	if shift.ShiftType == entity.ShiftNight || shift.ShiftType == entity.ShiftLate {
		return CategoryLateNight, nil
	}
	return CategoryStandard, nil
}

// employeeHistory tracks an employee's running assignment counts for the
// fairness/history adjustment.
type employeeHistory struct {
	total      int
	byCategory map[Category]int
	hours      float64
}

// DistributionManager scores candidate (employee, shift, date) assignments
// and tracks running history used by the fairness term.
type DistributionManager struct {
	res      *Resources
	cfg      *Config
	holidays HolidayCalendar

	history map[uuid.UUID]*employeeHistory

	WeightFairness  float64
	WeightPreference float64
	WeightSeniority  float64
}

// NewDistributionManager builds a manager with the engine's documented
// scoring weights.
func NewDistributionManager(res *Resources, cfg *Config, holidays HolidayCalendar) *DistributionManager {
	return &DistributionManager{
		res:              res,
		cfg:              cfg,
		holidays:         holidays,
		history:          make(map[uuid.UUID]*employeeHistory),
		WeightFairness:   1.0,
		WeightPreference: 1.0,
		WeightSeniority:  0.5,
	}
}

func (m *DistributionManager) historyFor(employeeID uuid.UUID) *employeeHistory {
	h, ok := m.history[employeeID]
	if !ok {
		h = &employeeHistory{byCategory: make(map[Category]int)}
		m.history[employeeID] = h
	}
	return h
}

// Score computes the candidate's desirability score for (employee, shift,
// date): lower is preferred by the generator (least-loaded-first). The
// formula is base + fairness_adj + preference_adj + seniority_adj, per
// spec.md §4.6.
func (m *DistributionManager) Score(employee entity.Employee, shift entity.ShiftTemplate, date time.Time) (float64, error) {
	cat, err := categoryOf(shift, date, m.holidays)
	if err != nil {
		return 0, err
	}
	base := baseScore[cat]

	h := m.historyFor(employee.ID)
	fairnessAdj := 0.0
	if h.total > 0 {
		ratio := float64(h.byCategory[cat]) / float64(h.total)
		switch {
		case ratio < 0.2:
			fairnessAdj = -1.0
		case ratio > 0.4:
			fairnessAdj = 1.0
		}
	}

	preferenceAdj := 0.0
	if employee.Preferences != nil {
		if employee.Preferences.PreferredShifts[shift.ID] || employee.Preferences.PreferredDays[date.Weekday()] {
			preferenceAdj -= 2.0
		}
		if employee.Preferences.AvoidedShifts[shift.ID] || employee.Preferences.AvoidedDays[date.Weekday()] {
			preferenceAdj += 2.0
		}
	}

	// Seniority has no configuration lever yet; kept as a documented,
	// always-neutral term rather than removed outright.
	seniorityAdj := 0.0

	score := base + m.WeightFairness*fairnessAdj + m.WeightPreference*preferenceAdj + m.WeightSeniority*seniorityAdj
	return score, nil
}

// RecordAssignment updates running history after employee is assigned
// shift on date; must be called once per real assignment made.
func (m *DistributionManager) RecordAssignment(employee entity.Employee, shift entity.ShiftTemplate, date time.Time) error {
	cat, err := categoryOf(shift, date, m.holidays)
	if err != nil {
		return err
	}
	dur, err := shiftDuration(&shift)
	if err != nil {
		return err
	}
	h := m.historyFor(employee.ID)
	h.total++
	h.byCategory[cat]++
	h.hours += dur
	return nil
}
