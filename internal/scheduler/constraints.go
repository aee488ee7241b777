package scheduler

import (
	"fmt"
	"time"

	"github.com/liftform/shiftcraft/internal/entity"
)

// Violation codes returned by CheckConstraints, also reused by the
// Validator when re-scanning a finished schedule.
const (
	ViolationAlreadyAssigned  = "ALREADY_ASSIGNED"
	ViolationRestPeriod       = "REST_PERIOD"
	ViolationConsecutiveDays  = "CONSECUTIVE_DAYS"
	ViolationWeeklyHours      = "WEEKLY_HOURS"
	ViolationWeeklyShiftCount = "WEEKLY_SHIFT_COUNT"
	ViolationDailyHours       = "DAILY_HOURS"
	ViolationShiftTypeWeekCap = "SHIFT_TYPE_WEEK_CAP"
)

// CheckConstraints evaluates every hard rule for assigning employee to shift
// on date given idx's current state, returning every violated rule (empty
// when the assignment is legal). The already-assigned check always runs;
// the rest are gated by the matching Config.Enforce* flag.
func CheckConstraints(res *Resources, cfg *Config, idx *ScheduleIndex, employee entity.Employee, date time.Time, shift entity.ShiftTemplate) ([]string, error) {
	var violations []string

	if idx.HasRealAssignment(employee.ID, date) {
		violations = append(violations, ViolationAlreadyAssigned)
	}

	dailyHours, err := shiftDuration(&shift)
	if err != nil {
		return nil, err
	}

	if cfg.EnforceRestPeriods {
		if prev, ok := idx.PreviousAssignment(employee.ID, date); ok {
			if prevShift, ok := idx.shiftOf(prev); ok {
				rest, err := restHoursHHMM(prevShift.EndTime, shift.StartTime)
				if err != nil {
					return nil, err
				}
				gapDays := truncate(date).Sub(truncate(prev.Date)).Hours() / 24
				rest += (gapDays - 1) * 24
				if rest < float64(cfg.MinRestHours) {
					violations = append(violations, ViolationRestPeriod)
				}
			}
		}
	}

	if cfg.EnforceConsecutiveDays {
		run := idx.ConsecutiveDaysEndingBefore(employee.ID, date) + 1
		if run > cfg.MaxConsecutiveDays {
			violations = append(violations, ViolationConsecutiveDays)
		}
	}

	if cfg.EnforceMaxHours {
		weekly, err := idx.WeeklyHours(employee.ID, date)
		if err != nil {
			return nil, err
		}
		if weekly+dailyHours > maxHoursFor(cfg, employee.Group) {
			violations = append(violations, ViolationWeeklyHours)
		}
		if dailyHours > maxDailyHoursFor(cfg, employee.Group) {
			violations = append(violations, ViolationDailyHours)
		}
	}

	if cfg.EnforceMaxShifts {
		if idx.WeeklyShiftCount(employee.ID, date)+1 > maxShiftsFor(cfg, employee.Group) {
			violations = append(violations, ViolationWeeklyShiftCount)
		}
	}

	if cfg.EnforceEarlyLateRules {
		if idx.WeeklyShiftTypeCount(employee.ID, date, shift.ShiftType)+1 > shiftTypeWeeklyCap(cfg, shift.ShiftType) {
			violations = append(violations, ViolationShiftTypeWeekCap)
		}
	}

	return violations, nil
}

// ViolationMessage renders a human-readable explanation for a violation
// code, used by the Validator when building its result messages.
func ViolationMessage(code string, employeeName string, date time.Time) string {
	switch code {
	case ViolationAlreadyAssigned:
		return fmt.Sprintf("%s is already assigned on %s", employeeName, date.Format("2006-01-02"))
	case ViolationRestPeriod:
		return fmt.Sprintf("%s would not get the minimum rest period before %s", employeeName, date.Format("2006-01-02"))
	case ViolationConsecutiveDays:
		return fmt.Sprintf("%s would exceed the maximum consecutive working days ending %s", employeeName, date.Format("2006-01-02"))
	case ViolationWeeklyHours:
		return fmt.Sprintf("%s would exceed the weekly hour cap for their group in the week of %s", employeeName, date.Format("2006-01-02"))
	case ViolationWeeklyShiftCount:
		return fmt.Sprintf("%s would exceed the maximum shifts per week in the week of %s", employeeName, date.Format("2006-01-02"))
	case ViolationDailyHours:
		return fmt.Sprintf("%s's shift on %s exceeds the maximum daily hours for their group", employeeName, date.Format("2006-01-02"))
	case ViolationShiftTypeWeekCap:
		return fmt.Sprintf("%s would exceed the weekly cap for this shift type in the week of %s", employeeName, date.Format("2006-01-02"))
	default:
		return fmt.Sprintf("%s: constraint %s violated on %s", employeeName, code, date.Format("2006-01-02"))
	}
}
