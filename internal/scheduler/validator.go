package scheduler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/validation"
)

// CoverageSummary tallies the interval-by-interval coverage scan performed
// by Validate.
type CoverageSummary struct {
	TotalIntervals        int
	FullyCoveredIntervals int
	UnderstaffedIntervals int
	OverstaffedIntervals  int
}

// Validate re-scans a finished schedule against every rule the Generator
// enforces, plus a handful of checks that only make sense on a complete
// schedule (duplicate assignments, contracted-hours shortfall, weekend
// distribution fairness). It never mutates idx or schedule.
func Validate(res *Resources, cfg *Config, idx *ScheduleIndex, schedule *entity.Schedule) (*validation.Result, error) {
	result := validation.NewResult()

	summary, err := scanCoverage(res, cfg, idx, schedule, result)
	if err != nil {
		return nil, err
	}
	result.Add(validation.SeverityInfo, "COVERAGE_SUMMARY",
		fmt.Sprintf("%d/%d intervals fully covered (%d understaffed, %d overstaffed)",
			summary.FullyCoveredIntervals, summary.TotalIntervals, summary.UnderstaffedIntervals, summary.OverstaffedIntervals),
		map[string]interface{}{
			"total_intervals":        summary.TotalIntervals,
			"fully_covered":          summary.FullyCoveredIntervals,
			"understaffed_intervals": summary.UnderstaffedIntervals,
			"overstaffed_intervals":  summary.OverstaffedIntervals,
		})

	checkDuplicateAssignments(idx, result)

	if err := checkConstraintViolations(res, cfg, idx, result); err != nil {
		return nil, err
	}

	checkContractedHoursShortfall(res, cfg, idx, schedule, result)

	if cfg.EnforceWeekendDistribution {
		checkWeekendDistribution(res, cfg, idx, schedule, result)
	}

	return result, nil
}

func scanCoverage(res *Resources, cfg *Config, idx *ScheduleIndex, schedule *entity.Schedule, result *validation.Result) (CoverageSummary, error) {
	var summary CoverageSummary
	interval := cfg.IntervalDurationMinutes
	if interval <= 0 {
		interval = 60
	}

	for date := truncate(schedule.StartDate); !date.After(truncate(schedule.EndDate)); date = date.AddDate(0, 0, 1) {
		if !IsStoreOpen(res.Settings(), date) {
			continue
		}
		rules := res.DailyCoverage(date)

		for startMin := 0; startMin < 24*60; startMin += interval {
			demand, err := ResolveCoverage(rules, date, timeOf(startMin), interval)
			if err != nil {
				return summary, err
			}
			if demand.RuleCount == 0 {
				continue
			}
			summary.TotalIntervals++

			actual, keyholderPresent, groupsPresent := countCoveringAssignments(res, idx, date, startMin, interval)

			switch {
			case actual < demand.MinEmployees:
				summary.UnderstaffedIntervals++
				result.AddErrorWithContext(validation.CodeUnderstaffed,
					fmt.Sprintf("only %d of %d required employees covering %s on %s", actual, demand.MinEmployees, timeOf(startMin), date.Format("2006-01-02")),
					map[string]interface{}{"date": date.Format("2006-01-02"), "interval_start": timeOf(startMin)})
			case demand.MinEmployees > 0 && actual > demand.MinEmployees*3:
				summary.OverstaffedIntervals++
				result.AddInfo(validation.CodeOverstaffed,
					fmt.Sprintf("%d employees covering an interval requiring only %d on %s", actual, demand.MinEmployees, date.Format("2006-01-02")))
			default:
				summary.FullyCoveredIntervals++
			}

			if demand.RequiresKeyholder && !keyholderPresent {
				result.AddErrorWithContext(validation.CodeMissingKeyholder,
					fmt.Sprintf("no keyholder covering %s on %s", timeOf(startMin), date.Format("2006-01-02")),
					map[string]interface{}{"date": date.Format("2006-01-02"), "interval_start": timeOf(startMin)})
			}

			if len(demand.AllowedEmployeeGroups) > 0 {
				satisfied := false
				for g := range demand.AllowedEmployeeGroups {
					if groupsPresent[g] {
						satisfied = true
						break
					}
				}
				if !satisfied && demand.MinEmployees > 0 {
					result.AddWarningWithContext(validation.CodeMissingEmployeeType,
						fmt.Sprintf("no employee of an allowed group covering %s on %s", timeOf(startMin), date.Format("2006-01-02")),
						map[string]interface{}{"date": date.Format("2006-01-02"), "interval_start": timeOf(startMin)})
				}
			}
		}
	}

	return summary, nil
}

func countCoveringAssignments(res *Resources, idx *ScheduleIndex, date time.Time, intervalStartMin, intervalDurationMin int) (int, bool, map[entity.EmployeeGroup]bool) {
	count := 0
	keyholder := false
	groups := make(map[entity.EmployeeGroup]bool)

	for _, a := range idx.AllAssignments() {
		if a.IsEmpty() || !truncate(a.Date).Equal(truncate(date)) {
			continue
		}
		shift, ok := idx.shiftOf(a)
		if !ok {
			continue
		}
		overlaps, err := overlapsHHMM(shift.StartTime, shift.EndTime, timeOf(intervalStartMin), timeOf(intervalStartMin+intervalDurationMin))
		if err != nil || !overlaps {
			continue
		}
		count++
		if emp, ok := res.GetEmployee(a.EmployeeID); ok {
			groups[emp.Group] = true
			if emp.IsKeyholder {
				keyholder = true
			}
		}
	}

	return count, keyholder, groups
}

func timeOf(minutes int) string {
	m := minutes % (24 * 60)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func checkDuplicateAssignments(idx *ScheduleIndex, result *validation.Result) {
	seen := make(map[string]bool)
	for _, a := range idx.AllAssignments() {
		if a.IsEmpty() {
			continue
		}
		key := a.EmployeeID.String() + "|" + truncate(a.Date).Format("2006-01-02")
		if seen[key] {
			result.AddErrorWithContext(validation.CodeDuplicateAssignment,
				fmt.Sprintf("employee %s has more than one assignment on %s", a.EmployeeID, a.Date.Format("2006-01-02")),
				map[string]interface{}{"employee_id": a.EmployeeID.String(), "date": a.Date.Format("2006-01-02")})
		}
		seen[key] = true
	}
}

func checkConstraintViolations(res *Resources, cfg *Config, idx *ScheduleIndex, result *validation.Result) error {
	reported := make(map[string]bool)
	for _, a := range idx.AllAssignments() {
		if a.IsEmpty() {
			continue
		}
		emp, ok := res.GetEmployee(a.EmployeeID)
		if !ok {
			continue
		}
		shift, ok := idx.shiftOf(a)
		if !ok {
			continue
		}

		scratch := NewScheduleIndex(res)
		for _, other := range idx.AllAssignments() {
			if other.ID != a.ID {
				scratch.Add(other)
			}
		}

		violations, err := CheckConstraints(res, cfg, scratch, *emp, a.Date, *shift)
		if err != nil {
			return err
		}
		for _, v := range violations {
			if v == ViolationAlreadyAssigned {
				continue // duplicate-assignment check owns this one
			}
			key := a.EmployeeID.String() + "|" + v + "|" + a.Date.Format("2006-01-02")
			if reported[key] {
				continue
			}
			reported[key] = true
			result.AddWarningWithContext(validation.CodeConstraintViolation,
				ViolationMessage(v, emp.Name, a.Date),
				map[string]interface{}{"employee_id": emp.ID.String(), "date": a.Date.Format("2006-01-02"), "rule": v})
		}
	}
	return nil
}

func checkContractedHoursShortfall(res *Resources, cfg *Config, idx *ScheduleIndex, schedule *entity.Schedule, result *validation.Result) {
	weeks := float64(truncate(schedule.EndDate).Sub(truncate(schedule.StartDate)).Hours()/24+1) / 7.0
	if weeks <= 0 {
		return
	}

	for _, emp := range res.ActiveEmployees() {
		total := 0.0
		for _, a := range idx.byEmployee[emp.ID] {
			if a.IsEmpty() {
				continue
			}
			if shift, ok := idx.shiftOf(a); ok {
				if d, err := shiftDuration(shift); err == nil {
					total += d
				}
			}
		}
		expected := emp.ContractedHours * weeks
		if expected > 0 && total < expected*0.75 {
			result.AddWarningWithContext(validation.CodeContractedHoursShort,
				fmt.Sprintf("%s was scheduled %.1fh against an expected %.1fh over the period", emp.Name, total, expected),
				map[string]interface{}{"employee_id": emp.ID.String(), "scheduled_hours": total, "expected_hours": expected})
		}
	}
}

func checkWeekendDistribution(res *Resources, cfg *Config, idx *ScheduleIndex, schedule *entity.Schedule, result *validation.Result) {
	active := res.ActiveEmployees()
	if len(active) == 0 {
		return
	}

	counts := make(map[uuid.UUID]int)
	totalWeekendAssignments := 0
	for _, emp := range active {
		for _, a := range idx.byEmployee[emp.ID] {
			if a.IsEmpty() || !isWeekend(a.Date) {
				continue
			}
			counts[emp.ID]++
			totalWeekendAssignments++
		}
	}
	if totalWeekendAssignments == 0 {
		return
	}

	meanShare := 1.0 / float64(len(active))
	for _, emp := range active {
		share := float64(counts[emp.ID]) / float64(totalWeekendAssignments)
		if share-meanShare > cfg.WeekendDistributionDeviation {
			result.AddInfo(validation.CodeUnfairWeekendSplit,
				fmt.Sprintf("%s carries a disproportionate share of weekend shifts (%.0f%% of all weekend assignments)", emp.Name, share*100))
		}
	}
}
