package scheduler

import (
	"time"

	"github.com/liftform/shiftcraft/internal/entity"
)

// Demand is the folded staffing requirement for one interval, produced by
// ResolveCoverage from every CoverageRule that applies to it.
type Demand struct {
	MinEmployees          int
	EmployeeTypes         map[entity.EmployeeGroup]bool
	AllowedEmployeeGroups map[entity.EmployeeGroup]bool
	RequiresKeyholder     bool
	KeyholderBeforeMinutes int
	KeyholderAfterMinutes  int
	RuleCount              int
}

// ResolveCoverage folds every coverage rule active on date that applies to
// intervalStart (rule.start_time <= interval_start < rule.end_time) into a
// single Demand:
//   - min_employees: max across applicable rules
//   - employee_types / allowed_employee_groups: union
//   - requires_keyholder: true if any applicable rule requires it
//   - keyholder_before/after: max across applicable rules that set it
//
// An interval with no applicable rule returns a zero Demand (RuleCount 0),
// meaning "unstaffed" rather than "closed" — callers distinguish via
// IsStoreOpen. durationMinutes is accepted for callers that scan on a fixed
// interval width but does not affect which rules apply: applicability is a
// point test on intervalStart only.
func ResolveCoverage(rules []entity.CoverageRule, date time.Time, intervalStart string, durationMinutes int) (Demand, error) {
	startMin, err := minutesOf(intervalStart)
	if err != nil {
		return Demand{}, err
	}

	d := Demand{
		EmployeeTypes:         map[entity.EmployeeGroup]bool{},
		AllowedEmployeeGroups: map[entity.EmployeeGroup]bool{},
	}

	for _, rule := range rules {
		if rule.DayIndex != dayIndex(date) {
			continue
		}
		applies, err := ruleAppliesAtStart(rule, startMin)
		if err != nil {
			return Demand{}, err
		}
		if !applies {
			continue
		}

		d.RuleCount++
		if rule.MinEmployees > d.MinEmployees {
			d.MinEmployees = rule.MinEmployees
		}
		for g := range rule.EmployeeTypes {
			d.EmployeeTypes[g] = true
		}
		for g := range rule.AllowedEmployeeGroups {
			d.AllowedEmployeeGroups[g] = true
		}
		if rule.RequiresKeyholder {
			d.RequiresKeyholder = true
		}
		if rule.KeyholderBeforeMinutes != nil && *rule.KeyholderBeforeMinutes > d.KeyholderBeforeMinutes {
			d.KeyholderBeforeMinutes = *rule.KeyholderBeforeMinutes
		}
		if rule.KeyholderAfterMinutes != nil && *rule.KeyholderAfterMinutes > d.KeyholderAfterMinutes {
			d.KeyholderAfterMinutes = *rule.KeyholderAfterMinutes
		}
	}

	return d, nil
}

// ruleAppliesAtStart is the half-open point test rule.start_time <=
// interval_start < rule.end_time, not a symmetric overlap test: a rule
// starting strictly inside the scanned interval does not apply to it.
func ruleAppliesAtStart(rule entity.CoverageRule, intervalStartMin int) (bool, error) {
	ruleStart, err := minutesOf(rule.StartTime)
	if err != nil {
		return false, err
	}
	ruleEnd, err := minutesOf(rule.EndTime)
	if err != nil {
		return false, err
	}
	if ruleEnd <= ruleStart {
		ruleEnd += 24 * 60
	}
	return ruleStart <= intervalStartMin && intervalStartMin < ruleEnd, nil
}
