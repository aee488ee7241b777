package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/validation"
)

// GenerationResult is the product of a Generate run: the populated schedule
// plus every recoverable issue (understaffing, missing keyholders, and the
// Validator's own findings) collected along the way.
type GenerationResult struct {
	Schedule *entity.Schedule
	Warnings *validation.Result
}

// Generate builds a schedule for [startDate, endDate] day by day, in
// calendar order, assigning employees to every active shift template per
// date using coverage resolution, availability, hard constraints, and
// distribution scoring, in that order. Processing checks ctx at each date
// boundary so a long run can be cancelled between days without discarding
// the days already committed. On success the entries are ordered by
// (date, employee ID).
func Generate(ctx context.Context, res *Resources, cfg *Config, dist *DistributionManager, startDate, endDate time.Time, version int) (*GenerationResult, error) {
	if err := entity.ValidateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	schedule := entity.NewSchedule(startDate, endDate, version)
	warnings := validation.NewResult()
	idx := NewScheduleIndex(res)

	templates := sortedTemplates(res)

	for date := truncate(startDate); !date.After(truncate(endDate)); date = date.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			warnings.AddErrorWithContext(validation.CodeGenerationCancelled, "generation cancelled before completion",
				map[string]interface{}{"last_completed_date": date.AddDate(0, 0, -1).Format("2006-01-02")})
			schedule.Status = entity.StatusDraft
			return &GenerationResult{Schedule: schedule, Warnings: warnings}, ctx.Err()
		default:
		}

		if !IsStoreOpen(res.Settings(), date) {
			continue
		}

		assignedToday := make(map[uuid.UUID]bool)

		for _, shift := range templates {
			if !shift.IsActiveOn(dayIndex(date)) {
				continue
			}
			if err := assignShiftInstance(res, cfg, dist, idx, schedule, warnings, shift, date, assignedToday, version); err != nil {
				return nil, err
			}
		}

		if cfg.CreateEmptySchedules {
			for _, emp := range res.ActiveEmployees() {
				if assignedToday[emp.ID] {
					continue
				}
				empty := entity.Assignment{
					ID:         uuid.New(),
					EmployeeID: emp.ID,
					Date:       date,
					Status:     entity.StatusEmpty,
					Version:    version,
				}
				schedule.AddAssignment(empty)
				idx.Add(empty)
			}
		}
	}

	sort.SliceStable(schedule.Entries, func(i, j int) bool {
		a, b := schedule.Entries[i], schedule.Entries[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.EmployeeID.String() < b.EmployeeID.String()
	})

	schedule.Status = entity.StatusAssigned

	validationResult, err := Validate(res, cfg, idx, schedule)
	if err != nil {
		return nil, err
	}
	warnings.AddMessages(validationResult.Messages...)

	return &GenerationResult{Schedule: schedule, Warnings: warnings}, nil
}

func sortedTemplates(res *Resources) []entity.ShiftTemplate {
	var out []entity.ShiftTemplate
	for _, s := range res.shiftsByID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func assignShiftInstance(
	res *Resources, cfg *Config, dist *DistributionManager, idx *ScheduleIndex,
	schedule *entity.Schedule, warnings *validation.Result,
	shift entity.ShiftTemplate, date time.Time, assignedToday map[uuid.UUID]bool, version int,
) error {
	durMin, err := shiftDurationMinutes(shift)
	if err != nil {
		return err
	}

	demand, err := ResolveCoverage(res.DailyCoverage(date), date, shift.StartTime, durMin)
	if err != nil {
		return err
	}
	if shift.RequiresKeyholder {
		demand.RequiresKeyholder = true
	}

	need := demand.MinEmployees
	if need == 0 && !demand.RequiresKeyholder {
		return nil
	}

	assignedCount := 0

	if demand.RequiresKeyholder {
		candidate, availType, err := pickBest(res.Keyholders(), res, cfg, idx, dist, shift, date, demand, assignedToday)
		if err != nil {
			return err
		}
		if candidate == nil {
			warnings.AddWarningWithContext(validation.CodeMissingKeyholder,
				fmt.Sprintf("no eligible keyholder available for %s shift on %s", shift.ShiftType, date.Format("2006-01-02")),
				map[string]interface{}{"date": date.Format("2006-01-02"), "shift_id": shift.ID.String()})
		} else {
			commitAssignment(idx, dist, schedule, assignedToday, *candidate, shift, date, availType, version)
			assignedCount++
		}
	}

	for assignedCount < need {
		candidate, availType, err := pickBest(res.ActiveEmployees(), res, cfg, idx, dist, shift, date, demand, assignedToday)
		if err != nil {
			return err
		}
		if candidate == nil {
			warnings.AddWarningWithContext(validation.CodeUnderstaffed,
				fmt.Sprintf("could not fill %d of %d required slots for %s shift on %s", need-assignedCount, need, shift.ShiftType, date.Format("2006-01-02")),
				map[string]interface{}{"date": date.Format("2006-01-02"), "shift_id": shift.ID.String(), "missing": need - assignedCount})
			break
		}
		commitAssignment(idx, dist, schedule, assignedToday, *candidate, shift, date, availType, version)
		assignedCount++
	}

	return nil
}

// pickBest scans candidates in their existing deterministic order and
// returns whichever eligible, available, constraint-satisfying employee has
// the lowest distribution score (ties broken by employee ID), or nil if
// none qualify.
func pickBest(
	candidates []entity.Employee, res *Resources, cfg *Config, idx *ScheduleIndex, dist *DistributionManager,
	shift entity.ShiftTemplate, date time.Time, demand Demand, assignedToday map[uuid.UUID]bool,
) (*entity.Employee, entity.AvailabilityType, error) {
	var best *entity.Employee
	var bestScore float64
	var bestType entity.AvailabilityType

	for i := range candidates {
		c := candidates[i]
		if assignedToday[c.ID] {
			continue
		}
		if len(demand.AllowedEmployeeGroups) > 0 && !demand.AllowedEmployeeGroups[c.Group] {
			continue
		}
		if len(demand.EmployeeTypes) > 0 && !demand.EmployeeTypes[c.Group] {
			continue
		}

		availType := entity.AvailabilityAvailable
		if cfg.EnforceAvailability {
			result, err := CheckAvailability(res, c.ID, date, shift)
			if err != nil {
				return nil, "", err
			}
			if !result.Available {
				continue
			}
			availType = result.Type
		}

		violations, err := CheckConstraints(res, cfg, idx, c, date, shift)
		if err != nil {
			return nil, "", err
		}
		if len(violations) > 0 {
			continue
		}

		score, err := dist.Score(c, shift, date)
		if err != nil {
			return nil, "", err
		}

		if best == nil || score < bestScore || (score == bestScore && c.ID.String() < best.ID.String()) {
			cc := c
			best = &cc
			bestScore = score
			bestType = availType
		}
	}

	return best, bestType, nil
}

func commitAssignment(
	idx *ScheduleIndex, dist *DistributionManager, schedule *entity.Schedule, assignedToday map[uuid.UUID]bool,
	employee entity.Employee, shift entity.ShiftTemplate, date time.Time, availType entity.AvailabilityType, version int,
) {
	shiftID := shift.ID
	startTime, endTime := shift.StartTime, shift.EndTime
	a := entity.Assignment{
		ID:               uuid.New(),
		EmployeeID:       employee.ID,
		ShiftID:          &shiftID,
		Date:             date,
		Status:           entity.StatusAssigned,
		Version:          version,
		StartTime:        &startTime,
		EndTime:          &endTime,
		AvailabilityType: &availType,
	}
	schedule.AddAssignment(a)
	idx.Add(a)
	assignedToday[employee.ID] = true
	_ = dist.RecordAssignment(employee, shift, date)
}

func shiftDurationMinutes(shift entity.ShiftTemplate) (int, error) {
	startMin, err := minutesOf(shift.StartTime)
	if err != nil {
		return 0, err
	}
	endMin, err := minutesOf(shift.EndTime)
	if err != nil {
		return 0, err
	}
	if endMin <= startMin {
		endMin += 24 * 60
	}
	return endMin - startMin, nil
}
