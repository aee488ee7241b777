// Package service wires the scheduler engine to a repository.Database,
// loading resources, running a generation or validation pass, and
// persisting the result. It owns no scheduling logic of its own — that
// stays in internal/scheduler — only the orchestration around it.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
	"github.com/liftform/shiftcraft/internal/scheduler"
	"github.com/liftform/shiftcraft/internal/validation"
)

// GenerationResult is what a caller gets back from a generation run: the
// persisted schedule, the engine's own findings, and any non-fatal
// warnings Resources.Load produced while indexing the snapshot.
type GenerationResult struct {
	Schedule     *entity.Schedule
	Warnings     *validation.Result
	LoadWarnings []string
}

// ScheduleService generates and validates schedules against whatever
// repository.Database it was built with.
type ScheduleService interface {
	Generate(ctx context.Context, startDate, endDate time.Time) (*GenerationResult, error)
	Validate(ctx context.Context, scheduleID uuid.UUID) (*validation.Result, error)
}

type scheduleService struct {
	db       repository.Database
	cfg      *scheduler.Config
	holidays scheduler.HolidayCalendar
}

// NewScheduleService builds a ScheduleService over db. A nil cfg falls back
// to scheduler.DefaultConfig; a nil holidays calendar falls back to one with
// no holidays configured.
func NewScheduleService(db repository.Database, cfg *scheduler.Config, holidays scheduler.HolidayCalendar) ScheduleService {
	if cfg == nil {
		cfg = scheduler.DefaultConfig()
	}
	if holidays == nil {
		holidays = scheduler.NewStaticHolidayCalendar(nil)
	}
	return &scheduleService{db: db, cfg: cfg, holidays: holidays}
}

// Generate loads every resource needed for [startDate, endDate], runs the
// engine, and persists the resulting schedule at the next version number
// for that exact date range.
func (s *scheduleService) Generate(ctx context.Context, startDate, endDate time.Time) (*GenerationResult, error) {
	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	res, loadWarnings, err := scheduler.Load(*snap)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}

	version, err := s.nextVersion(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	dist := scheduler.NewDistributionManager(res, s.cfg, s.holidays)
	result, err := scheduler.Generate(ctx, res, s.cfg, dist, startDate, endDate, version)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	if err := s.db.ScheduleRepository().Create(ctx, result.Schedule); err != nil {
		return nil, fmt.Errorf("failed to persist generated schedule: %w", err)
	}

	return &GenerationResult{
		Schedule:     result.Schedule,
		Warnings:     result.Warnings,
		LoadWarnings: loadWarnings,
	}, nil
}

// Validate re-runs the engine's validation pass against an already
// generated schedule, rebuilding the index from its stored assignments.
func (s *scheduleService) Validate(ctx context.Context, scheduleID uuid.UUID) (*validation.Result, error) {
	schedule, err := s.db.ScheduleRepository().GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	res, _, err := scheduler.Load(*snap)
	if err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}

	idx := scheduler.NewScheduleIndex(res)
	for _, a := range schedule.Entries {
		idx.Add(a)
	}

	result, err := scheduler.Validate(res, s.cfg, idx, schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to validate schedule: %w", err)
	}
	return result, nil
}

func (s *scheduleService) nextVersion(ctx context.Context, startDate, endDate time.Time) (int, error) {
	latest, err := s.db.ScheduleRepository().GetLatestVersion(ctx, startDate, endDate)
	if repository.IsNotFound(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up latest schedule version: %w", err)
	}
	return latest.Version + 1, nil
}

func (s *scheduleService) loadSnapshot(ctx context.Context) (*scheduler.Snapshot, error) {
	employees, err := s.db.EmployeeRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	shifts, err := s.db.ShiftTemplateRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift templates: %w", err)
	}
	coverage, err := s.db.CoverageRuleRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load coverage rules: %w", err)
	}

	var absences []entity.Absence
	var availability []entity.EmployeeAvailability
	for _, e := range employees {
		empAbsences, err := s.db.AbsenceRepository().GetByEmployee(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load absences for employee %s: %w", e.ID, err)
		}
		for _, a := range empAbsences {
			absences = append(absences, *a)
		}

		empAvailability, err := s.db.EmployeeAvailabilityRepository().GetByEmployee(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load availability for employee %s: %w", e.ID, err)
		}
		for _, a := range empAvailability {
			availability = append(availability, *a)
		}
	}

	return &scheduler.Snapshot{
		Settings:       entity.DefaultSettings(),
		Employees:      derefEmployees(employees),
		ShiftTemplates: derefShiftTemplates(shifts),
		Coverage:       derefCoverageRules(coverage),
		Absences:       absences,
		Availability:   availability,
	}, nil
}

func derefEmployees(in []*entity.Employee) []entity.Employee {
	out := make([]entity.Employee, len(in))
	for i, e := range in {
		out[i] = *e
	}
	return out
}

func derefShiftTemplates(in []*entity.ShiftTemplate) []entity.ShiftTemplate {
	out := make([]entity.ShiftTemplate, len(in))
	for i, s := range in {
		out[i] = *s
	}
	return out
}

func derefCoverageRules(in []*entity.CoverageRule) []entity.CoverageRule {
	out := make([]entity.CoverageRule, len(in))
	for i, c := range in {
		out[i] = *c
	}
	return out
}
