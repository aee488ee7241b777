package scheduler

import (
	"time"

	"github.com/liftform/shiftcraft/internal/entity"
)

// Config enumerates every rule toggle and tunable threshold of the engine.
// All enforce_* flags default to true; numeric defaults mirror
// spec.md §4.5/§4.6/§6 exactly. EnforceMinCoverage, EnforceContractedHours,
// EnforceKeyholder and EnforceBreakRules are carried but not read: the
// coverage, keyholder and contracted-hours checks always run, and no
// break-rule check exists.
type Config struct {
	EnforceMinCoverage         bool
	EnforceContractedHours     bool
	EnforceKeyholder           bool
	EnforceRestPeriods         bool
	EnforceMaxShifts           bool
	EnforceMaxHours            bool
	EnforceConsecutiveDays     bool
	EnforceWeekendDistribution bool
	EnforceEarlyLateRules      bool
	EnforceBreakRules          bool
	EnforceAvailability        bool

	MinRestHours       int
	MaxConsecutiveDays int

	MaxHoursPerGroup      map[entity.EmployeeGroup]float64
	MaxShiftsPerGroup     map[entity.EmployeeGroup]int
	MaxDailyHoursPerGroup map[entity.EmployeeGroup]float64
	ShiftTypeWeeklyCap    map[entity.ShiftType]int

	IntervalDurationMinutes int
	CreateEmptySchedules    bool

	// WeekendDistributionDeviation is the supplemental fairness check's
	// tolerance: an employee whose share of weekend assignments exceeds
	// the team mean share by more than this is flagged (severity info).
	// Shares below the mean are not flagged.
	WeekendDistributionDeviation float64
}

// DefaultConfig returns the engine's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		EnforceMinCoverage:         true,
		EnforceContractedHours:     true,
		EnforceKeyholder:           true,
		EnforceRestPeriods:         true,
		EnforceMaxShifts:           true,
		EnforceMaxHours:            true,
		EnforceConsecutiveDays:     true,
		EnforceWeekendDistribution: true,
		EnforceEarlyLateRules:      true,
		EnforceBreakRules:          true,
		EnforceAvailability:        true,

		MinRestHours:       11,
		MaxConsecutiveDays: 5,

		MaxHoursPerGroup: map[entity.EmployeeGroup]float64{
			entity.GroupFullTime: 40,
			entity.GroupTeamLead: 40,
			entity.GroupPartTime: 30,
			entity.GroupMiniJob:  15,
		},
		MaxShiftsPerGroup: map[entity.EmployeeGroup]int{
			entity.GroupFullTime: 5,
			entity.GroupTeamLead: 5,
			entity.GroupPartTime: 4,
			entity.GroupMiniJob:  3,
		},
		MaxDailyHoursPerGroup: map[entity.EmployeeGroup]float64{
			entity.GroupFullTime: 8,
			entity.GroupTeamLead: 8,
			entity.GroupPartTime: 8,
			entity.GroupMiniJob:  6,
		},
		ShiftTypeWeeklyCap: map[entity.ShiftType]int{
			entity.ShiftEarly:  5,
			entity.ShiftMiddle: 5,
			entity.ShiftLate:   4,
			entity.ShiftNight:  3,
		},

		IntervalDurationMinutes:      60,
		CreateEmptySchedules:         false,
		WeekendDistributionDeviation: 0.15,
	}
}

// IsStoreOpen reports whether the store operates on the given date. Open
// question #2 (spec.md §9): this reads Settings.ClosedWeekdays rather than
// hard-coding Sunday, defaulting to Sunday-closed via
// entity.DefaultSettings.
func IsStoreOpen(settings *entity.Settings, date time.Time) bool {
	if settings == nil {
		return date.Weekday() != time.Sunday
	}
	return !settings.ClosedWeekdays[date.Weekday()]
}

func maxHoursFor(cfg *Config, group entity.EmployeeGroup) float64 {
	if v, ok := cfg.MaxHoursPerGroup[group]; ok {
		return v
	}
	return 40
}

func maxShiftsFor(cfg *Config, group entity.EmployeeGroup) int {
	if v, ok := cfg.MaxShiftsPerGroup[group]; ok {
		return v
	}
	return 5
}

func maxDailyHoursFor(cfg *Config, group entity.EmployeeGroup) float64 {
	if v, ok := cfg.MaxDailyHoursPerGroup[group]; ok {
		return v
	}
	return 8
}

func shiftTypeWeeklyCap(cfg *Config, st entity.ShiftType) int {
	if v, ok := cfg.ShiftTypeWeeklyCap[st]; ok {
		return v
	}
	return 5
}
