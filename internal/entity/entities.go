package entity

import (
	"time"

	"github.com/google/uuid"
)

// Type aliases for domain IDs and temporal types
type (
	EmployeeID   = uuid.UUID
	ShiftID      = uuid.UUID
	CoverageID   = uuid.UUID
	AbsenceID    = uuid.UUID
	AssignmentID = uuid.UUID
	ScheduleID   = uuid.UUID
	Date         = time.Time
)

// Now returns the current UTC timestamp.
func Now() time.Time {
	return time.Now().UTC()
}

// NowPtr returns a pointer to the current UTC timestamp.
func NowPtr() *time.Time {
	now := time.Now().UTC()
	return &now
}

// EmployeeGroup classifies an employee's contract type.
type EmployeeGroup string

const (
	GroupFullTime EmployeeGroup = "VZ"  // full-time
	GroupPartTime EmployeeGroup = "TZ"  // part-time
	GroupMiniJob  EmployeeGroup = "GFB" // geringfuegige Beschaeftigung / mini-job
	GroupTeamLead EmployeeGroup = "TL"  // team lead
)

// Rank returns the priority ordering used to sort active employees:
// team leads first, then full-time, part-time, mini-job.
func (g EmployeeGroup) Rank() int {
	switch g {
	case GroupTeamLead:
		return 1
	case GroupFullTime:
		return 2
	case GroupPartTime:
		return 3
	case GroupMiniJob:
		return 4
	default:
		return 5
	}
}

// ValidateEmployeeGroup reports whether g is a known group tag.
func ValidateEmployeeGroup(g string) bool {
	switch EmployeeGroup(g) {
	case GroupFullTime, GroupPartTime, GroupMiniJob, GroupTeamLead:
		return true
	default:
		return false
	}
}

// EmployeePreferences captures soft scheduling preferences used by the
// distribution manager's scoring (never a hard constraint).
type EmployeePreferences struct {
	PreferredDays   map[time.Weekday]bool
	AvoidedDays     map[time.Weekday]bool
	PreferredShifts map[ShiftID]bool
	AvoidedShifts   map[ShiftID]bool
}

// Employee represents a staff member eligible for shift assignment.
type Employee struct {
	ID              uuid.UUID
	Name            string
	Group           EmployeeGroup
	ContractedHours float64
	IsActive        bool
	IsKeyholder     bool
	Preferences     *EmployeePreferences
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// IsDeleted reports whether the employee is soft-deleted.
func (e *Employee) IsDeleted() bool {
	return e.DeletedAt != nil
}

// SoftDelete marks an employee as deleted without removing data.
func (e *Employee) SoftDelete() {
	e.DeletedAt = NowPtr()
}

// ShiftType classifies a shift template by time of day.
type ShiftType string

const (
	ShiftEarly  ShiftType = "EARLY"
	ShiftMiddle ShiftType = "MIDDLE"
	ShiftLate   ShiftType = "LATE"
	ShiftNight  ShiftType = "NIGHT"
	ShiftCustom ShiftType = "CUSTOM"
)

// ValidateShiftType reports whether t is a known shift type tag.
func ValidateShiftType(t string) bool {
	switch ShiftType(t) {
	case ShiftEarly, ShiftMiddle, ShiftLate, ShiftNight, ShiftCustom:
		return true
	default:
		return false
	}
}

// ShiftTemplate is a recurring time window with weekday activation.
// Instances of a template are materialized per calendar date by the
// Generator.
type ShiftTemplate struct {
	ID                uuid.UUID
	StartTime         string // "HH:MM"
	EndTime           string // "HH:MM"; EndTime <= StartTime means overnight
	ShiftType         ShiftType
	RequiresBreak     bool
	ActiveDays        map[int]bool // 0=Monday .. 6=Sunday
	RequiresKeyholder bool
	CreatedAt         time.Time
}

// IsActiveOn reports whether the template is scheduled to run on the given
// ISO weekday index (0=Monday..6=Sunday).
func (s *ShiftTemplate) IsActiveOn(dayIndex int) bool {
	return s.ActiveDays[dayIndex]
}

// CoverageRule expresses a staffing demand over a weekday-local time window.
// Multiple rules may overlap on the same day; CoverageResolver folds them.
type CoverageRule struct {
	ID                     uuid.UUID
	DayIndex               int // 0=Monday .. 6=Sunday
	StartTime              string
	EndTime                string
	MinEmployees           int
	MaxEmployees           *int
	EmployeeTypes          map[EmployeeGroup]bool
	AllowedEmployeeGroups  map[EmployeeGroup]bool
	RequiresKeyholder      bool
	KeyholderBeforeMinutes *int
	KeyholderAfterMinutes  *int
}

// AvailabilityType ranks how strongly an employee is available for an hour.
type AvailabilityType string

const (
	AvailabilityFixed      AvailabilityType = "FIXED"
	AvailabilityPreferred  AvailabilityType = "PREFERRED"
	AvailabilityAvailable  AvailabilityType = "AVAILABLE"
	AvailabilityUnavailable AvailabilityType = "UNAVAILABLE"
)

// precedence returns a lower-is-better rank so AvailabilityChecker can pick
// the most permissive type seen across an interval's hours.
func (a AvailabilityType) precedence() int {
	switch a {
	case AvailabilityFixed:
		return 0
	case AvailabilityPreferred:
		return 1
	case AvailabilityAvailable:
		return 2
	default:
		return 3
	}
}

// MorePermissiveOf returns whichever of a, b ranks higher in the
// FIXED > PREFERRED > AVAILABLE precedence order.
func MorePermissiveOf(a, b AvailabilityType) AvailabilityType {
	if a.precedence() <= b.precedence() {
		return a
	}
	return b
}

// EmployeeAvailability records whether an employee can work a specific hour
// of a specific weekday.
type EmployeeAvailability struct {
	EmployeeID  uuid.UUID
	DayOfWeek   int // 0=Monday .. 6=Sunday
	Hour        int // 0..23
	IsAvailable bool
	Type        AvailabilityType
}

// Absence is an approved or pending leave window, inclusive on both ends.
type Absence struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Approved   bool
}

// Covers reports whether the absence window includes the given date.
func (a *Absence) Covers(date time.Time) bool {
	d := truncateDate(date)
	start := truncateDate(a.StartDate)
	end := truncateDate(a.EndDate)
	return !d.Before(start) && !d.After(end)
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AssignmentStatus is the lifecycle state of a single assignment entry.
type AssignmentStatus string

const (
	StatusDraft     AssignmentStatus = "DRAFT"
	StatusPending   AssignmentStatus = "PENDING"
	StatusAssigned  AssignmentStatus = "ASSIGNED"
	StatusConfirmed AssignmentStatus = "CONFIRMED"
	StatusCancelled AssignmentStatus = "CANCELLED"
	StatusEmpty     AssignmentStatus = "EMPTY"
)

// Assignment maps an employee to a shift on a date. A nil ShiftID marks an
// EMPTY placeholder entry (no shift, present so consumers can render every
// employee x day cell).
type Assignment struct {
	ID               uuid.UUID
	EmployeeID       uuid.UUID
	ShiftID          *uuid.UUID
	Date             time.Time
	Status           AssignmentStatus
	Version          int
	StartTime        *string
	EndTime          *string
	BreakStart       *string
	BreakEnd         *string
	AvailabilityType *AvailabilityType
}

// IsEmpty reports whether this is an EMPTY placeholder entry.
func (a *Assignment) IsEmpty() bool {
	return a.ShiftID == nil || a.Status == StatusEmpty
}

// Schedule owns the vector of assignments produced for one
// (start_date, end_date, version) generation run.
type Schedule struct {
	ID        uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Status    AssignmentStatus
	Version   int
	Entries   []Assignment
}

// NewSchedule creates an empty schedule shell for a date range and version.
func NewSchedule(startDate, endDate time.Time, version int) *Schedule {
	return &Schedule{
		ID:        uuid.New(),
		StartDate: startDate,
		EndDate:   endDate,
		Status:    StatusDraft,
		Version:   version,
	}
}

// AddAssignment appends an assignment entry owned by this schedule.
func (s *Schedule) AddAssignment(a Assignment) {
	s.Entries = append(s.Entries, a)
}

// Settings holds store-level configuration read alongside the other
// resources (spec.md's "settings" entity).
type Settings struct {
	ClosedWeekdays          map[time.Weekday]bool
	IntervalDurationMinutes int
}

// DefaultSettings returns the engine's documented defaults: Sunday closed,
// 60-minute coverage-check interval.
func DefaultSettings() *Settings {
	return &Settings{
		ClosedWeekdays:          map[time.Weekday]bool{time.Sunday: true},
		IntervalDurationMinutes: 60,
	}
}
