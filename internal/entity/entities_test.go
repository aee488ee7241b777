package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEmployeeSoftDelete(t *testing.T) {
	e := &Employee{
		ID:              uuid.New(),
		Name:            "Alice",
		Group:           GroupFullTime,
		ContractedHours: 40,
		IsActive:        true,
		IsKeyholder:     true,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	assert.False(t, e.IsDeleted())
	e.SoftDelete()
	assert.True(t, e.IsDeleted())
	assert.NotNil(t, e.DeletedAt)
}

func TestEmployeeGroupRank(t *testing.T) {
	assert.Equal(t, 1, GroupTeamLead.Rank())
	assert.Equal(t, 2, GroupFullTime.Rank())
	assert.Equal(t, 3, GroupPartTime.Rank())
	assert.Equal(t, 4, GroupMiniJob.Rank())
	assert.True(t, GroupTeamLead.Rank() < GroupFullTime.Rank())
}

func TestValidateEmployeeGroup(t *testing.T) {
	assert.True(t, ValidateEmployeeGroup("VZ"))
	assert.True(t, ValidateEmployeeGroup("TZ"))
	assert.True(t, ValidateEmployeeGroup("GFB"))
	assert.True(t, ValidateEmployeeGroup("TL"))
	assert.False(t, ValidateEmployeeGroup("INVALID"))
	assert.False(t, ValidateEmployeeGroup(""))
}

func TestValidateShiftType(t *testing.T) {
	assert.True(t, ValidateShiftType("EARLY"))
	assert.True(t, ValidateShiftType("MIDDLE"))
	assert.True(t, ValidateShiftType("LATE"))
	assert.True(t, ValidateShiftType("NIGHT"))
	assert.True(t, ValidateShiftType("CUSTOM"))
	assert.False(t, ValidateShiftType("INVALID"))
}

func TestShiftTemplateIsActiveOn(t *testing.T) {
	s := &ShiftTemplate{
		ID:         uuid.New(),
		StartTime:  "08:00",
		EndTime:    "16:00",
		ShiftType:  ShiftMiddle,
		ActiveDays: map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true},
	}

	assert.True(t, s.IsActiveOn(0))
	assert.False(t, s.IsActiveOn(5))
	assert.False(t, s.IsActiveOn(6))
}

func TestAbsenceCovers(t *testing.T) {
	a := &Absence{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		StartDate:  time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC),
		Reason:     "vacation",
		Approved:   true,
	}

	assert.True(t, a.Covers(time.Date(2024, 11, 7, 15, 0, 0, 0, time.UTC)))
	assert.True(t, a.Covers(time.Date(2024, 11, 6, 0, 0, 0, 0, time.UTC)))
	assert.True(t, a.Covers(time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, a.Covers(time.Date(2024, 11, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, a.Covers(time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)))
}

func TestAssignmentIsEmpty(t *testing.T) {
	shiftID := uuid.New()
	assigned := Assignment{EmployeeID: uuid.New(), ShiftID: &shiftID, Status: StatusAssigned}
	empty := Assignment{EmployeeID: uuid.New(), Status: StatusEmpty}

	assert.False(t, assigned.IsEmpty())
	assert.True(t, empty.IsEmpty())
}

func TestScheduleAddAssignment(t *testing.T) {
	sched := NewSchedule(
		time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC),
		1,
	)
	assert.Empty(t, sched.Entries)

	sched.AddAssignment(Assignment{EmployeeID: uuid.New(), Status: StatusEmpty})
	assert.Len(t, sched.Entries, 1)
}

func TestMorePermissiveOf(t *testing.T) {
	assert.Equal(t, AvailabilityFixed, MorePermissiveOf(AvailabilityFixed, AvailabilityPreferred))
	assert.Equal(t, AvailabilityPreferred, MorePermissiveOf(AvailabilityAvailable, AvailabilityPreferred))
	assert.Equal(t, AvailabilityAvailable, MorePermissiveOf(AvailabilityAvailable, AvailabilityUnavailable))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.ClosedWeekdays[time.Sunday])
	assert.False(t, s.ClosedWeekdays[time.Monday])
	assert.Equal(t, 60, s.IntervalDurationMinutes)
}
