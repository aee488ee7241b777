package scheduler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
)

func baseResources(t *testing.T, avail []entity.EmployeeAvailability, absences []entity.Absence) *Resources {
	t.Helper()
	res, _, err := Load(Snapshot{
		ShiftTemplates: []entity.ShiftTemplate{{ID: uuid.New(), StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle}},
		Availability:   avail,
		Absences:       absences,
	})
	require.NoError(t, err)
	return res
}

func TestCheckAvailabilityDefaultsToAvailable(t *testing.T) {
	res := baseResources(t, nil, nil)
	empID := uuid.New()
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "12:00", ShiftType: entity.ShiftEarly}

	r, err := CheckAvailability(res, empID, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.True(t, r.Available)
	assert.Equal(t, entity.AvailabilityAvailable, r.Type)
}

func TestCheckAvailabilityUnavailableHourBlocks(t *testing.T) {
	empID := uuid.New()
	res := baseResources(t, []entity.EmployeeAvailability{
		{EmployeeID: empID, DayOfWeek: 0, Hour: 9, IsAvailable: false, Type: entity.AvailabilityUnavailable},
	}, nil)
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "12:00", ShiftType: entity.ShiftEarly}

	r, err := CheckAvailability(res, empID, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.False(t, r.Available)
}

func TestCheckAvailabilityFixedBeatsAvailable(t *testing.T) {
	empID := uuid.New()
	res := baseResources(t, []entity.EmployeeAvailability{
		{EmployeeID: empID, DayOfWeek: 0, Hour: 8, IsAvailable: true, Type: entity.AvailabilityFixed},
	}, nil)
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "10:00", ShiftType: entity.ShiftEarly}

	r, err := CheckAvailability(res, empID, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.True(t, r.Available)
	assert.Equal(t, entity.AvailabilityFixed, r.Type)
}

func TestCheckAvailabilityOvernightSplitsAcrossDays(t *testing.T) {
	empID := uuid.New()
	// Night shift 22:00-06:00 on Monday touches Monday hour 22,23 and
	// Tuesday hours 0..5. Mark Tuesday hour 3 unavailable.
	res := baseResources(t, []entity.EmployeeAvailability{
		{EmployeeID: empID, DayOfWeek: 1, Hour: 3, IsAvailable: false, Type: entity.AvailabilityUnavailable},
	}, nil)
	shift := entity.ShiftTemplate{StartTime: "22:00", EndTime: "06:00", ShiftType: entity.ShiftNight}

	r, err := CheckAvailability(res, empID, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.False(t, r.Available)
}

func TestCheckAvailabilityApprovedAbsenceBlocks(t *testing.T) {
	empID := uuid.New()
	res := baseResources(t, nil, []entity.Absence{
		{ID: uuid.New(), EmployeeID: empID, StartDate: mondayAt(0, 0), EndDate: mondayAt(0, 0), Approved: true},
	})
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "12:00", ShiftType: entity.ShiftEarly}

	r, err := CheckAvailability(res, empID, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.False(t, r.Available)
}
