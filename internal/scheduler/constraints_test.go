package scheduler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
)

func mustResources(t *testing.T, shifts []entity.ShiftTemplate, employees []entity.Employee) *Resources {
	t.Helper()
	res, _, err := Load(Snapshot{ShiftTemplates: shifts, Employees: employees})
	require.NoError(t, err)
	return res
}

func TestCheckConstraintsAlreadyAssigned(t *testing.T) {
	shiftID := uuid.New()
	shift := entity.ShiftTemplate{ID: shiftID, StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle}
	res := mustResources(t, []entity.ShiftTemplate{shift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime, ContractedHours: 40}
	idx.Add(entity.Assignment{EmployeeID: emp.ID, ShiftID: &shiftID, Date: mondayAt(0, 0), Status: entity.StatusAssigned})

	v, err := CheckConstraints(res, DefaultConfig(), idx, emp, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.Contains(t, v, ViolationAlreadyAssigned)
}

func TestCheckConstraintsRestPeriodViolation(t *testing.T) {
	lateShiftID := uuid.New()
	lateShift := entity.ShiftTemplate{ID: lateShiftID, StartTime: "14:00", EndTime: "22:00", ShiftType: entity.ShiftLate}
	earlyShift := entity.ShiftTemplate{ID: uuid.New(), StartTime: "06:00", EndTime: "14:00", ShiftType: entity.ShiftEarly}
	res := mustResources(t, []entity.ShiftTemplate{lateShift, earlyShift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime, ContractedHours: 40}
	idx.Add(entity.Assignment{EmployeeID: emp.ID, ShiftID: &lateShiftID, Date: mondayAt(0, 0), Status: entity.StatusAssigned})

	tuesday := mondayAt(0, 0).AddDate(0, 0, 1)
	v, err := CheckConstraints(res, DefaultConfig(), idx, emp, tuesday, earlyShift)
	require.NoError(t, err)
	assert.Contains(t, v, ViolationRestPeriod, "22:00->06:00 is only 8 hours rest, below the 11-hour minimum")
}

func TestCheckConstraintsMaxConsecutiveDays(t *testing.T) {
	shiftID := uuid.New()
	shift := entity.ShiftTemplate{ID: shiftID, StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle}
	res := mustResources(t, []entity.ShiftTemplate{shift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime, ContractedHours: 40}
	base := mondayAt(0, 0)
	for i := 0; i < 5; i++ {
		idx.Add(entity.Assignment{EmployeeID: emp.ID, ShiftID: &shiftID, Date: base.AddDate(0, 0, i), Status: entity.StatusAssigned})
	}

	sixthDay := base.AddDate(0, 0, 5)
	v, err := CheckConstraints(res, DefaultConfig(), idx, emp, sixthDay, shift)
	require.NoError(t, err)
	assert.Contains(t, v, ViolationConsecutiveDays)
}

func TestCheckConstraintsWeeklyHoursCap(t *testing.T) {
	shiftID := uuid.New()
	shift := entity.ShiftTemplate{ID: shiftID, StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle} // 8h
	res := mustResources(t, []entity.ShiftTemplate{shift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupMiniJob, ContractedHours: 10} // cap 15h/week
	base := weekStart(mondayAt(0, 0))
	idx.Add(entity.Assignment{EmployeeID: emp.ID, ShiftID: &shiftID, Date: base, Status: entity.StatusAssigned})

	v, err := CheckConstraints(res, DefaultConfig(), idx, emp, base.AddDate(0, 0, 1), shift)
	require.NoError(t, err)
	assert.Contains(t, v, ViolationWeeklyHours, "8h already worked + 8h new = 16h > 15h mini-job cap")
}

func TestCheckConstraintsDisabledRuleIsSkipped(t *testing.T) {
	shiftID := uuid.New()
	shift := entity.ShiftTemplate{ID: shiftID, StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle}
	res := mustResources(t, []entity.ShiftTemplate{shift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupMiniJob, ContractedHours: 10}
	base := weekStart(mondayAt(0, 0))
	idx.Add(entity.Assignment{EmployeeID: emp.ID, ShiftID: &shiftID, Date: base, Status: entity.StatusAssigned})

	cfg := DefaultConfig()
	cfg.EnforceMaxHours = false
	v, err := CheckConstraints(res, cfg, idx, emp, base.AddDate(0, 0, 1), shift)
	require.NoError(t, err)
	assert.NotContains(t, v, ViolationWeeklyHours)
}

func TestCheckConstraintsLegalAssignmentHasNoViolations(t *testing.T) {
	shiftID := uuid.New()
	shift := entity.ShiftTemplate{ID: shiftID, StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftMiddle}
	res := mustResources(t, []entity.ShiftTemplate{shift}, nil)
	idx := NewScheduleIndex(res)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime, ContractedHours: 40}
	v, err := CheckConstraints(res, DefaultConfig(), idx, emp, mondayAt(0, 0), shift)
	require.NoError(t, err)
	assert.Empty(t, v)
}
