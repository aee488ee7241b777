package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
)

func TestCategoryOfWeekendBeatsShiftType(t *testing.T) {
	saturday := mondayAt(0, 0).AddDate(0, 0, 5)
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "16:00", ShiftType: entity.ShiftEarly}
	cat, err := categoryOf(shift, saturday, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryWeekend, cat)
}

func TestCategoryOfHoliday(t *testing.T) {
	day := mondayAt(0, 0)
	holidays := NewStaticHolidayCalendar([]time.Time{day})
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "13:00", ShiftType: entity.ShiftMiddle}

	cat, err := categoryOf(shift, day, holidays)
	require.NoError(t, err)
	assert.Equal(t, CategoryHoliday, cat)
}

func TestCategoryOfEarlyAndLateAndStandard(t *testing.T) {
	day := mondayAt(0, 0) // Monday, never weekend/holiday

	early := entity.ShiftTemplate{StartTime: "06:00", EndTime: "14:00", ShiftType: entity.ShiftEarly}
	cat, err := categoryOf(early, day, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryEarlyMorning, cat)

	night := entity.ShiftTemplate{StartTime: "22:00", EndTime: "06:00", ShiftType: entity.ShiftNight}
	cat, err = categoryOf(night, day, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryLateNight, cat)

	standard := entity.ShiftTemplate{StartTime: "08:00", EndTime: "13:00", ShiftType: entity.ShiftMiddle}
	cat, err = categoryOf(standard, day, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryStandard, cat)
}

// A long RequiresBreak middle shift is still STANDARD: requires_break is
// mandatory on every template over 6 hours, so it cannot by itself signal
// SPLIT without the assignment's actual break window.
func TestCategoryOfLongBreakShiftIsNotMisclassifiedAsSplit(t *testing.T) {
	day := mondayAt(0, 0)
	shift := entity.ShiftTemplate{StartTime: "08:00", EndTime: "18:00", ShiftType: entity.ShiftMiddle, RequiresBreak: true}
	cat, err := categoryOf(shift, day, nil)
	require.NoError(t, err)
	assert.Equal(t, CategoryStandard, cat)
}

func TestScoreAppliesPreferenceAdjustment(t *testing.T) {
	res := mustResources(t, []entity.ShiftTemplate{{ID: uuid.New(), StartTime: "08:00", EndTime: "16:00"}}, nil)
	mgr := NewDistributionManager(res, DefaultConfig(), nil)

	shift := entity.ShiftTemplate{ID: uuid.New(), StartTime: "08:00", EndTime: "13:00", ShiftType: entity.ShiftMiddle}
	day := mondayAt(0, 0)

	plain := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime}
	plainScore, err := mgr.Score(plain, shift, day)
	require.NoError(t, err)

	preferring := entity.Employee{
		ID:    uuid.New(),
		Group: entity.GroupFullTime,
		Preferences: &entity.EmployeePreferences{
			PreferredShifts: map[uuid.UUID]bool{shift.ID: true},
		},
	}
	preferredScore, err := mgr.Score(preferring, shift, day)
	require.NoError(t, err)

	assert.Less(t, preferredScore, plainScore)
}

func TestScoreFairnessAdjustmentPenalizesOverrepresentation(t *testing.T) {
	res := mustResources(t, []entity.ShiftTemplate{{ID: uuid.New(), StartTime: "08:00", EndTime: "16:00"}}, nil)
	mgr := NewDistributionManager(res, DefaultConfig(), nil)

	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime}
	weekend := entity.ShiftTemplate{ID: uuid.New(), StartTime: "08:00", EndTime: "13:00", ShiftType: entity.ShiftMiddle}
	saturday := mondayAt(0, 0).AddDate(0, 0, 5)

	before, err := mgr.Score(emp, weekend, saturday)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, mgr.RecordAssignment(emp, weekend, saturday))
	}

	after, err := mgr.Score(emp, weekend, saturday)
	require.NoError(t, err)
	assert.Greater(t, after, before, "heavy weekend history should raise the weekend score")
}

func TestRecordAssignmentUpdatesHistory(t *testing.T) {
	res := mustResources(t, []entity.ShiftTemplate{{ID: uuid.New(), StartTime: "08:00", EndTime: "16:00"}}, nil)
	mgr := NewDistributionManager(res, DefaultConfig(), nil)
	emp := entity.Employee{ID: uuid.New(), Group: entity.GroupFullTime}
	shift := entity.ShiftTemplate{ID: uuid.New(), StartTime: "08:00", EndTime: "13:00", ShiftType: entity.ShiftMiddle}

	require.NoError(t, mgr.RecordAssignment(emp, shift, mondayAt(0, 0)))
	h := mgr.historyFor(emp.ID)
	assert.Equal(t, 1, h.total)
	assert.Equal(t, 5.0, h.hours)
}
