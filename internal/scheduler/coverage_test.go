package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
)

func mondayAt(hour, min int) time.Time {
	// 2024-11-04 is a Monday.
	return time.Date(2024, 11, 4, hour, min, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestResolveCoverageFoldsMinEmployeesAsMax(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "12:00", MinEmployees: 2},
		{ID: uuid.New(), DayIndex: 0, StartTime: "09:00", EndTime: "13:00", MinEmployees: 3},
	}

	d, err := ResolveCoverage(rules, mondayAt(0, 0), "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 3, d.MinEmployees)
	assert.Equal(t, 2, d.RuleCount)
}

func TestResolveCoverageUnionsGroupsAndKeyholder(t *testing.T) {
	rules := []entity.CoverageRule{
		{
			ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "12:00", MinEmployees: 1,
			AllowedEmployeeGroups: map[entity.EmployeeGroup]bool{entity.GroupFullTime: true},
		},
		{
			ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "12:00", MinEmployees: 1,
			AllowedEmployeeGroups: map[entity.EmployeeGroup]bool{entity.GroupPartTime: true},
			RequiresKeyholder:     true,
		},
	}

	d, err := ResolveCoverage(rules, mondayAt(9, 0), "09:00", 60)
	require.NoError(t, err)
	assert.True(t, d.AllowedEmployeeGroups[entity.GroupFullTime])
	assert.True(t, d.AllowedEmployeeGroups[entity.GroupPartTime])
	assert.True(t, d.RequiresKeyholder)
}

func TestResolveCoverageKeyholderBeforeAfterIsMax(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "20:00", MinEmployees: 1, KeyholderBeforeMinutes: intPtr(15)},
		{ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "20:00", MinEmployees: 1, KeyholderBeforeMinutes: intPtr(30), KeyholderAfterMinutes: intPtr(10)},
	}

	d, err := ResolveCoverage(rules, mondayAt(9, 0), "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 30, d.KeyholderBeforeMinutes)
	assert.Equal(t, 10, d.KeyholderAfterMinutes)
}

func TestResolveCoverageIgnoresOtherDays(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 1, StartTime: "08:00", EndTime: "20:00", MinEmployees: 5},
	}

	d, err := ResolveCoverage(rules, mondayAt(9, 0), "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 0, d.MinEmployees)
	assert.Equal(t, 0, d.RuleCount)
}

func TestResolveCoverageNoOverlapOutsideWindow(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "08:00", EndTime: "09:00", MinEmployees: 5},
	}

	d, err := ResolveCoverage(rules, mondayAt(9, 0), "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 0, d.RuleCount, "half-open rule window ending at 09:00 should not cover the 09:00 interval")
}

func TestResolveCoverageOvernightRule(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "22:00", EndTime: "02:00", MinEmployees: 1},
	}

	d, err := ResolveCoverage(rules, mondayAt(23, 0), "23:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 1, d.RuleCount)
}

func TestResolveCoverageRuleStartingInsideIntervalDoesNotApply(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "09:15", EndTime: "17:00", MinEmployees: 1},
	}

	d, err := ResolveCoverage(rules, mondayAt(0, 0), "09:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 0, d.RuleCount, "a rule starting after interval_start has not started yet")
}

func TestResolveCoverageInvalidTimeErrors(t *testing.T) {
	rules := []entity.CoverageRule{
		{ID: uuid.New(), DayIndex: 0, StartTime: "bad", EndTime: "20:00", MinEmployees: 1},
	}
	_, err := ResolveCoverage(rules, mondayAt(9, 0), "09:00", 60)
	assert.Error(t, err)
}
