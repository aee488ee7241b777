package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository/memory"
	"github.com/liftform/shiftcraft/internal/scheduler"
	"github.com/liftform/shiftcraft/internal/service"
)

func seedDatabase(t *testing.T) *memory.Database {
	t.Helper()
	db := memory.NewDatabase()
	ctx := context.Background()

	employee := &entity.Employee{
		Name:            "Jordan Reyes",
		Group:           entity.GroupFullTime,
		ContractedHours: 40,
		IsActive:        true,
		IsKeyholder:     true,
	}
	require.NoError(t, db.EmployeeRepository().Create(ctx, employee))

	shift := &entity.ShiftTemplate{
		StartTime:  "08:00",
		EndTime:    "16:00",
		ShiftType:  entity.ShiftEarly,
		ActiveDays: map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true},
	}
	require.NoError(t, db.ShiftTemplateRepository().Create(ctx, shift))

	rule := &entity.CoverageRule{
		DayIndex:     0,
		StartTime:    "08:00",
		EndTime:      "16:00",
		MinEmployees: 1,
	}
	require.NoError(t, db.CoverageRuleRepository().Create(ctx, rule))

	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			require.NoError(t, db.EmployeeAvailabilityRepository().Upsert(ctx, &entity.EmployeeAvailability{
				EmployeeID:  employee.ID,
				DayOfWeek:   day,
				Hour:        hour,
				IsAvailable: true,
				Type:        entity.AvailabilityAvailable,
			}))
		}
	}

	return db
}

func TestScheduleService_Generate(t *testing.T) {
	db := seedDatabase(t)
	svc := service.NewScheduleService(db, scheduler.DefaultConfig(), nil)

	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC) // Monday
	end := start.AddDate(0, 0, 6)

	result, err := svc.Generate(context.Background(), start, end)
	require.NoError(t, err)
	require.NotNil(t, result.Schedule)
	assert.Equal(t, 1, result.Schedule.Version)
	assert.NotEmpty(t, result.Schedule.Entries)

	stored, err := db.ScheduleRepository().GetByID(context.Background(), result.Schedule.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Schedule.ID, stored.ID)
}

func TestScheduleService_Generate_VersionsIncrement(t *testing.T) {
	db := seedDatabase(t)
	svc := service.NewScheduleService(db, scheduler.DefaultConfig(), nil)

	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	first, err := svc.Generate(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Schedule.Version)

	second, err := svc.Generate(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Schedule.Version)
}

func TestScheduleService_Validate(t *testing.T) {
	db := seedDatabase(t)
	svc := service.NewScheduleService(db, scheduler.DefaultConfig(), nil)

	start := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)

	result, err := svc.Generate(context.Background(), start, end)
	require.NoError(t, err)

	validation, err := svc.Validate(context.Background(), result.Schedule.ID)
	require.NoError(t, err)
	assert.NotNil(t, validation)
}
