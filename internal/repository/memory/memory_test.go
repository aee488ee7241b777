package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

func TestEmployeeRepository_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	repo := db.EmployeeRepository()

	emp := &entity.Employee{Name: "Alex", Group: entity.GroupFullTime, ContractedHours: 40, IsActive: true}
	require.NoError(t, repo.Create(ctx, emp))
	assert.NotEqual(t, uuid.Nil, emp.ID)

	got, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.Name)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	emp.Name = "Alex Renamed"
	require.NoError(t, repo.Update(ctx, emp))
	got, _ = repo.GetByID(ctx, emp.ID)
	assert.Equal(t, "Alex Renamed", got.Name)

	require.NoError(t, repo.Delete(ctx, emp.ID))
	_, err = repo.GetByID(ctx, emp.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestCoverageRuleRepository_GetByDayIndex(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	repo := db.CoverageRuleRepository()

	require.NoError(t, repo.Create(ctx, &entity.CoverageRule{DayIndex: 0, StartTime: "08:00", EndTime: "16:00", MinEmployees: 1}))
	require.NoError(t, repo.Create(ctx, &entity.CoverageRule{DayIndex: 1, StartTime: "08:00", EndTime: "16:00", MinEmployees: 1}))

	mondayRules, err := repo.GetByDayIndex(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, mondayRules, 1)
}

func TestEmployeeAvailabilityRepository_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	repo := db.EmployeeAvailabilityRepository()

	empID := uuid.New()
	require.NoError(t, repo.Upsert(ctx, &entity.EmployeeAvailability{EmployeeID: empID, DayOfWeek: 0, Hour: 8, IsAvailable: true, Type: entity.AvailabilityAvailable}))
	require.NoError(t, repo.Upsert(ctx, &entity.EmployeeAvailability{EmployeeID: empID, DayOfWeek: 0, Hour: 9, IsAvailable: true, Type: entity.AvailabilityAvailable}))

	rows, err := repo.GetByEmployeeAndDay(ctx, empID, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, repo.Delete(ctx, empID, 0, 8))
	rows, _ = repo.GetByEmployeeAndDay(ctx, empID, 0)
	assert.Len(t, rows, 1)
}

func TestScheduleRepository_GetLatestVersion(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	repo := db.ScheduleRepository()

	start := time.Date(2024, 11, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 11, 8, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, entity.NewSchedule(start, end, 1)))
	require.NoError(t, repo.Create(ctx, entity.NewSchedule(start, end, 2)))

	latest, err := repo.GetLatestVersion(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)
}

func TestDatabase_HealthAndTransaction(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	require.NoError(t, db.Health(ctx))

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.EmployeeRepository().Create(ctx, &entity.Employee{Name: "Sam", Group: entity.GroupTeamLead, IsActive: true}))
	require.NoError(t, tx.Commit())

	all, err := db.EmployeeRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	db := NewDatabase()
	require.NoError(t, db.EmployeeRepository().Create(ctx, &entity.Employee{Name: "Temp", Group: entity.GroupMiniJob, IsActive: true}))

	store := db.employees.store
	assert.True(t, store.QueryCount() > 0)
	store.Reset()
	assert.Equal(t, 0, store.QueryCount())

	all, err := db.EmployeeRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 0)
}
