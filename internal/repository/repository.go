package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liftform/shiftcraft/internal/entity"
)

// Database provides access to all repositories
type Database interface {
	// Transaction management
	BeginTx(ctx context.Context) (Transaction, error)

	// Repository accessors
	EmployeeRepository() EmployeeRepository
	ShiftTemplateRepository() ShiftTemplateRepository
	CoverageRuleRepository() CoverageRuleRepository
	AbsenceRepository() AbsenceRepository
	EmployeeAvailabilityRepository() EmployeeAvailabilityRepository
	ScheduleRepository() ScheduleRepository

	// Connection management
	Close() error
	Health(ctx context.Context) error
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error

	EmployeeRepository() EmployeeRepository
	ShiftTemplateRepository() ShiftTemplateRepository
	CoverageRuleRepository() CoverageRuleRepository
	AbsenceRepository() AbsenceRepository
	EmployeeAvailabilityRepository() EmployeeAvailabilityRepository
	ScheduleRepository() ScheduleRepository
}

// EmployeeRepository defines data access operations for employees
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetActive(ctx context.Context) ([]*entity.Employee, error)
	GetAll(ctx context.Context) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ShiftTemplateRepository defines data access operations for shift templates
type ShiftTemplateRepository interface {
	Create(ctx context.Context, shift *entity.ShiftTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ShiftTemplate, error)
	GetAll(ctx context.Context) ([]*entity.ShiftTemplate, error)
	Update(ctx context.Context, shift *entity.ShiftTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// CoverageRuleRepository defines data access operations for coverage rules
type CoverageRuleRepository interface {
	Create(ctx context.Context, rule *entity.CoverageRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CoverageRule, error)
	GetByDayIndex(ctx context.Context, dayIndex int) ([]*entity.CoverageRule, error)
	GetAll(ctx context.Context) ([]*entity.CoverageRule, error)
	Update(ctx context.Context, rule *entity.CoverageRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// AbsenceRepository defines data access operations for employee absences
type AbsenceRepository interface {
	Create(ctx context.Context, absence *entity.Absence) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Absence, error)
	GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.Absence, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Absence, error)
	Update(ctx context.Context, absence *entity.Absence) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// EmployeeAvailabilityRepository defines data access operations for hour-level availability
type EmployeeAvailabilityRepository interface {
	Create(ctx context.Context, availability *entity.EmployeeAvailability) error
	GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.EmployeeAvailability, error)
	GetByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, dayOfWeek int) ([]*entity.EmployeeAvailability, error)
	Upsert(ctx context.Context, availability *entity.EmployeeAvailability) error
	Delete(ctx context.Context, employeeID uuid.UUID, dayOfWeek, hour int) error
	Count(ctx context.Context) (int64, error)
}

// ScheduleRepository defines data access operations for generated schedules
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *entity.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error)
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Schedule, error)
	GetLatestVersion(ctx context.Context, startDate, endDate time.Time) (*entity.Schedule, error)
	Update(ctx context.Context, schedule *entity.Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// NotFoundError represents a record not found error
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

// Error implements the error interface for NotFoundError
func (e *NotFoundError) Error() string {
	return "not found: " + e.ResourceType + " " + e.ResourceID
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Message string
	Field   string
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
