package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
)

// EmployeeAvailabilityRepository implements
// repository.EmployeeAvailabilityRepository for PostgreSQL.
type EmployeeAvailabilityRepository struct {
	db querier
}

// NewEmployeeAvailabilityRepository creates a new
// EmployeeAvailabilityRepository.
func NewEmployeeAvailabilityRepository(db querier) *EmployeeAvailabilityRepository {
	return &EmployeeAvailabilityRepository{db: db}
}

// Create inserts a single hour-level availability row.
func (r *EmployeeAvailabilityRepository) Create(ctx context.Context, a *entity.EmployeeAvailability) error {
	query := `
		INSERT INTO employee_availability (employee_id, day_of_week, hour, is_available, availability_type)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, a.EmployeeID, a.DayOfWeek, a.Hour, a.IsAvailable, string(a.Type))
	if err != nil {
		return fmt.Errorf("failed to create availability row: %w", err)
	}
	return nil
}

// GetByEmployee retrieves every availability row for an employee.
func (r *EmployeeAvailabilityRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.EmployeeAvailability, error) {
	return r.query(ctx, `
		SELECT employee_id, day_of_week, hour, is_available, availability_type
		FROM employee_availability WHERE employee_id = $1 ORDER BY day_of_week, hour
	`, employeeID)
}

// GetByEmployeeAndDay retrieves the availability rows for a specific weekday.
func (r *EmployeeAvailabilityRepository) GetByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, dayOfWeek int) ([]*entity.EmployeeAvailability, error) {
	return r.query(ctx, `
		SELECT employee_id, day_of_week, hour, is_available, availability_type
		FROM employee_availability WHERE employee_id = $1 AND day_of_week = $2 ORDER BY hour
	`, employeeID, dayOfWeek)
}

func (r *EmployeeAvailabilityRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.EmployeeAvailability, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var out []*entity.EmployeeAvailability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan availability row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert inserts or replaces the availability row for (employee, day, hour).
func (r *EmployeeAvailabilityRepository) Upsert(ctx context.Context, a *entity.EmployeeAvailability) error {
	query := `
		INSERT INTO employee_availability (employee_id, day_of_week, hour, is_available, availability_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, day_of_week, hour)
		DO UPDATE SET is_available = EXCLUDED.is_available, availability_type = EXCLUDED.availability_type
	`
	_, err := r.db.ExecContext(ctx, query, a.EmployeeID, a.DayOfWeek, a.Hour, a.IsAvailable, string(a.Type))
	if err != nil {
		return fmt.Errorf("failed to upsert availability row: %w", err)
	}
	return nil
}

// Delete removes the availability row for (employee, day, hour).
func (r *EmployeeAvailabilityRepository) Delete(ctx context.Context, employeeID uuid.UUID, dayOfWeek, hour int) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM employee_availability WHERE employee_id = $1 AND day_of_week = $2 AND hour = $3
	`, employeeID, dayOfWeek, hour)
	if err != nil {
		return fmt.Errorf("failed to delete availability row: %w", err)
	}
	return requireRowsAffected(res, "EmployeeAvailability", fmt.Sprintf("%s/%d/%d", employeeID, dayOfWeek, hour))
}

// Count returns the total number of availability rows.
func (r *EmployeeAvailabilityRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM employee_availability`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count availability rows: %w", err)
	}
	return n, nil
}

func scanAvailability(s rowScanner) (*entity.EmployeeAvailability, error) {
	a := &entity.EmployeeAvailability{}
	var availType string
	if err := s.Scan(&a.EmployeeID, &a.DayOfWeek, &a.Hour, &a.IsAvailable, &availType); err != nil {
		return nil, err
	}
	a.Type = entity.AvailabilityType(availType)
	return a, nil
}
