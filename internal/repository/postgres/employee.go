package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// EmployeeRepository implements repository.EmployeeRepository for PostgreSQL.
type EmployeeRepository struct {
	db querier
}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository(db querier) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = entity.Now()
	e.UpdatedAt = e.CreatedAt

	preferredDays, avoidedDays, preferredShifts, avoidedShifts := encodePreferences(e.Preferences)

	query := `
		INSERT INTO employees (id, name, emp_group, contracted_hours, is_active, is_keyholder,
		                        preferred_days, avoided_days, preferred_shifts, avoided_shifts,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, string(e.Group), e.ContractedHours, e.IsActive, e.IsKeyholder,
		pq.Array(preferredDays), pq.Array(avoidedDays), pq.Array(preferredShifts), pq.Array(avoidedShifts),
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// GetByID retrieves an employee by ID, excluding soft-deleted rows.
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	query := `
		SELECT id, name, emp_group, contracted_hours, is_active, is_keyholder,
		       preferred_days, avoided_days, preferred_shifts, avoided_shifts,
		       created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`
	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Employee", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetActive retrieves every active, non-deleted employee.
func (r *EmployeeRepository) GetActive(ctx context.Context) ([]*entity.Employee, error) {
	return r.query(ctx, `
		SELECT id, name, emp_group, contracted_hours, is_active, is_keyholder,
		       preferred_days, avoided_days, preferred_shifts, avoided_shifts,
		       created_at, updated_at, deleted_at
		FROM employees
		WHERE is_active = true AND deleted_at IS NULL
		ORDER BY emp_group, contracted_hours DESC, id
	`)
}

// GetAll retrieves every non-deleted employee.
func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*entity.Employee, error) {
	return r.query(ctx, `
		SELECT id, name, emp_group, contracted_hours, is_active, is_keyholder,
		       preferred_days, avoided_days, preferred_shifts, avoided_shifts,
		       created_at, updated_at, deleted_at
		FROM employees
		WHERE deleted_at IS NULL
		ORDER BY id
	`)
}

func (r *EmployeeRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update persists every mutable field of an existing employee.
func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	e.UpdatedAt = entity.Now()
	preferredDays, avoidedDays, preferredShifts, avoidedShifts := encodePreferences(e.Preferences)

	query := `
		UPDATE employees
		SET name = $2, emp_group = $3, contracted_hours = $4, is_active = $5, is_keyholder = $6,
		    preferred_days = $7, avoided_days = $8, preferred_shifts = $9, avoided_shifts = $10,
		    updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, string(e.Group), e.ContractedHours, e.IsActive, e.IsKeyholder,
		pq.Array(preferredDays), pq.Array(avoidedDays), pq.Array(preferredShifts), pq.Array(avoidedShifts),
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return requireRowsAffected(res, "Employee", e.ID.String())
}

// Delete soft-deletes an employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE employees SET deleted_at = $2, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id, entity.Now())
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return requireRowsAffected(res, "Employee", id.String())
}

// Count returns the number of non-deleted employees.
func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM employees WHERE deleted_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(s rowScanner) (*entity.Employee, error) {
	e := &entity.Employee{}
	var group string
	var preferredDays, avoidedDays, preferredShifts, avoidedShifts []string

	err := s.Scan(
		&e.ID, &e.Name, &group, &e.ContractedHours, &e.IsActive, &e.IsKeyholder,
		pq.Array(&preferredDays), pq.Array(&avoidedDays), pq.Array(&preferredShifts), pq.Array(&avoidedShifts),
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Group = entity.EmployeeGroup(group)
	e.Preferences = decodePreferences(preferredDays, avoidedDays, preferredShifts, avoidedShifts)
	return e, nil
}
