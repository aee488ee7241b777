package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// AbsenceRepository implements repository.AbsenceRepository for PostgreSQL.
type AbsenceRepository struct {
	db querier
}

// NewAbsenceRepository creates a new AbsenceRepository.
func NewAbsenceRepository(db querier) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// Create inserts a new absence.
func (r *AbsenceRepository) Create(ctx context.Context, a *entity.Absence) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	query := `
		INSERT INTO absences (id, employee_id, start_date, end_date, reason, approved)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.EmployeeID, a.StartDate, a.EndDate, a.Reason, a.Approved)
	if err != nil {
		return fmt.Errorf("failed to create absence: %w", err)
	}
	return nil
}

// GetByID retrieves an absence by ID.
func (r *AbsenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Absence, error) {
	a, err := scanAbsence(r.db.QueryRowContext(ctx, `
		SELECT id, employee_id, start_date, end_date, reason, approved
		FROM absences WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Absence", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get absence: %w", err)
	}
	return a, nil
}

// GetByEmployee retrieves every absence recorded for an employee.
func (r *AbsenceRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.Absence, error) {
	return r.query(ctx, `
		SELECT id, employee_id, start_date, end_date, reason, approved
		FROM absences WHERE employee_id = $1 ORDER BY start_date
	`, employeeID)
}

// GetByDateRange retrieves every absence whose window intersects [start, end].
func (r *AbsenceRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Absence, error) {
	return r.query(ctx, `
		SELECT id, employee_id, start_date, end_date, reason, approved
		FROM absences WHERE start_date <= $2 AND end_date >= $1 ORDER BY start_date
	`, startDate, endDate)
}

func (r *AbsenceRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.Absence, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var out []*entity.Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update persists every mutable field of an existing absence.
func (r *AbsenceRepository) Update(ctx context.Context, a *entity.Absence) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE absences SET employee_id = $2, start_date = $3, end_date = $4, reason = $5, approved = $6
		WHERE id = $1
	`, a.ID, a.EmployeeID, a.StartDate, a.EndDate, a.Reason, a.Approved)
	if err != nil {
		return fmt.Errorf("failed to update absence: %w", err)
	}
	return requireRowsAffected(res, "Absence", a.ID.String())
}

// Delete removes an absence.
func (r *AbsenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM absences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	return requireRowsAffected(res, "Absence", id.String())
}

// Count returns the total number of absences.
func (r *AbsenceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM absences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count absences: %w", err)
	}
	return n, nil
}

func scanAbsence(s rowScanner) (*entity.Absence, error) {
	a := &entity.Absence{}
	if err := s.Scan(&a.ID, &a.EmployeeID, &a.StartDate, &a.EndDate, &a.Reason, &a.Approved); err != nil {
		return nil, err
	}
	return a, nil
}
