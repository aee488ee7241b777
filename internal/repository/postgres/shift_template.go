package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// ShiftTemplateRepository implements repository.ShiftTemplateRepository for
// PostgreSQL.
type ShiftTemplateRepository struct {
	db querier
}

// NewShiftTemplateRepository creates a new ShiftTemplateRepository.
func NewShiftTemplateRepository(db querier) *ShiftTemplateRepository {
	return &ShiftTemplateRepository{db: db}
}

func encodeActiveDays(days map[int]bool) []string {
	var out []string
	for d, on := range days {
		if on {
			out = append(out, strconv.Itoa(d))
		}
	}
	return out
}

func decodeActiveDays(raw []string) map[int]bool {
	out := make(map[int]bool, len(raw))
	for _, v := range raw {
		if n, err := strconv.Atoi(v); err == nil {
			out[n] = true
		}
	}
	return out
}

// Create inserts a new shift template.
func (r *ShiftTemplateRepository) Create(ctx context.Context, s *entity.ShiftTemplate) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = entity.Now()

	query := `
		INSERT INTO shift_templates (id, start_time, end_time, shift_type, requires_break,
		                              active_days, requires_keyholder, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.StartTime, s.EndTime, string(s.ShiftType), s.RequiresBreak,
		pq.Array(encodeActiveDays(s.ActiveDays)), s.RequiresKeyholder, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift template: %w", err)
	}
	return nil
}

// GetByID retrieves a shift template by ID.
func (r *ShiftTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ShiftTemplate, error) {
	s, err := scanShiftTemplate(r.db.QueryRowContext(ctx, `
		SELECT id, start_time, end_time, shift_type, requires_break, active_days,
		       requires_keyholder, created_at
		FROM shift_templates WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "ShiftTemplate", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift template: %w", err)
	}
	return s, nil
}

// GetAll retrieves every shift template.
func (r *ShiftTemplateRepository) GetAll(ctx context.Context) ([]*entity.ShiftTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, start_time, end_time, shift_type, requires_break, active_days,
		       requires_keyholder, created_at
		FROM shift_templates ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift templates: %w", err)
	}
	defer rows.Close()

	var out []*entity.ShiftTemplate
	for rows.Next() {
		s, err := scanShiftTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update persists every mutable field of an existing shift template.
func (r *ShiftTemplateRepository) Update(ctx context.Context, s *entity.ShiftTemplate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shift_templates
		SET start_time = $2, end_time = $3, shift_type = $4, requires_break = $5,
		    active_days = $6, requires_keyholder = $7
		WHERE id = $1
	`, s.ID, s.StartTime, s.EndTime, string(s.ShiftType), s.RequiresBreak,
		pq.Array(encodeActiveDays(s.ActiveDays)), s.RequiresKeyholder)
	if err != nil {
		return fmt.Errorf("failed to update shift template: %w", err)
	}
	return requireRowsAffected(res, "ShiftTemplate", s.ID.String())
}

// Delete removes a shift template.
func (r *ShiftTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shift_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift template: %w", err)
	}
	return requireRowsAffected(res, "ShiftTemplate", id.String())
}

// Count returns the total number of shift templates.
func (r *ShiftTemplateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM shift_templates`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count shift templates: %w", err)
	}
	return n, nil
}

func scanShiftTemplate(s rowScanner) (*entity.ShiftTemplate, error) {
	t := &entity.ShiftTemplate{}
	var shiftType string
	var activeDays []string

	err := s.Scan(&t.ID, &t.StartTime, &t.EndTime, &shiftType, &t.RequiresBreak,
		pq.Array(&activeDays), &t.RequiresKeyholder, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.ShiftType = entity.ShiftType(shiftType)
	t.ActiveDays = decodeActiveDays(activeDays)
	return t, nil
}
