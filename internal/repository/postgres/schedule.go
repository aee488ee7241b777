package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// ScheduleRepository implements repository.ScheduleRepository for
// PostgreSQL. A schedule's assignment entries are stored as a single jsonb
// column rather than a child table — the engine always reads and writes the
// whole entry vector for one generation run, never a single row.
type ScheduleRepository struct {
	db querier
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(db querier) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a new schedule.
func (r *ScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	entriesJSON, err := json.Marshal(s.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule entries: %w", err)
	}

	query := `
		INSERT INTO schedules (id, start_date, end_date, status, version, entries)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.StartDate, s.EndDate, string(s.Status), s.Version, entriesJSON)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, status, version, entries
		FROM schedules WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

// GetByDateRange retrieves every schedule overlapping [startDate, endDate].
func (r *ScheduleRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, start_date, end_date, status, version, entries
		FROM schedules
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, version
	`, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	defer rows.Close()

	var out []*entity.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetLatestVersion retrieves the highest-version schedule for an exact date
// range.
func (r *ScheduleRepository) GetLatestVersion(ctx context.Context, startDate, endDate time.Time) (*entity.Schedule, error) {
	s, err := scanSchedule(r.db.QueryRowContext(ctx, `
		SELECT id, start_date, end_date, status, version, entries
		FROM schedules
		WHERE start_date = $1 AND end_date = $2
		ORDER BY version DESC
		LIMIT 1
	`, startDate, endDate))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: "latest"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest schedule version: %w", err)
	}
	return s, nil
}

// Update replaces a schedule's status, version, and entries.
func (r *ScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	entriesJSON, err := json.Marshal(s.Entries)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule entries: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE schedules SET start_date = $2, end_date = $3, status = $4, version = $5, entries = $6
		WHERE id = $1
	`, s.ID, s.StartDate, s.EndDate, string(s.Status), s.Version, entriesJSON)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	return requireRowsAffected(res, "Schedule", s.ID.String())
}

// Delete removes a schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return requireRowsAffected(res, "Schedule", id.String())
}

// Count returns the total number of schedules.
func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM schedules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return n, nil
}

func scanSchedule(s rowScanner) (*entity.Schedule, error) {
	sched := &entity.Schedule{}
	var status string
	var entriesJSON []byte

	if err := s.Scan(&sched.ID, &sched.StartDate, &sched.EndDate, &status, &sched.Version, &entriesJSON); err != nil {
		return nil, err
	}
	sched.Status = entity.AssignmentStatus(status)
	if len(entriesJSON) > 0 {
		if err := json.Unmarshal(entriesJSON, &sched.Entries); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedule entries: %w", err)
		}
	}
	return sched, nil
}
