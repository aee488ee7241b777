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

// CoverageRuleRepository implements repository.CoverageRuleRepository for
// PostgreSQL.
type CoverageRuleRepository struct {
	db querier
}

// NewCoverageRuleRepository creates a new CoverageRuleRepository.
func NewCoverageRuleRepository(db querier) *CoverageRuleRepository {
	return &CoverageRuleRepository{db: db}
}

func groupSetToStrings(set map[entity.EmployeeGroup]bool) []string {
	var out []string
	for g, on := range set {
		if on {
			out = append(out, string(g))
		}
	}
	return out
}

func stringsToGroupSet(raw []string) map[entity.EmployeeGroup]bool {
	out := make(map[entity.EmployeeGroup]bool, len(raw))
	for _, v := range raw {
		out[entity.EmployeeGroup(v)] = true
	}
	return out
}

// Create inserts a new coverage rule.
func (r *CoverageRuleRepository) Create(ctx context.Context, c *entity.CoverageRule) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO coverage_rules (id, day_index, start_time, end_time, min_employees, max_employees,
		                             employee_types, allowed_employee_groups, requires_keyholder,
		                             keyholder_before_minutes, keyholder_after_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.DayIndex, c.StartTime, c.EndTime, c.MinEmployees, c.MaxEmployees,
		pq.Array(groupSetToStrings(c.EmployeeTypes)), pq.Array(groupSetToStrings(c.AllowedEmployeeGroups)),
		c.RequiresKeyholder, c.KeyholderBeforeMinutes, c.KeyholderAfterMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to create coverage rule: %w", err)
	}
	return nil
}

// GetByID retrieves a coverage rule by ID.
func (r *CoverageRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CoverageRule, error) {
	c, err := scanCoverageRule(r.db.QueryRowContext(ctx, `
		SELECT id, day_index, start_time, end_time, min_employees, max_employees,
		       employee_types, allowed_employee_groups, requires_keyholder,
		       keyholder_before_minutes, keyholder_after_minutes
		FROM coverage_rules WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, &repository.NotFoundError{ResourceType: "CoverageRule", ResourceID: id.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get coverage rule: %w", err)
	}
	return c, nil
}

// GetByDayIndex retrieves every coverage rule active on a given weekday.
func (r *CoverageRuleRepository) GetByDayIndex(ctx context.Context, dayIndex int) ([]*entity.CoverageRule, error) {
	return r.query(ctx, `
		SELECT id, day_index, start_time, end_time, min_employees, max_employees,
		       employee_types, allowed_employee_groups, requires_keyholder,
		       keyholder_before_minutes, keyholder_after_minutes
		FROM coverage_rules WHERE day_index = $1 ORDER BY start_time
	`, dayIndex)
}

// GetAll retrieves every coverage rule.
func (r *CoverageRuleRepository) GetAll(ctx context.Context) ([]*entity.CoverageRule, error) {
	return r.query(ctx, `
		SELECT id, day_index, start_time, end_time, min_employees, max_employees,
		       employee_types, allowed_employee_groups, requires_keyholder,
		       keyholder_before_minutes, keyholder_after_minutes
		FROM coverage_rules ORDER BY day_index, start_time
	`)
}

func (r *CoverageRuleRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.CoverageRule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage rules: %w", err)
	}
	defer rows.Close()

	var out []*entity.CoverageRule
	for rows.Next() {
		c, err := scanCoverageRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coverage rule: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update persists every mutable field of an existing coverage rule.
func (r *CoverageRuleRepository) Update(ctx context.Context, c *entity.CoverageRule) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE coverage_rules
		SET day_index = $2, start_time = $3, end_time = $4, min_employees = $5, max_employees = $6,
		    employee_types = $7, allowed_employee_groups = $8, requires_keyholder = $9,
		    keyholder_before_minutes = $10, keyholder_after_minutes = $11
		WHERE id = $1
	`, c.ID, c.DayIndex, c.StartTime, c.EndTime, c.MinEmployees, c.MaxEmployees,
		pq.Array(groupSetToStrings(c.EmployeeTypes)), pq.Array(groupSetToStrings(c.AllowedEmployeeGroups)),
		c.RequiresKeyholder, c.KeyholderBeforeMinutes, c.KeyholderAfterMinutes)
	if err != nil {
		return fmt.Errorf("failed to update coverage rule: %w", err)
	}
	return requireRowsAffected(res, "CoverageRule", c.ID.String())
}

// Delete removes a coverage rule.
func (r *CoverageRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coverage_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coverage rule: %w", err)
	}
	return requireRowsAffected(res, "CoverageRule", id.String())
}

// Count returns the total number of coverage rules.
func (r *CoverageRuleRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM coverage_rules`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count coverage rules: %w", err)
	}
	return n, nil
}

func scanCoverageRule(s rowScanner) (*entity.CoverageRule, error) {
	c := &entity.CoverageRule{}
	var employeeTypes, allowedGroups []string

	err := s.Scan(&c.ID, &c.DayIndex, &c.StartTime, &c.EndTime, &c.MinEmployees, &c.MaxEmployees,
		pq.Array(&employeeTypes), pq.Array(&allowedGroups), &c.RequiresKeyholder,
		&c.KeyholderBeforeMinutes, &c.KeyholderAfterMinutes)
	if err != nil {
		return nil, err
	}
	c.EmployeeTypes = stringsToGroupSet(employeeTypes)
	c.AllowedEmployeeGroups = stringsToGroupSet(allowedGroups)
	return c, nil
}
