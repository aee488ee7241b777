package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx, letting every repository
// in this package run unchanged against either a pooled connection or a
// transaction handed out by Database.BeginTx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// requireRowsAffected turns a zero-row UPDATE/DELETE result into a
// NotFoundError, matching the convention every repository in this package
// follows for mutating operations.
func requireRowsAffected(res sql.Result, resourceType, resourceID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return &repository.NotFoundError{ResourceType: resourceType, ResourceID: resourceID}
	}
	return nil
}

// encodePreferences flattens an EmployeePreferences into the four string
// array columns employees carries. A nil Preferences yields four nil slices.
func encodePreferences(p *entity.EmployeePreferences) (preferredDays, avoidedDays, preferredShifts, avoidedShifts []string) {
	if p == nil {
		return nil, nil, nil, nil
	}
	for d, on := range p.PreferredDays {
		if on {
			preferredDays = append(preferredDays, strconv.Itoa(int(d)))
		}
	}
	for d, on := range p.AvoidedDays {
		if on {
			avoidedDays = append(avoidedDays, strconv.Itoa(int(d)))
		}
	}
	for id, on := range p.PreferredShifts {
		if on {
			preferredShifts = append(preferredShifts, id.String())
		}
	}
	for id, on := range p.AvoidedShifts {
		if on {
			avoidedShifts = append(avoidedShifts, id.String())
		}
	}
	return preferredDays, avoidedDays, preferredShifts, avoidedShifts
}

// decodePreferences reverses encodePreferences. Returns nil when every
// column is empty, matching a never-set Preferences pointer.
func decodePreferences(preferredDays, avoidedDays, preferredShifts, avoidedShifts []string) *entity.EmployeePreferences {
	if len(preferredDays) == 0 && len(avoidedDays) == 0 && len(preferredShifts) == 0 && len(avoidedShifts) == 0 {
		return nil
	}
	p := &entity.EmployeePreferences{
		PreferredDays:   make(map[time.Weekday]bool),
		AvoidedDays:     make(map[time.Weekday]bool),
		PreferredShifts: make(map[uuid.UUID]bool),
		AvoidedShifts:   make(map[uuid.UUID]bool),
	}
	for _, v := range preferredDays {
		if n, err := strconv.Atoi(v); err == nil {
			p.PreferredDays[time.Weekday(n)] = true
		}
	}
	for _, v := range avoidedDays {
		if n, err := strconv.Atoi(v); err == nil {
			p.AvoidedDays[time.Weekday(n)] = true
		}
	}
	for _, v := range preferredShifts {
		if id, err := uuid.Parse(v); err == nil {
			p.PreferredShifts[id] = true
		}
	}
	for _, v := range avoidedShifts {
		if id, err := uuid.Parse(v); err == nil {
			p.AvoidedShifts[id] = true
		}
	}
	return p
}
