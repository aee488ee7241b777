package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/liftform/shiftcraft/internal/repository"
)

// schema is applied by Migrate on startup. Kept inline rather than as a
// migration-tool asset since this module has no migration runner of its
// own — the teacher repo ran equivalent DDL via psql during deployment.
const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id uuid PRIMARY KEY,
	name text NOT NULL,
	emp_group text NOT NULL,
	contracted_hours double precision NOT NULL,
	is_active boolean NOT NULL DEFAULT true,
	is_keyholder boolean NOT NULL DEFAULT false,
	preferred_days text[],
	avoided_days text[],
	preferred_shifts text[],
	avoided_shifts text[],
	created_at timestamptz NOT NULL,
	updated_at timestamptz NOT NULL,
	deleted_at timestamptz
);

CREATE TABLE IF NOT EXISTS shift_templates (
	id uuid PRIMARY KEY,
	start_time text NOT NULL,
	end_time text NOT NULL,
	shift_type text NOT NULL,
	requires_break boolean NOT NULL DEFAULT false,
	active_days text[],
	requires_keyholder boolean NOT NULL DEFAULT false,
	created_at timestamptz NOT NULL
);

CREATE TABLE IF NOT EXISTS coverage_rules (
	id uuid PRIMARY KEY,
	day_index integer NOT NULL,
	start_time text NOT NULL,
	end_time text NOT NULL,
	min_employees integer NOT NULL DEFAULT 0,
	max_employees integer,
	employee_types text[],
	allowed_employee_groups text[],
	requires_keyholder boolean NOT NULL DEFAULT false,
	keyholder_before_minutes integer,
	keyholder_after_minutes integer
);

CREATE TABLE IF NOT EXISTS absences (
	id uuid PRIMARY KEY,
	employee_id uuid NOT NULL REFERENCES employees(id),
	start_date date NOT NULL,
	end_date date NOT NULL,
	reason text NOT NULL DEFAULT '',
	approved boolean NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS employee_availability (
	employee_id uuid NOT NULL REFERENCES employees(id),
	day_of_week integer NOT NULL,
	hour integer NOT NULL,
	is_available boolean NOT NULL,
	availability_type text NOT NULL,
	PRIMARY KEY (employee_id, day_of_week, hour)
);

CREATE TABLE IF NOT EXISTS schedules (
	id uuid PRIMARY KEY,
	start_date date NOT NULL,
	end_date date NOT NULL,
	status text NOT NULL,
	version integer NOT NULL,
	entries jsonb NOT NULL DEFAULT '[]'
);
`

// DB wraps a SQL database connection for all PostgreSQL operations.
type DB struct {
	*sql.DB

	employees     *EmployeeRepository
	shiftTemplate *ShiftTemplateRepository
	coverage      *CoverageRuleRepository
	absences      *AbsenceRepository
	availability  *EmployeeAvailabilityRepository
	schedules     *ScheduleRepository
}

// New opens a PostgreSQL connection, verifies it, and wires up every
// repository implementation in this package.
func New(connString string) (*DB, error) {
	sqldb, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return wire(sqldb), nil
}

func wire(sqldb *sql.DB) *DB {
	return &DB{
		DB:            sqldb,
		employees:     NewEmployeeRepository(sqldb),
		shiftTemplate: NewShiftTemplateRepository(sqldb),
		coverage:      NewCoverageRuleRepository(sqldb),
		absences:      NewAbsenceRepository(sqldb),
		availability:  NewEmployeeAvailabilityRepository(sqldb),
		schedules:     NewScheduleRepository(sqldb),
	}
}

// Migrate applies the engine's schema, creating tables if they do not yet
// exist. Safe to call on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) EmployeeRepository() repository.EmployeeRepository { return db.employees }
func (db *DB) ShiftTemplateRepository() repository.ShiftTemplateRepository {
	return db.shiftTemplate
}
func (db *DB) CoverageRuleRepository() repository.CoverageRuleRepository { return db.coverage }
func (db *DB) AbsenceRepository() repository.AbsenceRepository           { return db.absences }
func (db *DB) EmployeeAvailabilityRepository() repository.EmployeeAvailabilityRepository {
	return db.availability
}
func (db *DB) ScheduleRepository() repository.ScheduleRepository { return db.schedules }

// BeginTx starts a SQL transaction and returns a Transaction whose
// repositories all run against it.
func (db *DB) BeginTx(ctx context.Context) (repository.Transaction, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqlTx{
		tx:            tx,
		employees:     NewEmployeeRepository(tx),
		shiftTemplate: NewShiftTemplateRepository(tx),
		coverage:      NewCoverageRuleRepository(tx),
		absences:      NewAbsenceRepository(tx),
		availability:  NewEmployeeAvailabilityRepository(tx),
		schedules:     NewScheduleRepository(tx),
	}, nil
}

type sqlTx struct {
	tx *sql.Tx

	employees     *EmployeeRepository
	shiftTemplate *ShiftTemplateRepository
	coverage      *CoverageRuleRepository
	absences      *AbsenceRepository
	availability  *EmployeeAvailabilityRepository
	schedules     *ScheduleRepository
}

func (t *sqlTx) Commit() error   { return t.tx.Commit() }
func (t *sqlTx) Rollback() error { return t.tx.Rollback() }

func (t *sqlTx) EmployeeRepository() repository.EmployeeRepository { return t.employees }
func (t *sqlTx) ShiftTemplateRepository() repository.ShiftTemplateRepository {
	return t.shiftTemplate
}
func (t *sqlTx) CoverageRuleRepository() repository.CoverageRuleRepository { return t.coverage }
func (t *sqlTx) AbsenceRepository() repository.AbsenceRepository          { return t.absences }
func (t *sqlTx) EmployeeAvailabilityRepository() repository.EmployeeAvailabilityRepository {
	return t.availability
}
func (t *sqlTx) ScheduleRepository() repository.ScheduleRepository { return t.schedules }
