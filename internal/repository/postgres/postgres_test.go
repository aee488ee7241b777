package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// postgresTestHelper provisions a throwaway Postgres container for
// integration tests and tears it down afterward.
type postgresTestHelper struct {
	db        *DB
	container testcontainers.Container
	ctx       context.Context
}

func newPostgresTestHelper(ctx context.Context, t *testing.T) *postgresTestHelper {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "shiftcraft_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	connStr := fmt.Sprintf("postgres://test:test@%s:%s/shiftcraft_test?sslmode=disable", host, port.Port())

	sqldb, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open database connection: %v", err)
	}
	if err := sqldb.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	db := wire(sqldb)
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return &postgresTestHelper{db: db, container: container, ctx: ctx}
}

func (h *postgresTestHelper) Close(t *testing.T) {
	if err := h.db.Close(); err != nil {
		t.Logf("warning: failed to close database: %v", err)
	}
	if err := h.container.Terminate(h.ctx); err != nil {
		t.Logf("warning: failed to terminate container: %v", err)
	}
}

func (h *postgresTestHelper) clearTables(ctx context.Context, t *testing.T) {
	tables := []string{"schedules", "employee_availability", "absences", "coverage_rules", "shift_templates", "employees"}
	for _, table := range tables {
		if _, err := h.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("warning: failed to truncate table %s: %v", table, err)
		}
	}
}
