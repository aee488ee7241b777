package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/api"
	"github.com/liftform/shiftcraft/internal/repository/memory"
	"github.com/liftform/shiftcraft/internal/scheduler"
	"github.com/liftform/shiftcraft/internal/service"
)

func newTestRouter() *echo.Echo {
	db := memory.NewDatabase()
	svc := service.NewScheduleService(db, scheduler.DefaultConfig(), nil)
	router := api.NewRouter(db, svc)
	return router.Echo()
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestCreateEmployee_ReturnsCreated(t *testing.T) {
	e := newTestRouter()

	body := `{"name":"Alex Chen","group":"VZ","contracted_hours":40,"is_active":true,"is_keyholder":false}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alex Chen")
}

func TestCreateEmployee_RejectsUnknownGroup(t *testing.T) {
	e := newTestRouter()

	body := `{"name":"Alex Chen","group":"NOPE","contracted_hours":40,"is_active":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/employees", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEmployee_NotFound(t *testing.T) {
	e := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/employees/00000000-0000-0000-0000-000000000000", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateSchedule_RejectsBadDates(t *testing.T) {
	e := newTestRouter()
	body := `{"start_date":"not-a-date","end_date":"2026-08-09"}`
	req := httptest.NewRequest(http.MethodPost, "/api/schedules/generate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
