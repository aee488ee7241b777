package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
	"github.com/liftform/shiftcraft/internal/service"
)

const dateLayout = "2006-01-02"

// Handlers holds every dependency the HTTP layer needs to serve a request.
type Handlers struct {
	db       repository.Database
	schedule service.ScheduleService
}

// NewHandlers builds a Handlers bound to db and schedule.
func NewHandlers(db repository.Database, schedule service.ScheduleService) *Handlers {
	return &Handlers{db: db, schedule: schedule}
}

// Health reports whether the process is up, without touching the database.
func (h *Handlers) Health(c echo.Context) error {
	return SuccessResponse(c, map[string]string{"status": "ok"})
}

// HealthDB pings the database and reports connectivity.
func (h *Handlers) HealthDB(c echo.Context) error {
	if err := h.db.Health(c.Request().Context()); err != nil {
		return ErrorJSON(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", err.Error())
	}
	return SuccessResponse(c, map[string]string{"status": "ok"})
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// --- Employees ---

// employeePreferencesRequest mirrors entity.EmployeePreferences over the
// wire, where weekdays and shift ids are plain strings.
type employeePreferencesRequest struct {
	PreferredDays   []string `json:"preferred_days,omitempty"`
	AvoidedDays     []string `json:"avoided_days,omitempty"`
	PreferredShifts []string `json:"preferred_shifts,omitempty"`
	AvoidedShifts   []string `json:"avoided_shifts,omitempty"`
}

type employeeRequest struct {
	Name            string                       `json:"name"`
	Group           string                       `json:"group"`
	ContractedHours float64                      `json:"contracted_hours"`
	IsActive        bool                         `json:"is_active"`
	IsKeyholder     bool                         `json:"is_keyholder"`
	Preferences     *employeePreferencesRequest  `json:"preferences,omitempty"`
}

func (r *employeeRequest) toEntity() *entity.Employee {
	e := &entity.Employee{
		Name:            r.Name,
		Group:           entity.EmployeeGroup(r.Group),
		ContractedHours: r.ContractedHours,
		IsActive:        r.IsActive,
		IsKeyholder:     r.IsKeyholder,
	}
	if r.Preferences != nil {
		e.Preferences = &entity.EmployeePreferences{
			PreferredDays:   make(map[time.Weekday]bool),
			AvoidedDays:     make(map[time.Weekday]bool),
			PreferredShifts: make(map[uuid.UUID]bool),
			AvoidedShifts:   make(map[uuid.UUID]bool),
		}
		for _, d := range r.Preferences.PreferredDays {
			if wd, err := parseWeekday(d); err == nil {
				e.Preferences.PreferredDays[wd] = true
			}
		}
		for _, d := range r.Preferences.AvoidedDays {
			if wd, err := parseWeekday(d); err == nil {
				e.Preferences.AvoidedDays[wd] = true
			}
		}
		for _, id := range r.Preferences.PreferredShifts {
			if sid, err := uuid.Parse(id); err == nil {
				e.Preferences.PreferredShifts[sid] = true
			}
		}
		for _, id := range r.Preferences.AvoidedShifts {
			if sid, err := uuid.Parse(id); err == nil {
				e.Preferences.AvoidedShifts[sid] = true
			}
		}
	}
	return e
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// CreateEmployee creates a new employee.
func (h *Handlers) CreateEmployee(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	if !entity.ValidateEmployeeGroup(req.Group) {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_GROUP", "unknown employee group: "+req.Group)
	}

	e := req.toEntity()
	if err := h.db.EmployeeRepository().Create(c.Request().Context(), e); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return CreatedResponse(c, e)
}

// GetEmployee retrieves an employee by ID.
func (h *Handlers) GetEmployee(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	e, err := h.db.EmployeeRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, e)
}

// ListEmployees lists every non-deleted employee, optionally filtered to
// active-only via ?active=true.
func (h *Handlers) ListEmployees(c echo.Context) error {
	ctx := c.Request().Context()
	if c.QueryParam("active") == "true" {
		employees, err := h.db.EmployeeRepository().GetActive(ctx)
		if err != nil {
			return RepositoryErrorJSON(c, err)
		}
		return SuccessResponse(c, employees)
	}
	employees, err := h.db.EmployeeRepository().GetAll(ctx)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, employees)
}

// UpdateEmployee replaces an existing employee's mutable fields.
func (h *Handlers) UpdateEmployee(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}

	e := req.toEntity()
	e.ID = id
	if err := h.db.EmployeeRepository().Update(c.Request().Context(), e); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, e)
}

// DeleteEmployee soft-deletes an employee.
func (h *Handlers) DeleteEmployee(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	if err := h.db.EmployeeRepository().Delete(c.Request().Context(), id); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Shift templates ---

type shiftTemplateRequest struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	ShiftType         string `json:"shift_type"`
	RequiresBreak     bool   `json:"requires_break"`
	ActiveDays        []int  `json:"active_days"`
	RequiresKeyholder bool   `json:"requires_keyholder"`
}

func (r *shiftTemplateRequest) toEntity() *entity.ShiftTemplate {
	days := make(map[int]bool, len(r.ActiveDays))
	for _, d := range r.ActiveDays {
		days[d] = true
	}
	return &entity.ShiftTemplate{
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		ShiftType:         entity.ShiftType(r.ShiftType),
		RequiresBreak:     r.RequiresBreak,
		ActiveDays:        days,
		RequiresKeyholder: r.RequiresKeyholder,
	}
}

// CreateShiftTemplate creates a new shift template.
func (h *Handlers) CreateShiftTemplate(c echo.Context) error {
	var req shiftTemplateRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	if !entity.ValidateShiftType(req.ShiftType) {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_SHIFT_TYPE", "unknown shift type: "+req.ShiftType)
	}
	t := req.toEntity()
	if err := h.db.ShiftTemplateRepository().Create(c.Request().Context(), t); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return CreatedResponse(c, t)
}

// GetShiftTemplate retrieves a shift template by ID.
func (h *Handlers) GetShiftTemplate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	t, err := h.db.ShiftTemplateRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, t)
}

// ListShiftTemplates lists every shift template.
func (h *Handlers) ListShiftTemplates(c echo.Context) error {
	templates, err := h.db.ShiftTemplateRepository().GetAll(c.Request().Context())
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, templates)
}

// UpdateShiftTemplate replaces an existing shift template.
func (h *Handlers) UpdateShiftTemplate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	var req shiftTemplateRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	t := req.toEntity()
	t.ID = id
	if err := h.db.ShiftTemplateRepository().Update(c.Request().Context(), t); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, t)
}

// DeleteShiftTemplate removes a shift template.
func (h *Handlers) DeleteShiftTemplate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	if err := h.db.ShiftTemplateRepository().Delete(c.Request().Context(), id); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Coverage rules ---

type coverageRuleRequest struct {
	DayIndex               int      `json:"day_index"`
	StartTime              string   `json:"start_time"`
	EndTime                string   `json:"end_time"`
	MinEmployees           int      `json:"min_employees"`
	MaxEmployees           *int     `json:"max_employees,omitempty"`
	EmployeeTypes          []string `json:"employee_types,omitempty"`
	AllowedEmployeeGroups  []string `json:"allowed_employee_groups,omitempty"`
	RequiresKeyholder      bool     `json:"requires_keyholder"`
	KeyholderBeforeMinutes *int     `json:"keyholder_before_minutes,omitempty"`
	KeyholderAfterMinutes  *int     `json:"keyholder_after_minutes,omitempty"`
}

func (r *coverageRuleRequest) toEntity() *entity.CoverageRule {
	return &entity.CoverageRule{
		DayIndex:               r.DayIndex,
		StartTime:              r.StartTime,
		EndTime:                r.EndTime,
		MinEmployees:           r.MinEmployees,
		MaxEmployees:           r.MaxEmployees,
		EmployeeTypes:          stringsToGroupSet(r.EmployeeTypes),
		AllowedEmployeeGroups:  stringsToGroupSet(r.AllowedEmployeeGroups),
		RequiresKeyholder:      r.RequiresKeyholder,
		KeyholderBeforeMinutes: r.KeyholderBeforeMinutes,
		KeyholderAfterMinutes:  r.KeyholderAfterMinutes,
	}
}

func stringsToGroupSet(raw []string) map[entity.EmployeeGroup]bool {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[entity.EmployeeGroup]bool, len(raw))
	for _, v := range raw {
		out[entity.EmployeeGroup(v)] = true
	}
	return out
}

// CreateCoverageRule creates a new coverage rule.
func (h *Handlers) CreateCoverageRule(c echo.Context) error {
	var req coverageRuleRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	rule := req.toEntity()
	if err := h.db.CoverageRuleRepository().Create(c.Request().Context(), rule); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return CreatedResponse(c, rule)
}

// GetCoverageRule retrieves a coverage rule by ID.
func (h *Handlers) GetCoverageRule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	rule, err := h.db.CoverageRuleRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, rule)
}

// ListCoverageRules lists every coverage rule.
func (h *Handlers) ListCoverageRules(c echo.Context) error {
	rules, err := h.db.CoverageRuleRepository().GetAll(c.Request().Context())
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, rules)
}

// UpdateCoverageRule replaces an existing coverage rule.
func (h *Handlers) UpdateCoverageRule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	var req coverageRuleRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	rule := req.toEntity()
	rule.ID = id
	if err := h.db.CoverageRuleRepository().Update(c.Request().Context(), rule); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, rule)
}

// DeleteCoverageRule removes a coverage rule.
func (h *Handlers) DeleteCoverageRule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	if err := h.db.CoverageRuleRepository().Delete(c.Request().Context(), id); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Absences ---

type absenceRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
	Approved   bool   `json:"approved"`
}

// CreateAbsence creates a new absence window for an employee.
func (h *Handlers) CreateAbsence(c echo.Context) error {
	var req absenceRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_EMPLOYEE_ID", err.Error())
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_START_DATE", err.Error())
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_END_DATE", err.Error())
	}
	if err := entity.ValidateDateRange(start, end); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_DATE_RANGE", err.Error())
	}

	absence := &entity.Absence{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Approved:   req.Approved,
	}
	if err := h.db.AbsenceRepository().Create(c.Request().Context(), absence); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return CreatedResponse(c, absence)
}

// GetAbsence retrieves an absence by ID.
func (h *Handlers) GetAbsence(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	absence, err := h.db.AbsenceRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, absence)
}

// ListAbsencesForEmployee lists every absence recorded for an employee.
func (h *Handlers) ListAbsencesForEmployee(c echo.Context) error {
	employeeID, err := parseUUIDParam(c, "employeeID")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_EMPLOYEE_ID", err.Error())
	}
	absences, err := h.db.AbsenceRepository().GetByEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, absences)
}

// DeleteAbsence removes an absence.
func (h *Handlers) DeleteAbsence(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	if err := h.db.AbsenceRepository().Delete(c.Request().Context(), id); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Employee availability ---

type availabilityRequest struct {
	DayOfWeek   int    `json:"day_of_week"`
	Hour        int    `json:"hour"`
	IsAvailable bool   `json:"is_available"`
	Type        string `json:"type"`
}

// UpsertAvailability sets an employee's availability for one weekday hour.
func (h *Handlers) UpsertAvailability(c echo.Context) error {
	employeeID, err := parseUUIDParam(c, "employeeID")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_EMPLOYEE_ID", err.Error())
	}
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	a := &entity.EmployeeAvailability{
		EmployeeID:  employeeID,
		DayOfWeek:   req.DayOfWeek,
		Hour:        req.Hour,
		IsAvailable: req.IsAvailable,
		Type:        entity.AvailabilityType(req.Type),
	}
	if err := h.db.EmployeeAvailabilityRepository().Upsert(c.Request().Context(), a); err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, a)
}

// ListAvailabilityForEmployee lists every availability row for an employee.
func (h *Handlers) ListAvailabilityForEmployee(c echo.Context) error {
	employeeID, err := parseUUIDParam(c, "employeeID")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_EMPLOYEE_ID", err.Error())
	}
	rows, err := h.db.EmployeeAvailabilityRepository().GetByEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, rows)
}

// --- Schedules ---

type generateScheduleRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// GenerateSchedule runs the scheduling engine over [start_date, end_date]
// synchronously and returns the persisted schedule plus any warnings.
func (h *Handlers) GenerateSchedule(c echo.Context) error {
	var req generateScheduleRequest
	if err := c.Bind(&req); err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_START_DATE", err.Error())
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_END_DATE", err.Error())
	}

	result, err := h.schedule.Generate(c.Request().Context(), start, end)
	if err != nil {
		return ErrorJSON(c, http.StatusUnprocessableEntity, "GENERATION_FAILED", err.Error())
	}
	return CreatedResponse(c, result)
}

// GetSchedule retrieves a schedule by ID.
func (h *Handlers) GetSchedule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	schedule, err := h.db.ScheduleRepository().GetByID(c.Request().Context(), id)
	if err != nil {
		return RepositoryErrorJSON(c, err)
	}
	return SuccessResponse(c, schedule)
}

// ValidateSchedule re-runs engine validation against a stored schedule.
func (h *Handlers) ValidateSchedule(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return ErrorJSON(c, http.StatusBadRequest, "INVALID_ID", err.Error())
	}
	result, err := h.schedule.Validate(c.Request().Context(), id)
	if err != nil {
		return ErrorJSON(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	}
	return SuccessResponse(c, result)
}
