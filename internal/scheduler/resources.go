package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
)

// Snapshot is the raw resource set handed to Load, typically read
// from a repository in one pass before a generation or validation run.
type Snapshot struct {
	Settings       *entity.Settings
	Employees      []entity.Employee
	ShiftTemplates []entity.ShiftTemplate
	Coverage       []entity.CoverageRule
	Absences       []entity.Absence
	Availability   []entity.EmployeeAvailability
}

// Resources is the immutable, indexed view of a Snapshot that every other
// engine component reads from. It never mutates once loaded; the Generator
// builds a fresh ScheduleIndex alongside it to track in-progress state.
type Resources struct {
	settings *entity.Settings

	employeesByID map[uuid.UUID]*entity.Employee
	activeSorted  []entity.Employee
	keyholders    []entity.Employee

	shiftsByID map[uuid.UUID]*entity.ShiftTemplate

	coverage map[int][]entity.CoverageRule // by day index

	availability map[uuid.UUID]map[int][]entity.EmployeeAvailability // employee -> day -> hours

	absences map[uuid.UUID][]entity.Absence // employee -> windows

	coverageCacheMu sync.Mutex
	coverageCache   map[time.Time][]entity.CoverageRule
}

// Load validates and indexes a Snapshot. It fails fatally (*LoadError) when
// there are no shift templates at all — nothing downstream could ever
// produce an assignment. Missing coverage rules or no active employees are
// recoverable: callers should surface the returned warnings but may proceed.
func Load(snap Snapshot) (*Resources, []string, error) {
	var warnings []string

	if len(snap.ShiftTemplates) == 0 {
		return nil, nil, &LoadError{Reason: "no shift templates configured"}
	}

	res := &Resources{
		settings:      snap.Settings,
		employeesByID: make(map[uuid.UUID]*entity.Employee, len(snap.Employees)),
		shiftsByID:    make(map[uuid.UUID]*entity.ShiftTemplate, len(snap.ShiftTemplates)),
		coverage:      make(map[int][]entity.CoverageRule),
		availability:  make(map[uuid.UUID]map[int][]entity.EmployeeAvailability),
		absences:      make(map[uuid.UUID][]entity.Absence),
		coverageCache: make(map[time.Time][]entity.CoverageRule),
	}
	if res.settings == nil {
		res.settings = entity.DefaultSettings()
	}

	for i := range snap.ShiftTemplates {
		st := snap.ShiftTemplates[i]
		res.shiftsByID[st.ID] = &snap.ShiftTemplates[i]
	}

	activeCount := 0
	for i := range snap.Employees {
		e := snap.Employees[i]
		res.employeesByID[e.ID] = &snap.Employees[i]
		if e.IsActive && !e.IsDeleted() {
			res.activeSorted = append(res.activeSorted, e)
			activeCount++
			if e.IsKeyholder {
				res.keyholders = append(res.keyholders, e)
			}
		}
	}
	if activeCount == 0 {
		warnings = append(warnings, "no active employees available for scheduling")
	}

	if len(snap.Coverage) == 0 {
		warnings = append(warnings, "no coverage rules configured; all intervals will be treated as unstaffed")
	}
	for _, c := range snap.Coverage {
		res.coverage[c.DayIndex] = append(res.coverage[c.DayIndex], c)
	}

	for _, a := range snap.Availability {
		byDay, ok := res.availability[a.EmployeeID]
		if !ok {
			byDay = make(map[int][]entity.EmployeeAvailability)
			res.availability[a.EmployeeID] = byDay
		}
		byDay[a.DayOfWeek] = append(byDay[a.DayOfWeek], a)
	}

	for _, a := range snap.Absences {
		res.absences[a.EmployeeID] = append(res.absences[a.EmployeeID], a)
	}

	res.sortActiveEmployees()

	return res, warnings, nil
}

// sortActiveEmployees orders by (group rank asc, contracted hours desc, id
// asc) so iteration is deterministic across runs with identical input,
// matching spec.md §8 property 1.
func (r *Resources) sortActiveEmployees() {
	sort.Slice(r.activeSorted, func(i, j int) bool {
		a, b := r.activeSorted[i], r.activeSorted[j]
		if a.Group.Rank() != b.Group.Rank() {
			return a.Group.Rank() < b.Group.Rank()
		}
		if a.ContractedHours != b.ContractedHours {
			return a.ContractedHours > b.ContractedHours
		}
		return a.ID.String() < b.ID.String()
	})
	sort.Slice(r.keyholders, func(i, j int) bool {
		a, b := r.keyholders[i], r.keyholders[j]
		if a.Group.Rank() != b.Group.Rank() {
			return a.Group.Rank() < b.Group.Rank()
		}
		return a.ID.String() < b.ID.String()
	})
}

// Settings returns the store settings in effect for this snapshot.
func (r *Resources) Settings() *entity.Settings { return r.settings }

// GetEmployee looks up an employee by ID regardless of active/deleted state.
func (r *Resources) GetEmployee(id uuid.UUID) (*entity.Employee, bool) {
	e, ok := r.employeesByID[id]
	return e, ok
}

// GetShift looks up a shift template by ID.
func (r *Resources) GetShift(id uuid.UUID) (*entity.ShiftTemplate, bool) {
	s, ok := r.shiftsByID[id]
	return s, ok
}

// ActiveEmployees returns active, non-deleted employees in deterministic
// priority order: by group rank (team lead, full-time, part-time, mini-job),
// then contracted hours descending, then ID.
func (r *Resources) ActiveEmployees() []entity.Employee {
	return r.activeSorted
}

// Keyholders returns active employees flagged as keyholders, ordered by
// group rank, then ID (contracted hours do not affect this order).
func (r *Resources) Keyholders() []entity.Employee {
	return r.keyholders
}

// DailyCoverage returns the coverage rules applicable to date's weekday,
// cached per calendar date since a generation run revisits each date once
// per shift template.
func (r *Resources) DailyCoverage(date time.Time) []entity.CoverageRule {
	key := truncate(date)

	r.coverageCacheMu.Lock()
	defer r.coverageCacheMu.Unlock()

	if cached, ok := r.coverageCache[key]; ok {
		return cached
	}
	rules := r.coverage[dayIndex(date)]
	r.coverageCache[key] = rules
	return rules
}

// EmployeeAvailability returns the hour-level availability records for an
// employee on a given weekday (0=Monday..6=Sunday). Absence of a record for
// an hour means "available, default type" per spec.md §4.4.
func (r *Resources) EmployeeAvailability(employeeID uuid.UUID, dayOfWeek int) []entity.EmployeeAvailability {
	byDay, ok := r.availability[employeeID]
	if !ok {
		return nil
	}
	return byDay[dayOfWeek]
}

// EmployeeAbsences returns the employee's absence windows that intersect
// [start, end].
func (r *Resources) EmployeeAbsences(employeeID uuid.UUID, start, end time.Time) []entity.Absence {
	all := r.absences[employeeID]
	if len(all) == 0 {
		return nil
	}
	s, e := truncate(start), truncate(end)
	var out []entity.Absence
	for _, a := range all {
		as, ae := truncate(a.StartDate), truncate(a.EndDate)
		if !ae.Before(s) && !as.After(e) {
			out = append(out, a)
		}
	}
	return out
}

// IsOnApprovedAbsence reports whether the employee has an approved absence
// covering date.
func (r *Resources) IsOnApprovedAbsence(employeeID uuid.UUID, date time.Time) bool {
	for _, a := range r.absences[employeeID] {
		if a.Approved && a.Covers(date) {
			return true
		}
	}
	return false
}
