// Package memory provides an in-memory repository.Database implementation
// used for Phase 0 development and for tests that exercise the scheduler
// engine end to end without a running PostgreSQL instance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/repository"
)

// Store is a shared in-memory backing for all repositories returned by a
// Database. Mirrors the teacher's ScheduleRepository shape: one
// sync.RWMutex-guarded map per entity type, a query counter, and Reset for
// test isolation.
type Store struct {
	mu sync.RWMutex

	employees     map[uuid.UUID]*entity.Employee
	shiftTemplate map[uuid.UUID]*entity.ShiftTemplate
	coverage      map[uuid.UUID]*entity.CoverageRule
	absences      map[uuid.UUID]*entity.Absence
	availability  map[string]*entity.EmployeeAvailability // "employeeID/day/hour"
	schedules     map[uuid.UUID]*entity.Schedule

	queryCount int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		employees:     make(map[uuid.UUID]*entity.Employee),
		shiftTemplate: make(map[uuid.UUID]*entity.ShiftTemplate),
		coverage:      make(map[uuid.UUID]*entity.CoverageRule),
		absences:      make(map[uuid.UUID]*entity.Absence),
		availability:  make(map[string]*entity.EmployeeAvailability),
		schedules:     make(map[uuid.UUID]*entity.Schedule),
	}
}

// QueryCount returns the number of repository calls served (test use only).
func (s *Store) QueryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queryCount
}

// Reset clears every map and the query counter.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = make(map[uuid.UUID]*entity.Employee)
	s.shiftTemplate = make(map[uuid.UUID]*entity.ShiftTemplate)
	s.coverage = make(map[uuid.UUID]*entity.CoverageRule)
	s.absences = make(map[uuid.UUID]*entity.Absence)
	s.availability = make(map[string]*entity.EmployeeAvailability)
	s.schedules = make(map[uuid.UUID]*entity.Schedule)
	s.queryCount = 0
}

// Database is the in-memory repository.Database implementation backed by a
// single Store shared across all entity repositories.
type Database struct {
	store *Store

	employees     *EmployeeRepository
	shiftTemplate *ShiftTemplateRepository
	coverage      *CoverageRuleRepository
	absences      *AbsenceRepository
	availability  *EmployeeAvailabilityRepository
	schedules     *ScheduleRepository
}

// NewDatabase creates a Database over a fresh Store.
func NewDatabase() *Database {
	store := NewStore()
	return &Database{
		store:         store,
		employees:     &EmployeeRepository{store: store},
		shiftTemplate: &ShiftTemplateRepository{store: store},
		coverage:      &CoverageRuleRepository{store: store},
		absences:      &AbsenceRepository{store: store},
		availability:  &EmployeeAvailabilityRepository{store: store},
		schedules:     &ScheduleRepository{store: store},
	}
}

func (d *Database) EmployeeRepository() repository.EmployeeRepository { return d.employees }
func (d *Database) ShiftTemplateRepository() repository.ShiftTemplateRepository {
	return d.shiftTemplate
}
func (d *Database) CoverageRuleRepository() repository.CoverageRuleRepository { return d.coverage }
func (d *Database) AbsenceRepository() repository.AbsenceRepository           { return d.absences }
func (d *Database) EmployeeAvailabilityRepository() repository.EmployeeAvailabilityRepository {
	return d.availability
}
func (d *Database) ScheduleRepository() repository.ScheduleRepository { return d.schedules }

func (d *Database) Close() error { return nil }

func (d *Database) Health(ctx context.Context) error { return nil }

// BeginTx returns a Transaction over the same Store. The in-memory store has
// no rollback support; Commit and Rollback are both no-ops, matching the
// teacher's memory package (transactions only matter against a real
// database).
func (d *Database) BeginTx(ctx context.Context) (repository.Transaction, error) {
	return &memTx{db: d}, nil
}

type memTx struct {
	db *Database
}

func (t *memTx) Commit() error   { return nil }
func (t *memTx) Rollback() error { return nil }

func (t *memTx) EmployeeRepository() repository.EmployeeRepository { return t.db.employees }
func (t *memTx) ShiftTemplateRepository() repository.ShiftTemplateRepository {
	return t.db.shiftTemplate
}
func (t *memTx) CoverageRuleRepository() repository.CoverageRuleRepository { return t.db.coverage }
func (t *memTx) AbsenceRepository() repository.AbsenceRepository          { return t.db.absences }
func (t *memTx) EmployeeAvailabilityRepository() repository.EmployeeAvailabilityRepository {
	return t.db.availability
}
func (t *memTx) ScheduleRepository() repository.ScheduleRepository { return t.db.schedules }

// EmployeeRepository is the in-memory repository.EmployeeRepository.
type EmployeeRepository struct{ store *Store }

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.CreatedAt = entity.Now()
	e.UpdatedAt = e.CreatedAt
	r.store.employees[e.ID] = e
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	e, ok := r.store.employees[id]
	if !ok || e.IsDeleted() {
		return nil, &repository.NotFoundError{ResourceType: "Employee", ResourceID: id.String()}
	}
	return e, nil
}

func (r *EmployeeRepository) GetActive(ctx context.Context) ([]*entity.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.Employee
	for _, e := range r.store.employees {
		if e.IsActive && !e.IsDeleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*entity.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.Employee
	for _, e := range r.store.employees {
		if !e.IsDeleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.employees[e.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Employee", ResourceID: e.ID.String()}
	}
	e.UpdatedAt = entity.Now()
	r.store.employees[e.ID] = e
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	e, ok := r.store.employees[id]
	if !ok {
		return &repository.NotFoundError{ResourceType: "Employee", ResourceID: id.String()}
	}
	e.SoftDelete()
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var n int64
	for _, e := range r.store.employees {
		if !e.IsDeleted() {
			n++
		}
	}
	return n, nil
}

// ShiftTemplateRepository is the in-memory repository.ShiftTemplateRepository.
type ShiftTemplateRepository struct{ store *Store }

func (r *ShiftTemplateRepository) Create(ctx context.Context, s *entity.ShiftTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = entity.Now()
	r.store.shiftTemplate[s.ID] = s
	return nil
}

func (r *ShiftTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ShiftTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	s, ok := r.store.shiftTemplate[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "ShiftTemplate", ResourceID: id.String()}
	}
	return s, nil
}

func (r *ShiftTemplateRepository) GetAll(ctx context.Context) ([]*entity.ShiftTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	out := make([]*entity.ShiftTemplate, 0, len(r.store.shiftTemplate))
	for _, s := range r.store.shiftTemplate {
		out = append(out, s)
	}
	return out, nil
}

func (r *ShiftTemplateRepository) Update(ctx context.Context, s *entity.ShiftTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.shiftTemplate[s.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "ShiftTemplate", ResourceID: s.ID.String()}
	}
	r.store.shiftTemplate[s.ID] = s
	return nil
}

func (r *ShiftTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.shiftTemplate[id]; !ok {
		return &repository.NotFoundError{ResourceType: "ShiftTemplate", ResourceID: id.String()}
	}
	delete(r.store.shiftTemplate, id)
	return nil
}

func (r *ShiftTemplateRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	return int64(len(r.store.shiftTemplate)), nil
}

// CoverageRuleRepository is the in-memory repository.CoverageRuleRepository.
type CoverageRuleRepository struct{ store *Store }

func (r *CoverageRuleRepository) Create(ctx context.Context, c *entity.CoverageRule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.store.coverage[c.ID] = c
	return nil
}

func (r *CoverageRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CoverageRule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	c, ok := r.store.coverage[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "CoverageRule", ResourceID: id.String()}
	}
	return c, nil
}

func (r *CoverageRuleRepository) GetByDayIndex(ctx context.Context, dayIndex int) ([]*entity.CoverageRule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.CoverageRule
	for _, c := range r.store.coverage {
		if c.DayIndex == dayIndex {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CoverageRuleRepository) GetAll(ctx context.Context) ([]*entity.CoverageRule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	out := make([]*entity.CoverageRule, 0, len(r.store.coverage))
	for _, c := range r.store.coverage {
		out = append(out, c)
	}
	return out, nil
}

func (r *CoverageRuleRepository) Update(ctx context.Context, c *entity.CoverageRule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.coverage[c.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "CoverageRule", ResourceID: c.ID.String()}
	}
	r.store.coverage[c.ID] = c
	return nil
}

func (r *CoverageRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.coverage[id]; !ok {
		return &repository.NotFoundError{ResourceType: "CoverageRule", ResourceID: id.String()}
	}
	delete(r.store.coverage, id)
	return nil
}

func (r *CoverageRuleRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	return int64(len(r.store.coverage)), nil
}

// AbsenceRepository is the in-memory repository.AbsenceRepository.
type AbsenceRepository struct{ store *Store }

func (r *AbsenceRepository) Create(ctx context.Context, a *entity.Absence) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.store.absences[a.ID] = a
	return nil
}

func (r *AbsenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Absence, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	a, ok := r.store.absences[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "Absence", ResourceID: id.String()}
	}
	return a, nil
}

func (r *AbsenceRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.Absence, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.Absence
	for _, a := range r.store.absences {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AbsenceRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Absence, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.Absence
	for _, a := range r.store.absences {
		if !a.EndDate.Before(startDate) && !a.StartDate.After(endDate) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AbsenceRepository) Update(ctx context.Context, a *entity.Absence) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.absences[a.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Absence", ResourceID: a.ID.String()}
	}
	r.store.absences[a.ID] = a
	return nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.absences[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Absence", ResourceID: id.String()}
	}
	delete(r.store.absences, id)
	return nil
}

func (r *AbsenceRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	return int64(len(r.store.absences)), nil
}

// EmployeeAvailabilityRepository is the in-memory
// repository.EmployeeAvailabilityRepository. Rows are keyed by
// (employee, day, hour) since availability has no natural surrogate id.
type EmployeeAvailabilityRepository struct{ store *Store }

func availKey(employeeID uuid.UUID, day, hour int) string {
	return employeeID.String() + "/" + string(rune('0'+day)) + "/" + string(rune('0'+hour/10)) + string(rune('0'+hour%10))
}

func (r *EmployeeAvailabilityRepository) Create(ctx context.Context, a *entity.EmployeeAvailability) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	r.store.availability[availKey(a.EmployeeID, a.DayOfWeek, a.Hour)] = a
	return nil
}

func (r *EmployeeAvailabilityRepository) GetByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*entity.EmployeeAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.EmployeeAvailability
	for _, a := range r.store.availability {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *EmployeeAvailabilityRepository) GetByEmployeeAndDay(ctx context.Context, employeeID uuid.UUID, dayOfWeek int) ([]*entity.EmployeeAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.EmployeeAvailability
	for _, a := range r.store.availability {
		if a.EmployeeID == employeeID && a.DayOfWeek == dayOfWeek {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *EmployeeAvailabilityRepository) Upsert(ctx context.Context, a *entity.EmployeeAvailability) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	r.store.availability[availKey(a.EmployeeID, a.DayOfWeek, a.Hour)] = a
	return nil
}

func (r *EmployeeAvailabilityRepository) Delete(ctx context.Context, employeeID uuid.UUID, dayOfWeek, hour int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	key := availKey(employeeID, dayOfWeek, hour)
	if _, ok := r.store.availability[key]; !ok {
		return &repository.NotFoundError{ResourceType: "EmployeeAvailability", ResourceID: key}
	}
	delete(r.store.availability, key)
	return nil
}

func (r *EmployeeAvailabilityRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	return int64(len(r.store.availability)), nil
}

// ScheduleRepository is the in-memory repository.ScheduleRepository.
type ScheduleRepository struct{ store *Store }

func (r *ScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.store.schedules[s.ID] = s
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	s, ok := r.store.schedules[id]
	if !ok {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	return s, nil
}

func (r *ScheduleRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*entity.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var out []*entity.Schedule
	for _, s := range r.store.schedules {
		if !s.StartDate.After(endDate) && !s.EndDate.Before(startDate) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ScheduleRepository) GetLatestVersion(ctx context.Context, startDate, endDate time.Time) (*entity.Schedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	var best *entity.Schedule
	for _, s := range r.store.schedules {
		if !s.StartDate.Equal(startDate) || !s.EndDate.Equal(endDate) {
			continue
		}
		if best == nil || s.Version > best.Version {
			best = s
		}
	}
	if best == nil {
		return nil, &repository.NotFoundError{ResourceType: "Schedule", ResourceID: "latest"}
	}
	return best, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.schedules[s.ID]; !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: s.ID.String()}
	}
	r.store.schedules[s.ID] = s
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.queryCount++
	if _, ok := r.store.schedules[id]; !ok {
		return &repository.NotFoundError{ResourceType: "Schedule", ResourceID: id.String()}
	}
	delete(r.store.schedules, id)
	return nil
}

func (r *ScheduleRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	r.store.queryCount++
	return int64(len(r.store.schedules)), nil
}
