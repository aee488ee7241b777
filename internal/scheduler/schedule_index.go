package scheduler

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
)

// ScheduleIndex is the mutable, incrementally-built view of assignments made
// so far during a generation run (or the final view during validation). It
// is built fresh per run; Resources stays read-only throughout.
type ScheduleIndex struct {
	res *Resources

	byEmployeeDate map[uuid.UUID]map[time.Time]entity.Assignment
	byEmployee     map[uuid.UUID][]entity.Assignment
}

// NewScheduleIndex creates an empty index backed by res for shift lookups.
func NewScheduleIndex(res *Resources) *ScheduleIndex {
	return &ScheduleIndex{
		res:            res,
		byEmployeeDate: make(map[uuid.UUID]map[time.Time]entity.Assignment),
		byEmployee:     make(map[uuid.UUID][]entity.Assignment),
	}
}

// Add records a. EMPTY placeholder assignments are kept for lookup purposes
// but never counted as a "real" shift by the helpers below.
func (s *ScheduleIndex) Add(a entity.Assignment) {
	day := truncate(a.Date)

	byDate, ok := s.byEmployeeDate[a.EmployeeID]
	if !ok {
		byDate = make(map[time.Time]entity.Assignment)
		s.byEmployeeDate[a.EmployeeID] = byDate
	}
	byDate[day] = a

	s.byEmployee[a.EmployeeID] = append(s.byEmployee[a.EmployeeID], a)
}

// HasRealAssignment reports whether the employee already has a non-empty
// assignment on date (the already-assigned hard constraint).
func (s *ScheduleIndex) HasRealAssignment(employeeID uuid.UUID, date time.Time) bool {
	byDate, ok := s.byEmployeeDate[employeeID]
	if !ok {
		return false
	}
	a, ok := byDate[truncate(date)]
	return ok && !a.IsEmpty()
}

// AssignmentOn returns the employee's assignment on date, if any.
func (s *ScheduleIndex) AssignmentOn(employeeID uuid.UUID, date time.Time) (entity.Assignment, bool) {
	byDate, ok := s.byEmployeeDate[employeeID]
	if !ok {
		return entity.Assignment{}, false
	}
	a, ok := byDate[truncate(date)]
	return a, ok
}

// sortedAssignments returns the employee's real (non-empty) assignments
// sorted by date ascending.
func (s *ScheduleIndex) sortedAssignments(employeeID uuid.UUID) []entity.Assignment {
	all := s.byEmployee[employeeID]
	out := make([]entity.Assignment, 0, len(all))
	for _, a := range all {
		if !a.IsEmpty() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// shiftOf resolves the ShiftTemplate referenced by an assignment.
func (s *ScheduleIndex) shiftOf(a entity.Assignment) (*entity.ShiftTemplate, bool) {
	if a.ShiftID == nil {
		return nil, false
	}
	return s.res.GetShift(*a.ShiftID)
}

// ConsecutiveDaysEndingBefore counts the run of consecutive calendar days
// with a real assignment immediately preceding date (date itself excluded).
func (s *ScheduleIndex) ConsecutiveDaysEndingBefore(employeeID uuid.UUID, date time.Time) int {
	count := 0
	cursor := truncate(date).AddDate(0, 0, -1)
	for {
		a, ok := s.AssignmentOn(employeeID, cursor)
		if !ok || a.IsEmpty() {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// WeeklyHours sums the duration of real assignments for the employee within
// the Monday-anchored week containing date.
func (s *ScheduleIndex) WeeklyHours(employeeID uuid.UUID, date time.Time) (float64, error) {
	ws := weekStart(date)
	we := ws.AddDate(0, 0, 6)

	total := 0.0
	for _, a := range s.byEmployee[employeeID] {
		if a.IsEmpty() {
			continue
		}
		d := truncate(a.Date)
		if d.Before(ws) || d.After(we) {
			continue
		}
		shift, ok := s.shiftOf(a)
		if !ok {
			continue
		}
		hrs, err := shiftDuration(shift)
		if err != nil {
			return 0, err
		}
		total += hrs
	}
	return total, nil
}

// WeeklyShiftCount counts real assignments for the employee within the week
// containing date.
func (s *ScheduleIndex) WeeklyShiftCount(employeeID uuid.UUID, date time.Time) int {
	ws := weekStart(date)
	we := ws.AddDate(0, 0, 6)

	count := 0
	for _, a := range s.byEmployee[employeeID] {
		if a.IsEmpty() {
			continue
		}
		d := truncate(a.Date)
		if d.Before(ws) || d.After(we) {
			continue
		}
		count++
	}
	return count
}

// WeeklyShiftTypeCount counts real assignments of the given shift type for
// the employee within the week containing date.
func (s *ScheduleIndex) WeeklyShiftTypeCount(employeeID uuid.UUID, date time.Time, shiftType entity.ShiftType) int {
	ws := weekStart(date)
	we := ws.AddDate(0, 0, 6)

	count := 0
	for _, a := range s.byEmployee[employeeID] {
		if a.IsEmpty() {
			continue
		}
		d := truncate(a.Date)
		if d.Before(ws) || d.After(we) {
			continue
		}
		shift, ok := s.shiftOf(a)
		if !ok || shift.ShiftType != shiftType {
			continue
		}
		count++
	}
	return count
}

// PreviousAssignment returns the employee's most recent real assignment
// strictly before date, if any.
func (s *ScheduleIndex) PreviousAssignment(employeeID uuid.UUID, date time.Time) (entity.Assignment, bool) {
	sorted := s.sortedAssignments(employeeID)
	var best *entity.Assignment
	for i := range sorted {
		if !truncate(sorted[i].Date).Before(truncate(date)) {
			break
		}
		best = &sorted[i]
	}
	if best == nil {
		return entity.Assignment{}, false
	}
	return *best, true
}

// AllAssignments returns every recorded assignment (including EMPTY
// placeholders), primarily for the Validator's final-schedule scans.
func (s *ScheduleIndex) AllAssignments() []entity.Assignment {
	var out []entity.Assignment
	for _, list := range s.byEmployee {
		out = append(out, list...)
	}
	return out
}

func shiftDuration(shift *entity.ShiftTemplate) (float64, error) {
	return durationHHMM(shift.StartTime, shift.EndTime)
}
