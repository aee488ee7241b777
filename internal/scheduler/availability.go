package scheduler

import (
	"time"

	"github.com/google/uuid"

	"github.com/liftform/shiftcraft/internal/entity"
)

// AvailabilityResult is the outcome of checking one employee against one
// shift instance.
type AvailabilityResult struct {
	Available bool
	Type      entity.AvailabilityType
}

// CheckAvailability walks every hour a shift touches (splitting across the
// midnight boundary for overnight shifts per spec.md §4.4), looking up the
// employee's hour-level availability for each. Any hour explicitly marked
// unavailable, or an approved absence covering a touched date, makes the
// whole shift unavailable. Otherwise the combined type is the most
// permissive of FIXED/PREFERRED/AVAILABLE seen across the touched hours
// (FIXED over PREFERRED over AVAILABLE);
// an hour with no record defaults to AVAILABLE.
func CheckAvailability(res *Resources, employeeID uuid.UUID, date time.Time, shift entity.ShiftTemplate) (AvailabilityResult, error) {
	startMin, err := minutesOf(shift.StartTime)
	if err != nil {
		return AvailabilityResult{}, err
	}
	endMin, err := minutesOf(shift.EndTime)
	if err != nil {
		return AvailabilityResult{}, err
	}
	if endMin <= startMin {
		endMin += 24 * 60
	}

	hourStart := startMin / 60
	hourEnd := (endMin - 1) / 60 // inclusive

	combined := entity.AvailabilityAvailable
	seenDate := map[time.Time]bool{}

	for h := hourStart; h <= hourEnd; h++ {
		dayOffset := h / 24
		hourOfDay := h % 24
		d := truncate(date).AddDate(0, 0, dayOffset)

		if !seenDate[d] {
			seenDate[d] = true
			if res.IsOnApprovedAbsence(employeeID, d) {
				return AvailabilityResult{Available: false, Type: entity.AvailabilityUnavailable}, nil
			}
		}

		records := res.EmployeeAvailability(employeeID, dayIndex(d))
		rec, found := findHour(records, hourOfDay)
		if !found {
			combined = entity.MorePermissiveOf(combined, entity.AvailabilityAvailable)
			continue
		}
		if !rec.IsAvailable || rec.Type == entity.AvailabilityUnavailable {
			return AvailabilityResult{Available: false, Type: entity.AvailabilityUnavailable}, nil
		}
		combined = entity.MorePermissiveOf(combined, rec.Type)
	}

	return AvailabilityResult{Available: true, Type: combined}, nil
}

func findHour(records []entity.EmployeeAvailability, hour int) (entity.EmployeeAvailability, bool) {
	for _, r := range records {
		if r.Hour == hour {
			return r, true
		}
	}
	return entity.EmployeeAvailability{}, false
}
