package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/liftform/shiftcraft/internal/service"
)

// JobHandlers executes the task types this package defines.
type JobHandlers struct {
	schedule service.ScheduleService
}

// NewJobHandlers builds a JobHandlers over a ScheduleService.
func NewJobHandlers(schedule service.ScheduleService) *JobHandlers {
	return &JobHandlers{schedule: schedule}
}

// RegisterHandlers wires every task type this package handles into mux.
func (h *JobHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeScheduleGenerate, h.HandleScheduleGenerate)
}

// HandleScheduleGenerate runs a generation pass for the task's date range.
func (h *JobHandlers) HandleScheduleGenerate(ctx context.Context, t *asynq.Task) error {
	var payload ScheduleGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", payload.StartDate, asynq.SkipRetry)
	}
	endDate, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", payload.EndDate, asynq.SkipRetry)
	}

	log.Printf("generating schedule: %s to %s", payload.StartDate, payload.EndDate)

	result, err := h.schedule.Generate(ctx, startDate, endDate)
	if err != nil {
		log.Printf("schedule generation failed: %v", err)
		return fmt.Errorf("schedule generation failed: %w", err)
	}

	log.Printf("schedule generation completed: id=%s entries=%d errors=%d warnings=%d",
		result.Schedule.ID, len(result.Schedule.Entries), result.Warnings.ErrorCount(), result.Warnings.WarningCount())

	return nil
}
