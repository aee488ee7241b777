package job_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftform/shiftcraft/internal/entity"
	"github.com/liftform/shiftcraft/internal/job"
	"github.com/liftform/shiftcraft/internal/service"
	"github.com/liftform/shiftcraft/internal/validation"
)

type stubScheduleService struct {
	generateCalls int
	lastStart     time.Time
	lastEnd       time.Time
	err           error
}

func (s *stubScheduleService) Generate(ctx context.Context, startDate, endDate time.Time) (*service.GenerationResult, error) {
	s.generateCalls++
	s.lastStart = startDate
	s.lastEnd = endDate
	if s.err != nil {
		return nil, s.err
	}
	return &service.GenerationResult{
		Schedule: entity.NewSchedule(startDate, endDate, 1),
		Warnings: validation.NewResult(),
	}, nil
}

func (s *stubScheduleService) Validate(ctx context.Context, scheduleID uuid.UUID) (*validation.Result, error) {
	return validation.NewResult(), nil
}

func TestHandleScheduleGenerate_RunsGeneration(t *testing.T) {
	svc := &stubScheduleService{}
	h := job.NewJobHandlers(svc)

	payload, err := json.Marshal(job.ScheduleGeneratePayload{
		StartDate: "2026-08-03",
		EndDate:   "2026-08-09",
	})
	require.NoError(t, err)

	task := asynq.NewTask(job.TypeScheduleGenerate, payload)
	require.NoError(t, h.HandleScheduleGenerate(context.Background(), task))

	assert.Equal(t, 1, svc.generateCalls)
	assert.Equal(t, 2026, svc.lastStart.Year())
}

func TestHandleScheduleGenerate_InvalidDateSkipsRetry(t *testing.T) {
	svc := &stubScheduleService{}
	h := job.NewJobHandlers(svc)

	payload, err := json.Marshal(job.ScheduleGeneratePayload{
		StartDate: "not-a-date",
		EndDate:   "2026-08-09",
	})
	require.NoError(t, err)

	task := asynq.NewTask(job.TypeScheduleGenerate, payload)
	err = h.HandleScheduleGenerate(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
