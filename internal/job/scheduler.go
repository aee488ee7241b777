// Package job enqueues and executes schedule-generation work on Asynq,
// keeping long-running engine passes off the HTTP request path.
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TypeScheduleGenerate is the Asynq task type for a generation run.
const TypeScheduleGenerate = "schedule:generate"

// JobScheduler enqueues schedule-generation tasks onto Redis via Asynq.
type JobScheduler struct {
	client *asynq.Client
}

// NewJobScheduler opens a client against redisAddr and verifies connectivity.
func NewJobScheduler(redisAddr string) (*JobScheduler, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &JobScheduler{client: client}, nil
}

// Close releases the underlying Asynq client.
func (s *JobScheduler) Close() error {
	return s.client.Close()
}

// ScheduleGeneratePayload is the Asynq task payload for a generation run.
type ScheduleGeneratePayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// EnqueueScheduleGenerate enqueues a generation run for [startDate, endDate].
func (s *JobScheduler) EnqueueScheduleGenerate(ctx context.Context, startDate, endDate time.Time) (*asynq.TaskInfo, error) {
	payload := ScheduleGeneratePayload{
		StartDate: startDate.Format("2006-01-02"),
		EndDate:   endDate.Format("2006-01-02"),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeScheduleGenerate, payloadBytes)
	info, err := s.client.EnqueueContext(ctx, task, asynq.MaxRetry(1), asynq.Timeout(10*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue schedule generation job: %w", err)
	}
	return info, nil
}
