package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medconnect/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	// TypeAvailabilityRefresh recomputes the cached views of one doctor.
	TypeAvailabilityRefresh = "availability:refresh"
	// TypeAvailabilitySnapshot rebuilds the available-now listing.
	TypeAvailabilitySnapshot = "availability:snapshot"
)

type RefreshPayload struct {
	DoctorID string `json:"doctorId"`
}

// Refresher is implemented by the doctor service.
type Refresher interface {
	RefreshDoctor(ctx context.Context, doctorID string) error
	RebuildAvailableNow(ctx context.Context) error
}

func NewRefreshTask(doctorID string) (*asynq.Task, error) {
	b, err := json.Marshal(RefreshPayload{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAvailabilityRefresh, b, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

func NewSnapshotTask() *asynq.Task {
	return asynq.NewTask(TypeAvailabilitySnapshot, nil, asynq.MaxRetry(0), asynq.Timeout(time.Minute))
}

// AsynqQueue enqueues refresh tasks. Repeated saves for the same doctor within
// the dedupe window collapse into one task.
type AsynqQueue struct {
	Client *asynq.Client
}

func (q *AsynqQueue) EnqueueRefresh(ctx context.Context, doctorID string) error {
	task, err := NewRefreshTask(doctorID)
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, asynq.Unique(10*time.Second))
	if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		return fmt.Errorf("failed to enqueue %s: %w", TypeAvailabilityRefresh, err)
	}
	return nil
}

// NewServeMux routes both task types to r.
func NewServeMux(r Refresher) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAvailabilityRefresh, handleRefresh(r))
	mux.HandleFunc(TypeAvailabilitySnapshot, handleSnapshot(r))
	return mux
}

func handleRefresh(r Refresher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil || p.DoctorID == "" {
			utils.GetLogger().Error("Invalid refresh payload", zap.ByteString("payload", task.Payload()))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		if err := r.RefreshDoctor(ctx, p.DoctorID); err != nil {
			utils.GetLogger().Error("Availability refresh failed", zap.String("doctorID", p.DoctorID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleSnapshot(r Refresher) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		if err := r.RebuildAvailableNow(ctx); err != nil {
			utils.GetLogger().Error("Doctor roster rebuild failed", zap.Error(err))
			return err
		}
		return nil
	}
}
