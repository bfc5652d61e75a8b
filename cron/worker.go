package cron

import (
	"fmt"
	"time"

	"medconnect/services/tasks"
	"medconnect/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker processes availability refresh tasks and periodically rebuilds the
// doctor roster.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// NewWorker builds the server and registers the snapshot task under
// snapshotCron, e.g. "@every 1m" or "*/5 * * * *".
func NewWorker(redisOpt asynq.RedisClientOpt, refresher tasks.Refresher, snapshotCron string) (*Worker, error) {
	logger := utils.GetLogger().Sugar()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
		Logger:      logger,
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger:   logger,
		Location: time.Local,
	})
	if snapshotCron != "" {
		entryID, err := scheduler.Register(snapshotCron, tasks.NewSnapshotTask())
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot schedule %q: %w", snapshotCron, err)
		}
		utils.GetLogger().Info("Registered roster rebuild", zap.String("entryID", entryID), zap.String("cron", snapshotCron))
	}

	return &Worker{server: srv, scheduler: scheduler, mux: tasks.NewServeMux(refresher)}, nil
}

// Start launches the scheduler and the task server, retrying the server start
// with a linear backoff.
func (w *Worker) Start() error {
	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = w.server.Start(w.mux); err == nil {
			utils.GetLogger().Info("Availability worker started")
			return nil
		}
		utils.GetLogger().Warn("Failed to start availability worker",
			zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		time.Sleep(time.Duration(attempts*2) * time.Second)
	}
	w.scheduler.Shutdown()
	return fmt.Errorf("worker did not start after %d attempts: %w", maxAttempts, err)
}

// Shutdown stops both halves, letting in-flight tasks finish.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
