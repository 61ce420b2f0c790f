package scheduler

import (
	"context"

	"github.com/hibiken/asynq"

	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// Worker processes background tasks from the queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker creates a worker bound to the configured queue.
func NewWorker(cfg config.SchedulerConfig, log *logger.Logger) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: cfg.GetAsynqConcurrency(),
		Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
		Logger:      asynqLogger{log},
	})

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}, nil
}

// HandleFunc registers a handler for a task type.
func (w *Worker) HandleFunc(taskType string, handler func(ctx context.Context, task *asynq.Task) error) {
	w.mux.HandleFunc(taskType, handler)
}

// Run processes tasks until the context is canceled, then drains in-flight
// work.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}

	<-ctx.Done()
	w.log.Info("worker shutting down")
	w.server.Shutdown()
	return nil
}

// asynqLogger adapts the structured logger to asynq's logging interface.
type asynqLogger struct {
	log *logger.Logger
}

func (a asynqLogger) Debug(args ...interface{}) { a.log.Debug("asynq", "args", args) }
func (a asynqLogger) Info(args ...interface{})  { a.log.Info("asynq", "args", args) }
func (a asynqLogger) Warn(args ...interface{})  { a.log.Warn("asynq", "args", args) }
func (a asynqLogger) Error(args ...interface{}) { a.log.Error("asynq", "args", args) }
func (a asynqLogger) Fatal(args ...interface{}) { a.log.Error("asynq_fatal", "args", args) }
