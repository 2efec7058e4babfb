// Package worker runs the background side of the document pipeline: an
// asynq server that consumes document:process tasks and drives the
// document service through extraction, analysis and article seeding.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/queue"
)

// Processor is the part of the document service the worker drives.
type Processor interface {
	Process(ctx context.Context, documentID string) error
}

type Config struct {
	RedisAddr   string
	RedisDB     int
	Concurrency int
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	proc   Processor
	log    logger.Logger
}

func New(cfg *Config, proc Processor, log logger.Logger) *Worker {
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB},
		asynq.Config{
			Concurrency: cfg.Concurrency,
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				return time.Duration(n) * time.Minute
			},
		},
	)

	w := &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
		proc:   proc,
		log:    log.Named("worker"),
	}
	w.mux.HandleFunc(queue.TaskTypeDocumentProcess, w.handleDocumentProcess)
	return w
}

func (w *Worker) handleDocumentProcess(ctx context.Context, t *asynq.Task) error {
	var task queue.DocumentTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		w.log.Error("failed to unmarshal task",
			logger.Error(err),
			logger.String("payload", string(t.Payload())))
		// Malformed payloads never become valid; skip retries.
		return fmt.Errorf("failed to unmarshal task: %v: %w", err, asynq.SkipRetry)
	}
	if task.DocumentID == "" {
		return fmt.Errorf("task without document_id: %w", asynq.SkipRetry)
	}

	w.log.Info("processing document", logger.String("document_id", task.DocumentID))

	if err := w.proc.Process(ctx, task.DocumentID); err != nil {
		w.log.Error("document processing failed",
			logger.String("document_id", task.DocumentID),
			logger.Error(err))
		// Deterministic failures stay failed; re-running the pipeline
		// would only flip the document back to processing.
		if errors.Is(err, models.ErrPermanent) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

// Run blocks until the context is cancelled, then shuts the server down.
func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()
	return w.server.Run(w.mux)
}
