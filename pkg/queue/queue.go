// Package queue hands document-processing jobs from the API server to
// the worker through asynq. The payload carries only the document ID;
// the worker loads everything else from the store.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/canusa-hub/knowledge-nexus/config"
)

const TaskTypeDocumentProcess = "document:process"

// DocumentTask is the payload of a document:process task.
type DocumentTask struct {
	DocumentID string `json:"document_id"`
}

// Queue enqueues background jobs.
type Queue interface {
	EnqueueDocument(ctx context.Context, documentID string) error
	Close() error
}

var _ Queue = (*AsynqQueue)(nil)

type AsynqQueue struct {
	client  *asynq.Client
	retries int
	timeout time.Duration
}

type Config struct {
	RedisAddr string
	RedisDB   int
	// MaxRetries bounds redelivery of a failing document task.
	MaxRetries int
	// Timeout aborts a single processing attempt.
	Timeout time.Duration
}

// DefaultConfig derives queue settings from the environment.
func DefaultConfig() *Config {
	redisCfg := config.GetRedisConfig()
	return &Config{
		RedisAddr:  redisCfg.Addr,
		RedisDB:    redisCfg.DB,
		MaxRetries: 3,
		Timeout:    10 * time.Minute,
	}
}

func NewAsynqQueue(cfg *Config) *AsynqQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	return &AsynqQueue{
		client:  client,
		retries: cfg.MaxRetries,
		timeout: cfg.Timeout,
	}
}

func (q *AsynqQueue) EnqueueDocument(ctx context.Context, documentID string) error {
	payload, err := json.Marshal(DocumentTask{DocumentID: documentID})
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	task := asynq.NewTask(TaskTypeDocumentProcess, payload,
		asynq.MaxRetry(q.retries),
		asynq.Timeout(q.timeout),
		// One task per document; re-uploading with force replaces it.
		asynq.TaskID(documentID),
	)

	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	return nil
}

func (q *AsynqQueue) Close() error {
	return q.client.Close()
}
