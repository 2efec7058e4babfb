package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
	"github.com/canusa-hub/knowledge-nexus/pkg/queue"
)

type fakeProcessor struct {
	err   error
	calls []string
}

func (p *fakeProcessor) Process(_ context.Context, documentID string) error {
	p.calls = append(p.calls, documentID)
	return p.err
}

func newTestWorker(proc *fakeProcessor) *Worker {
	return New(&Config{RedisAddr: "localhost:6379", Concurrency: 1}, proc, logger.NewTestLogger())
}

func documentTask(t *testing.T, documentID string) *asynq.Task {
	t.Helper()
	payload := []byte(fmt.Sprintf(`{"document_id":%q}`, documentID))
	return asynq.NewTask(queue.TaskTypeDocumentProcess, payload)
}

func TestHandleDocumentProcess(t *testing.T) {
	proc := &fakeProcessor{}
	w := newTestWorker(proc)

	err := w.handleDocumentProcess(context.Background(), documentTask(t, "doc_1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"doc_1"}, proc.calls)
}

func TestHandleDocumentProcessSkipsMalformedPayload(t *testing.T) {
	w := newTestWorker(&fakeProcessor{})

	task := asynq.NewTask(queue.TaskTypeDocumentProcess, []byte("not json"))
	err := w.handleDocumentProcess(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentProcessSkipsEmptyDocumentID(t *testing.T) {
	w := newTestWorker(&fakeProcessor{})

	err := w.handleDocumentProcess(context.Background(), documentTask(t, ""))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentProcessDoesNotRetryPermanentFailures(t *testing.T) {
	proc := &fakeProcessor{err: fmt.Errorf("%w: %w", models.ErrPermanent, models.ErrNoText)}
	w := newTestWorker(proc)

	err := w.handleDocumentProcess(context.Background(), documentTask(t, "doc_1"))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDocumentProcessRetriesTransientFailures(t *testing.T) {
	proc := &fakeProcessor{err: errors.New("redis connection reset")}
	w := newTestWorker(proc)

	err := w.handleDocumentProcess(context.Background(), documentTask(t, "doc_1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
