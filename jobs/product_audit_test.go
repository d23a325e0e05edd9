package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/productdesk/internal/jobs"
	"github.com/odyssey-erp/productdesk/internal/shared"
)

type recordingAudit struct {
	logs []shared.AuditLog
	err  error
}

func (r *recordingAudit) Record(_ context.Context, log shared.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

func newAuditJob(audit AuditRecorder) *ProductAuditJob {
	return NewProductAuditJob(audit, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
}

func TestProductAuditRecordsCreate(t *testing.T) {
	audit := &recordingAudit{}
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewProductChangedTask(ProductChangedPayload{
		Action: ActionCreated, ProductID: 7, Name: "Mouse", SKU: "MS-1", Price: 89.9, MissingLetter: "a", At: at,
	})
	require.NoError(t, err)

	require.NoError(t, newAuditJob(audit).Handle(context.Background(), task))

	require.Len(t, audit.logs, 1)
	log := audit.logs[0]
	assert.Equal(t, "product.created", log.Action)
	assert.Equal(t, "product", log.Entity)
	assert.Equal(t, "7", log.EntityID)
	assert.Equal(t, "MS-1", log.Meta["sku"])
	assert.Equal(t, at, log.At)
}

func TestProductAuditDeleteOmitsFields(t *testing.T) {
	audit := &recordingAudit{}
	task, err := NewProductChangedTask(ProductChangedPayload{Action: ActionDeleted, ProductID: 3, Name: "ignored"})
	require.NoError(t, err)

	require.NoError(t, newAuditJob(audit).Handle(context.Background(), task))

	require.Len(t, audit.logs, 1)
	assert.NotContains(t, audit.logs[0].Meta, "name")
}

func TestProductAuditSkipsMalformedPayload(t *testing.T) {
	audit := &recordingAudit{}

	err := newAuditJob(audit).Handle(context.Background(), asynq.NewTask(TaskProductChanged, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	task, _ := NewProductChangedTask(ProductChangedPayload{Action: ActionUpdated})
	err = newAuditJob(audit).Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, audit.logs)
}

func TestProductAuditPropagatesStoreError(t *testing.T) {
	audit := &recordingAudit{err: errors.New("db down")}
	task, _ := NewProductChangedTask(ProductChangedPayload{Action: ActionUpdated, ProductID: 1})

	err := newAuditJob(audit).Handle(context.Background(), task)

	assert.EqualError(t, err, "db down")
}

type purger struct{ olderThan time.Duration }

func (p *purger) Cleanup(_ context.Context, olderThan time.Duration) error {
	p.olderThan = olderThan
	return nil
}

func TestIdempotencyCleanupUsesRetention(t *testing.T) {
	store := &purger{}
	job := &IdempotencyCleanupJob{Store: store, Metrics: jobmetrics.NewMetrics(prometheus.NewRegistry())}
	task, err := NewIdempotencyCleanupTask(48 * time.Hour)
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))

	assert.Equal(t, 48*time.Hour, store.olderThan)
}
