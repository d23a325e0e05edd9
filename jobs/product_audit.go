package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/productdesk/internal/jobs"
	"github.com/odyssey-erp/productdesk/internal/shared"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

const auditActor = "catalog-service"

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// ProductAuditJob writes product change events into the audit trail.
type ProductAuditJob struct {
	Audit   AuditRecorder
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewProductAuditJob wires dependencies for the audit handler.
func NewProductAuditJob(audit AuditRecorder, logger *slog.Logger, metrics *jobmetrics.Metrics) *ProductAuditJob {
	return &ProductAuditJob{Audit: audit, Logger: logger, Metrics: metrics}
}

// Handle processes TaskProductChanged tasks.
func (j *ProductAuditJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Audit == nil {
		return errors.New("product audit: handler not configured")
	}
	var payload ProductChangedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.ProductID <= 0 || payload.Action == "" {
		j.logger().Warn("product audit: malformed payload", slog.String("action", payload.Action))
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskProductChanged)
	meta := map[string]any{"request_id": payload.RequestID}
	if payload.Action != ActionDeleted {
		meta["name"] = payload.Name
		meta["sku"] = payload.SKU
		meta["price"] = payload.Price
		meta["missing_letter"] = payload.MissingLetter
	}
	err := j.Audit.Record(ctx, shared.AuditLog{
		Actor:    auditActor,
		Action:   "product." + payload.Action,
		Entity:   "product",
		EntityID: strconv.FormatInt(payload.ProductID, 10),
		Meta:     meta,
		At:       payload.At,
	})
	if err != nil {
		j.logger().Error("product audit: record", slog.Int64("product_id", payload.ProductID), slog.Any("error", err))
		return tracker.End(err)
	}
	j.metrics().AddProductChange(payload.Action)
	return tracker.End(nil)
}

func (j *ProductAuditJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *ProductAuditJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
