package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProductChanged records a create, update or delete of a catalog product.
	TaskProductChanged = "catalog:product_changed"
)

// Product change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ProductChangedPayload describes a committed product mutation.
type ProductChangedPayload struct {
	Action        string    `json:"action"`
	ProductID     int64     `json:"product_id"`
	Name          string    `json:"name,omitempty"`
	SKU           string    `json:"sku,omitempty"`
	Price         float64   `json:"price,omitempty"`
	MissingLetter string    `json:"missing_letter,omitempty"`
	RequestID     string    `json:"request_id,omitempty"`
	At            time.Time `json:"at"`
}

// NewProductChangedTask constructs an Asynq task.
func NewProductChangedTask(payload ProductChangedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProductChanged, data, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

// TaskIdempotencyCleanup purges expired create idempotency keys.
const TaskIdempotencyCleanup = "catalog:idempotency_cleanup"

// IdempotencyCleanupPayload configures the retention window.
type IdempotencyCleanupPayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewIdempotencyCleanupTask builds the periodic cleanup task.
func NewIdempotencyCleanupTask(retention time.Duration) (*asynq.Task, error) {
	body, err := json.Marshal(IdempotencyCleanupPayload{RetentionHours: int(retention / time.Hour)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskIdempotencyCleanup, body, asynq.Queue(QueueDefault)), nil
}
