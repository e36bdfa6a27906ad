package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	StepObjectDelete = "object_delete"
	StepRecordDelete = "record_delete"
	StepNotify       = "notify"
)

const (
	StepStatusOK      = "ok"
	StepStatusFailed  = "failed"
	StepStatusSkipped = "skipped"
)

// TakedownEvent summarises one compensating sequence so an external sweep can
// reconcile anything left behind.
type TakedownEvent struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	Fingerprint string            `json:"fingerprint"`
	ObjectKey   string            `json:"object_key"`
	Recipient   string            `json:"recipient"`
	Reason      string            `json:"reason"`
	Score       float64           `json:"score"`
	Steps       map[string]string `json:"steps"`
	Attempts    int               `json:"record_delete_attempts"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

//go:generate mockery --name=EventPublisher --dir=. --output=./mocks --filename=event_publisher_mock.go --case=underscore --with-expecter
type EventPublisher interface {
	Publish(ctx context.Context, evt *TakedownEvent) error
	Close()
}
