package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/domain/image"
	domainModeration "github.com/NeuralTrust/TrustImage/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	"github.com/NeuralTrust/TrustImage/pkg/domain/storage"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRecordDeleteAttempts = 3
	DefaultRecordDeleteBackoff  = time.Second
	DefaultStepTimeout          = 10 * time.Second

	removalTitle   = "Image removed"
	removalMessage = "Your image was removed after an automated content review (%s)."
)

// Job is one deferred moderation request. Owner may be empty for uploads
// that carry neither a user id nor a device id; no notification is sent then.
type Job struct {
	ID         uuid.UUID
	Blob       audit.ContentBlob
	Owner      notification.Recipient
	EnqueuedAt time.Time
}

func NewJob(blob audit.ContentBlob, owner notification.Recipient) Job {
	return Job{
		ID:         uuid.New(),
		Blob:       blob,
		Owner:      owner,
		EnqueuedAt: time.Now(),
	}
}

// Report describes what one run did. Steps is only populated when the
// content was removed. Abandoned means the run was cancelled before every
// stage could judge the content; the upload is neither kept nor removed.
type Report struct {
	JobID     uuid.UUID
	Result    *audit.Result
	Removed   bool
	Abandoned bool
	Steps     map[string]string
	Attempts  int
	Err       error
}

type TaskConfig struct {
	RecordDeleteAttempts int
	RecordDeleteBackoff  time.Duration
	StepTimeout          time.Duration
}

func (c TaskConfig) withDefaults() TaskConfig {
	if c.RecordDeleteAttempts <= 0 {
		c.RecordDeleteAttempts = DefaultRecordDeleteAttempts
	}
	if c.RecordDeleteBackoff <= 0 {
		c.RecordDeleteBackoff = DefaultRecordDeleteBackoff
	}
	if c.StepTimeout <= 0 {
		c.StepTimeout = DefaultStepTimeout
	}
	return c
}

//go:generate mockery --name=Task --dir=. --output=./mocks --filename=task_mock.go --case=underscore --with-expecter
type Task interface {
	// Run evaluates the job exactly once and unwinds the publish when the
	// content is unsafe. It never fails; problems are logged and reported.
	Run(ctx context.Context, job Job) Report
}

type task struct {
	logger        *logrus.Logger
	evaluator     audit.Evaluator
	objects       storage.ObjectStore
	records       image.Repository
	notifications notification.Repository
	publisher     domainModeration.EventPublisher
	cfg           TaskConfig
}

func NewTask(
	logger *logrus.Logger,
	evaluator audit.Evaluator,
	objects storage.ObjectStore,
	records image.Repository,
	notifications notification.Repository,
	publisher domainModeration.EventPublisher,
	cfg TaskConfig,
) Task {
	return &task{
		logger:        logger,
		evaluator:     evaluator,
		objects:       objects,
		records:       records,
		notifications: notifications,
		publisher:     publisher,
		cfg:           cfg.withDefaults(),
	}
}

func (t *task) Run(ctx context.Context, job Job) Report {
	report := Report{JobID: job.ID}
	log := t.logger.WithFields(logrus.Fields{
		"job_id":      job.ID,
		"fingerprint": job.Blob.Fingerprint,
		"key":         job.Blob.Key,
	})

	result, err := t.evaluator.Evaluate(ctx, job.Blob)
	if err != nil {
		log.WithError(err).Error("moderation evaluation failed")
		prometheus.ModerationJobs.WithLabelValues("invalid").Inc()
		report.Err = err
		return report
	}
	report.Result = result
	if result.Safe && !result.Conclusive() && ctx.Err() != nil {
		prometheus.ModerationJobs.WithLabelValues("abandoned").Inc()
		log.WithError(ctx.Err()).WithField("skipped", len(result.Skipped)).
			Warn("moderation cancelled before a verdict, left for sweep")
		report.Abandoned = true
		report.Err = ctx.Err()
		return report
	}
	if result.Safe {
		prometheus.ModerationJobs.WithLabelValues("kept").Inc()
		log.WithField("skipped", len(result.Skipped)).Info("moderation passed")
		return report
	}

	log.WithFields(logrus.Fields{
		"reason": result.Reason,
		"score":  result.Score,
	}).Warn("unsafe content, removing published asset")

	// once the verdict is in, the unwind runs to completion even if the
	// scheduler is shutting down
	ctx = context.WithoutCancel(ctx)
	report.Removed = true
	report.Steps = map[string]string{
		domainModeration.StepObjectDelete: t.deleteObject(ctx, log, job),
	}
	report.Steps[domainModeration.StepRecordDelete], report.Attempts = t.deleteRecords(ctx, log, job)
	report.Steps[domainModeration.StepNotify] = t.notifyOwner(ctx, log, job, result)

	for step, status := range report.Steps {
		prometheus.CompensationSteps.WithLabelValues(step, status).Inc()
	}
	prometheus.ModerationJobs.WithLabelValues("removed").Inc()
	t.publish(ctx, log, job, result, report)
	return report
}

func (t *task) deleteObject(ctx context.Context, log *logrus.Entry, job Job) string {
	if job.Blob.Key == "" {
		log.Warn("no object key, skipping object delete")
		return domainModeration.StepStatusSkipped
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.StepTimeout)
	defer cancel()
	if err := t.objects.Delete(ctx, job.Blob.Key); err != nil {
		log.WithError(err).Error("failed to delete stored object, left for sweep")
		return domainModeration.StepStatusFailed
	}
	log.Info("stored object deleted")
	return domainModeration.StepStatusOK
}

// deleteRecords retries only lock contention; any other error ends the step.
func (t *task) deleteRecords(ctx context.Context, log *logrus.Entry, job Job) (string, int) {
	attempts := 0
	var removed int64
	backoff := retry.WithMaxRetries(uint64(t.cfg.RecordDeleteAttempts-1), retry.NewConstant(t.cfg.RecordDeleteBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		stepCtx, cancel := context.WithTimeout(ctx, t.cfg.StepTimeout)
		defer cancel()
		n, err := t.records.DeleteByFingerprint(stepCtx, job.Blob.Fingerprint)
		if err == nil {
			removed = n
			return nil
		}
		if errors.Is(err, image.ErrTransientLock) {
			log.WithError(err).WithField("attempt", attempts).Warn("record store locked, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		log.WithError(err).WithField("attempt", attempts).Error("failed to delete history records, left for sweep")
		return domainModeration.StepStatusFailed, attempts
	}
	if removed == 0 {
		log.Info("no history records left for fingerprint")
	} else {
		log.WithField("rows", removed).Info("history records deleted")
	}
	return domainModeration.StepStatusOK, attempts
}

func (t *task) notifyOwner(ctx context.Context, log *logrus.Entry, job Job, result *audit.Result) string {
	n, err := notification.New(job.Owner, notification.TypeModerationReject, removalTitle, fmt.Sprintf(removalMessage, result.Reason))
	if err != nil {
		log.WithError(err).Warn("upload has no owner, skipping notification")
		return domainModeration.StepStatusSkipped
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.StepTimeout)
	defer cancel()
	if err := t.notifications.Create(ctx, n); err != nil {
		log.WithError(err).WithField("recipient", job.Owner.String()).Error("failed to notify owner")
		return domainModeration.StepStatusFailed
	}
	return domainModeration.StepStatusOK
}

func (t *task) publish(ctx context.Context, log *logrus.Entry, job Job, result *audit.Result, report Report) {
	evt := &domainModeration.TakedownEvent{
		ID:          uuid.New(),
		JobID:       job.ID,
		Fingerprint: job.Blob.Fingerprint,
		ObjectKey:   job.Blob.Key,
		Recipient:   job.Owner.String(),
		Reason:      result.Reason,
		Score:       result.Score,
		Steps:       report.Steps,
		Attempts:    report.Attempts,
		OccurredAt:  time.Now().UTC(),
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.StepTimeout)
	defer cancel()
	if err := t.publisher.Publish(ctx, evt); err != nil {
		log.WithError(err).Error("failed to publish takedown event")
	}
}
