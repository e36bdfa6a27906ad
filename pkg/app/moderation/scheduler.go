package moderation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultWorkers   = 2
	DefaultQueueSize = 256
)

var (
	ErrSchedulerClosed = errors.New("moderation scheduler is closed")
	ErrQueueFull       = errors.New("moderation queue is full")
	ErrDuplicateJob    = errors.New("moderation already pending for this upload")
	ErrDisabled        = errors.New("moderation is disabled")
)

type SchedulerConfig struct {
	Enabled   bool
	Workers   int
	QueueSize int
}

//go:generate mockery --name=Scheduler --dir=. --output=./mocks --filename=scheduler_mock.go --case=underscore --with-expecter
type Scheduler interface {
	// Schedule enqueues moderation for an already published blob and returns
	// without waiting for it. The error is informational only: callers on the
	// request path must not fail the upload because of it.
	Schedule(blob audit.ContentBlob, owner notification.Recipient) (uuid.UUID, error)
	Start(n int)
	// Drain runs every queued job on the calling goroutine.
	Drain(ctx context.Context) int
	Shutdown(ctx context.Context) error
	Pending() int
}

type scheduler struct {
	logger  *logrus.Logger
	task    Task
	enabled bool

	mu      sync.RWMutex
	queue   chan Job
	closed  atomic.Bool
	pending sync.Map
	group   *errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	started atomic.Bool
}

func NewScheduler(logger *logrus.Logger, task Task, cfg SchedulerConfig) Scheduler {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduler{
		logger:  logger,
		task:    task,
		enabled: cfg.Enabled,
		queue:   make(chan Job, cfg.QueueSize),
		group:   new(errgroup.Group),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func pendingKey(blob audit.ContentBlob, owner notification.Recipient) string {
	return blob.Fingerprint + "|" + blob.Key + "|" + owner.String()
}

func (s *scheduler) Schedule(blob audit.ContentBlob, owner notification.Recipient) (uuid.UUID, error) {
	log := s.logger.WithFields(logrus.Fields{
		"fingerprint": blob.Fingerprint,
		"key":         blob.Key,
	})
	if !s.enabled {
		prometheus.ModerationJobs.WithLabelValues("disabled").Inc()
		log.Debug("moderation disabled, upload kept without review")
		return uuid.Nil, ErrDisabled
	}
	if err := blob.Validate(); err != nil {
		return uuid.Nil, err
	}

	// the read lock orders enqueues before Shutdown closes the channel
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed.Load() {
		return uuid.Nil, ErrSchedulerClosed
	}

	job := NewJob(blob, owner)
	key := pendingKey(blob, owner)
	if existing, loaded := s.pending.LoadOrStore(key, job.ID); loaded {
		prometheus.ModerationJobs.WithLabelValues("coalesced").Inc()
		log.WithField("job_id", existing).Debug("moderation already pending, coalesced")
		id, _ := existing.(uuid.UUID)
		return id, ErrDuplicateJob
	}

	select {
	case s.queue <- job:
		if prometheus.Config.EnableQueueDepth {
			prometheus.QueueDepth.Set(float64(len(s.queue)))
		}
		log.WithField("job_id", job.ID).Debug("moderation scheduled")
		return job.ID, nil
	default:
		s.pending.Delete(key)
		prometheus.ModerationJobs.WithLabelValues("dropped").Inc()
		log.Error("moderation queue is full, dropping job; the sweep will pick it up")
		return uuid.Nil, ErrQueueFull
	}
}

func (s *scheduler) Start(n int) {
	if n <= 0 {
		n = DefaultWorkers
	}
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.WithField("workers", n).Info("starting moderation workers")
	for i := 0; i < n; i++ {
		s.group.Go(func() error {
			for {
				select {
				case job, ok := <-s.queue:
					if !ok {
						return nil
					}
					s.run(s.ctx, job)
				case <-s.ctx.Done():
					return nil
				}
			}
		})
	}
}

func (s *scheduler) run(ctx context.Context, job Job) {
	defer s.pending.Delete(pendingKey(job.Blob, job.Owner))
	if prometheus.Config.EnableQueueDepth {
		prometheus.QueueDepth.Set(float64(len(s.queue)))
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("job_id", job.ID).Errorf("moderation job panicked: %v", r)
		}
	}()
	s.task.Run(ctx, job)
}

func (s *scheduler) Drain(ctx context.Context) int {
	n := 0
	for {
		if ctx.Err() != nil {
			return n
		}
		select {
		case job, ok := <-s.queue:
			if !ok {
				return n
			}
			s.run(ctx, job)
			n++
		default:
			return n
		}
	}
}

// Shutdown stops intake and waits for workers to finish the queued jobs. When
// ctx expires first, workers are cancelled; a job already past its verdict
// still completes its unwind.
func (s *scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.closed.Swap(true) {
		s.mu.Unlock()
		return nil
	}
	close(s.queue)
	s.mu.Unlock()

	s.logger.WithField("pending", len(s.queue)).Info("shutting down moderation workers")
	if !s.started.Load() {
		s.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = s.group.Wait()
		close(done)
	}()
	select {
	case <-done:
		s.cancel()
		s.logger.Info("moderation workers stopped")
		return nil
	case <-ctx.Done():
		s.cancel()
		<-done
		s.logger.WithField("abandoned", len(s.queue)).Warn("moderation shutdown deadline reached")
		return ctx.Err()
	}
}

func (s *scheduler) Pending() int {
	return len(s.queue)
}
