package dependency_container

import (
	"errors"
	"fmt"

	appAudit "github.com/NeuralTrust/TrustImage/pkg/app/audit"
	"github.com/NeuralTrust/TrustImage/pkg/app/moderation"
	"github.com/NeuralTrust/TrustImage/pkg/config"
	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/domain/image"
	domainModeration "github.com/NeuralTrust/TrustImage/pkg/domain/moderation"
	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	"github.com/NeuralTrust/TrustImage/pkg/domain/storage"
	handlers "github.com/NeuralTrust/TrustImage/pkg/handlers/http"
	"github.com/NeuralTrust/TrustImage/pkg/infra/cache"
	"github.com/NeuralTrust/TrustImage/pkg/infra/classifier"
	"github.com/NeuralTrust/TrustImage/pkg/infra/database"
	"github.com/NeuralTrust/TrustImage/pkg/infra/events"
	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustImage/pkg/infra/jwt"
	_ "github.com/NeuralTrust/TrustImage/pkg/infra/migrations"
	"github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager"
	"github.com/NeuralTrust/TrustImage/pkg/infra/policy"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/NeuralTrust/TrustImage/pkg/infra/repository"
	"github.com/NeuralTrust/TrustImage/pkg/infra/storage/s3"
	"github.com/NeuralTrust/TrustImage/pkg/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// AuditStack is everything needed to evaluate a blob. The CLI builds only
// this part.
type AuditStack struct {
	Policies  policy.Set
	Models    modelmanager.Manager
	Evaluator domainAudit.Evaluator
	Redis     *redis.Client
}

type Container struct {
	*AuditStack
	DB                     *database.DB
	ObjectStore            storage.ObjectStore
	ImageRepository        image.Repository
	NotificationRepository notification.Repository
	EventPublisher         domainModeration.EventPublisher
	Task                   moderation.Task
	Scheduler              moderation.Scheduler
	JWTManager             jwt.Manager
	HandlerTransport       *handlers.HandlerTransport
	MiddlewareTransport    *middleware.Transport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	DB     *database.DB
}

// NewAuditStack builds the classifiers, the model manager and the evaluator.
// Redis is optional: when it cannot be reached the evaluator runs uncached.
func NewAuditStack(cfg *config.Config, logger *logrus.Logger, withCache bool) (*AuditStack, error) {
	policies, err := policy.Load(cfg.Moderation.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load label policies: %w", err)
	}

	factory := classifier.NewFactory(
		logger,
		httpx.NewFastHTTPClient(httpx.WithMaxResponseBodySize(4<<20)),
		policies,
		classifierConfigs(cfg.Classifiers, logger),
		prometheus.RecordBreakerTransition,
	)
	models := modelmanager.NewManager(logger, factory.Build, cfg.Moderation.Enabled, domainAudit.Kinds()...)

	stack := &AuditStack{
		Policies:  policies,
		Models:    models,
		Evaluator: appAudit.NewEvaluator(logger, models, policies),
	}

	if !withCache || !cfg.Redis.Enabled || cfg.Moderation.VerdictCacheTTL <= 0 {
		logger.Info("verdict cache disabled")
		return stack, nil
	}
	rdb, err := cache.NewClient(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	}, logger)
	if err != nil {
		logger.WithError(err).Warn("redis unavailable, running without verdict cache")
		return stack, nil
	}
	stack.Redis = rdb
	// a policy change invalidates every cached verdict
	verdicts := cache.NewVerdictCache(rdb, policies.Digest(), cfg.Moderation.VerdictCacheTTL)
	stack.Evaluator = appAudit.NewCachedEvaluator(logger, stack.Evaluator, verdicts)
	return stack, nil
}

func NewContainer(di ContainerDI) (*Container, error) {
	if di.DB == nil {
		return nil, errors.New("database is required")
	}
	stack, err := NewAuditStack(di.Cfg, di.Logger, true)
	if err != nil {
		return nil, err
	}

	objectStore := s3.NewObjectStore(
		di.Logger,
		s3.Connect(s3.Config{
			Endpoint:     di.Cfg.Storage.Endpoint,
			Region:       di.Cfg.Storage.Region,
			AccessKey:    di.Cfg.Storage.AccessKey,
			SecretKey:    di.Cfg.Storage.SecretKey,
			UsePathStyle: di.Cfg.Storage.UsePathStyle,
		}),
		di.Cfg.Storage.Bucket,
		di.Cfg.Storage.MaxObjectSize,
	)
	imageRepository := repository.NewImageRepository(di.DB.DB, di.Cfg.Moderation.LockTimeout)
	notificationRepository := repository.NewNotificationRepository(di.DB.DB)

	var publisher domainModeration.EventPublisher
	if di.Cfg.Kafka.Enabled {
		publisher, err = events.NewKafkaPublisher(di.Logger, events.KafkaConfig{
			Host:  di.Cfg.Kafka.Host,
			Port:  di.Cfg.Kafka.Port,
			Topic: di.Cfg.Kafka.Topic,
		})
		if err != nil {
			return nil, err
		}
	} else {
		publisher = events.NewNoopPublisher(di.Logger)
	}

	task := moderation.NewTask(
		di.Logger,
		stack.Evaluator,
		objectStore,
		imageRepository,
		notificationRepository,
		publisher,
		moderation.TaskConfig{
			RecordDeleteAttempts: di.Cfg.Moderation.RecordDeleteAttempts,
			RecordDeleteBackoff:  di.Cfg.Moderation.RecordDeleteBackoff,
			StepTimeout:          di.Cfg.Moderation.StepTimeout,
		},
	)
	scheduler := moderation.NewScheduler(di.Logger, task, moderation.SchedulerConfig{
		Enabled:   di.Cfg.Moderation.Enabled,
		Workers:   di.Cfg.Moderation.Workers,
		QueueSize: di.Cfg.Moderation.QueueSize,
	})

	jwtManager := jwt.NewJwtManager(&di.Cfg.Server)

	return &Container{
		AuditStack:             stack,
		DB:                     di.DB,
		ObjectStore:            objectStore,
		ImageRepository:        imageRepository,
		NotificationRepository: notificationRepository,
		EventPublisher:         publisher,
		Task:                   task,
		Scheduler:              scheduler,
		JWTManager:             jwtManager,
		MiddlewareTransport: &middleware.Transport{
			AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(di.Logger, jwtManager),
			PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
			MetricsMiddleware:      middleware.NewMetricsMiddleware(),
		},
		HandlerTransport: &handlers.HandlerTransport{
			GetVersionHandler: handlers.NewGetVersionHandler(di.Logger),
			EvaluateHandler:   handlers.NewEvaluateHandler(di.Logger, stack.Evaluator),
			ListClassifiersHandler: handlers.NewListClassifiersHandler(
				di.Logger, stack.Models, scheduler, di.Cfg.Moderation.Enabled, stack.Policies.Digest(),
			),
			ScheduleModerationHandler: handlers.NewScheduleModerationHandler(di.Logger, objectStore, scheduler),
			ListNotificationsHandler:  handlers.NewListNotificationsHandler(di.Logger, notificationRepository),
		},
	}, nil
}

// Close releases the broker and redis connections. The scheduler is shut
// down separately since it needs a deadline.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}

func classifierConfigs(in map[string]config.ClassifierConfig, logger *logrus.Logger) map[domainAudit.Kind]classifier.Config {
	known := make(map[domainAudit.Kind]struct{}, len(domainAudit.Kinds()))
	for _, k := range domainAudit.Kinds() {
		known[k] = struct{}{}
	}
	out := make(map[domainAudit.Kind]classifier.Config, len(in))
	for key, c := range in {
		kind := domainAudit.Kind(key)
		if _, ok := known[kind]; !ok {
			logger.WithField("kind", key).Warn("ignoring configuration for unknown classifier kind")
			continue
		}
		out[kind] = classifier.Config{
			Name:        c.Name,
			Enabled:     c.Enabled,
			Backend:     c.Backend,
			Endpoint:    c.Endpoint,
			Model:       c.Model,
			APIKey:      c.APIKey,
			Timeout:     c.Timeout,
			MaxFailures: c.MaxFailures,
			Settings:    c.Settings,
		}
	}
	return out
}
