package classifier

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
	"github.com/NeuralTrust/TrustImage/pkg/infra/policy"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
)

// Factory builds the adapter for one classifier kind. Building includes the
// backend's readiness check, so it is the expensive first-use step the model
// manager guards.
type Factory struct {
	logger        *logrus.Logger
	client        httpx.Client
	policies      policy.Set
	configs       map[audit.Kind]Config
	onBreakerMove httpx.StateChangeFunc
}

func NewFactory(
	logger *logrus.Logger,
	client httpx.Client,
	policies policy.Set,
	configs map[audit.Kind]Config,
	onBreakerMove httpx.StateChangeFunc,
) *Factory {
	return &Factory{
		logger:        logger,
		client:        client,
		policies:      policies,
		configs:       configs,
		onBreakerMove: onBreakerMove,
	}
}

// Enabled reports whether kind has a backend configured and switched on.
func (f *Factory) Enabled(kind audit.Kind) bool {
	cfg, ok := f.configs[kind]
	return ok && cfg.Enabled
}

func (f *Factory) Build(ctx context.Context, kind audit.Kind) (audit.Classifier, error) {
	p, ok := f.policies[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", audit.ErrUnknownKind, kind)
	}
	cfg, ok := f.configs[kind]
	if !ok || !cfg.Enabled {
		return nil, fmt.Errorf("%s: %w", kind, ErrDisabled)
	}
	name := cfg.name(kind)
	breaker := httpx.NewCircuitBreaker(name, defaultBreakerOpen, cfg.maxFailures(), f.onBreakerMove)

	f.logger.WithFields(logrus.Fields{
		"classifier": name,
		"kind":       kind,
		"backend":    cfg.Backend,
		"endpoint":   cfg.Endpoint,
	}).Info("initializing classifier")

	switch cfg.Backend {
	case BackendHTTP, "":
		return f.buildHTTP(ctx, name, cfg, p, breaker)
	case BackendGemini:
		if p.Rule != policy.RuleTopLabel {
			return nil, fmt.Errorf("%s: %w: %s", kind, ErrBackendNotSupported, cfg.Backend)
		}
		var settings geminiSettings
		if err := mapstructure.Decode(cfg.Settings, &settings); err != nil {
			return nil, fmt.Errorf("invalid %s settings: %w", name, err)
		}
		client, err := newGeminiClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		return NewGeminiZeroShot(name, cfg.Model, settings.Prompt, p.Labels(), f.logger, client.Models, breaker), nil
	default:
		return nil, fmt.Errorf("%s: %w: %s", kind, ErrBackendNotSupported, cfg.Backend)
	}
}

func (f *Factory) buildHTTP(
	ctx context.Context,
	name string,
	cfg Config,
	p *policy.LabelPolicy,
	breaker httpx.CircuitBreaker,
) (audit.Classifier, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%s: endpoint is required", name)
	}
	var settings httpSettings
	if err := mapstructure.Decode(cfg.Settings, &settings); err != nil {
		return nil, fmt.Errorf("invalid %s settings: %w", name, err)
	}
	if !settings.SkipHealthCheck {
		healthPath := settings.HealthPath
		if healthPath == "" {
			healthPath = "/healthz"
		}
		healthCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
		defer cancel()
		if err := checkHealth(healthCtx, f.client, joinURL(cfg.Endpoint, healthPath)); err != nil {
			return nil, err
		}
	}
	client := &timeoutClient{client: f.client, timeout: cfg.timeout()}
	if p.Rule == policy.RuleAnyRegion {
		return NewRegionDetector(name, f.logger, client, breaker, cfg.Endpoint, settings.DetectPath), nil
	}
	return NewZeroShot(name, cfg.Model, p.Labels(), f.logger, client, breaker, cfg.Endpoint, settings.ClassifyPath), nil
}
