package audit

import (
	"context"
	"errors"

	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/cache"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type cachedEvaluator struct {
	logger *logrus.Logger
	next   domainAudit.Evaluator
	cache  cache.VerdictCache
}

// NewCachedEvaluator serves repeated fingerprints from the verdict cache.
// Only conclusive results are stored; a result with a skipped stage is
// evaluated again next time. Cache failures fall through to next.
func NewCachedEvaluator(logger *logrus.Logger, next domainAudit.Evaluator, verdicts cache.VerdictCache) domainAudit.Evaluator {
	return &cachedEvaluator{
		logger: logger,
		next:   next,
		cache:  verdicts,
	}
}

func (c *cachedEvaluator) Evaluate(ctx context.Context, blob domainAudit.ContentBlob) (*domainAudit.Result, error) {
	if err := blob.Validate(); err != nil {
		return nil, err
	}
	fingerprint := blob.Fingerprint
	if fingerprint == "" {
		fingerprint = domainAudit.Fingerprint(blob.Data)
	}
	log := c.logger.WithField("fingerprint", fingerprint)

	cached, err := c.cache.Get(ctx, fingerprint)
	switch {
	case err == nil:
		prometheus.VerdictCache.WithLabelValues("hit").Inc()
		log.Debug("verdict served from cache")
		return cached, nil
	case errors.Is(err, cache.ErrCacheMiss):
		prometheus.VerdictCache.WithLabelValues("miss").Inc()
	default:
		prometheus.VerdictCache.WithLabelValues("error").Inc()
		log.WithError(err).Warn("verdict cache read failed")
	}

	result, err := c.next.Evaluate(ctx, blob)
	if err != nil {
		return nil, err
	}
	if result.Conclusive() {
		if err := c.cache.Set(ctx, fingerprint, result); err != nil {
			log.WithError(err).Warn("verdict cache write failed")
		}
	}
	return result, nil
}
