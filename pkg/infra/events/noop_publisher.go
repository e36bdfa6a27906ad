package events

import (
	"context"

	"github.com/NeuralTrust/TrustImage/pkg/domain/moderation"
	"github.com/sirupsen/logrus"
)

type noopPublisher struct {
	logger *logrus.Logger
}

// NewNoopPublisher logs takedowns instead of sending them, for deployments
// without a broker.
func NewNoopPublisher(logger *logrus.Logger) moderation.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(_ context.Context, evt *moderation.TakedownEvent) error {
	p.logger.WithFields(logrus.Fields{
		"fingerprint": evt.Fingerprint,
		"job_id":      evt.JobID,
		"steps":       evt.Steps,
	}).Debug("takedown event not published, no broker configured")
	return nil
}

func (p *noopPublisher) Close() {}
