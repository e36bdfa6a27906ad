package response

import (
	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager"
)

const (
	StatusScheduled = "scheduled"
	StatusCoalesced = "coalesced"
)

type EvaluateOutput struct {
	Fingerprint string        `json:"fingerprint"`
	ContentType string        `json:"content_type"`
	Result      *audit.Result `json:"result"`
}

type ModerationOutput struct {
	JobID       string `json:"job_id"`
	Fingerprint string `json:"fingerprint"`
	Status      string `json:"status"`
}

type ClassifiersOutput struct {
	ModerationEnabled bool                  `json:"moderation_enabled"`
	PolicyDigest      string                `json:"policy_digest"`
	Pending           int                   `json:"pending_jobs"`
	Classifiers       []modelmanager.Status `json:"classifiers"`
}
