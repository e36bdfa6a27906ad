package dependency_container

import (
	"io"
	"testing"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/config"
	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifierConfigs(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	out := classifierConfigs(map[string]config.ClassifierConfig{
		"nudity": {
			Enabled:     true,
			Backend:     "http",
			Endpoint:    "http://127.0.0.1:9100/v1/detect",
			Timeout:     2 * time.Second,
			MaxFailures: 3,
		},
		"regional_policy": {Enabled: false, Backend: "gemini"},
		"unknown_kind":    {Enabled: true},
	}, logger)

	require.Len(t, out, 2)
	assert.Equal(t, "http://127.0.0.1:9100/v1/detect", out[domainAudit.KindNudity].Endpoint)
	assert.Equal(t, uint32(3), out[domainAudit.KindNudity].MaxFailures)
	assert.False(t, out[domainAudit.KindRegional].Enabled)
	_, ok := out[domainAudit.KindGeneral]
	assert.False(t, ok)
}

func TestNewAuditStack_WithoutCache(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Moderation: config.ModerationConfig{Enabled: true, VerdictCacheTTL: time.Hour},
	}
	stack, err := NewAuditStack(cfg, logger, false)

	require.NoError(t, err)
	assert.Nil(t, stack.Redis)
	assert.NotNil(t, stack.Evaluator)
	assert.NotEmpty(t, stack.Policies.Digest())
}

func TestNewContainer_RequiresDatabase(t *testing.T) {
	_, err := NewContainer(ContainerDI{Cfg: &config.Config{}, Logger: logrus.New()})
	assert.Error(t, err)
}
