package audit

import (
	"context"
	"errors"
	"testing"

	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	evaluatorMocks "github.com/NeuralTrust/TrustImage/pkg/domain/audit/mocks"
	"github.com/NeuralTrust/TrustImage/pkg/infra/cache"
	cacheMocks "github.com/NeuralTrust/TrustImage/pkg/infra/cache/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedEvaluator_Hit(t *testing.T) {
	next := evaluatorMocks.NewEvaluator(t)
	verdicts := cacheMocks.NewVerdictCache(t)

	cached := domainAudit.NewPassResult()
	verdicts.EXPECT().Get(mock.Anything, testBlob.Fingerprint).Return(cached, nil).Once()

	result, err := NewCachedEvaluator(testLogger(), next, verdicts).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.Same(t, cached, result)
	next.AssertNotCalled(t, "Evaluate", mock.Anything, mock.Anything)
}

func TestCachedEvaluator_MissStoresConclusiveResult(t *testing.T) {
	next := evaluatorMocks.NewEvaluator(t)
	verdicts := cacheMocks.NewVerdictCache(t)

	fresh := &domainAudit.Result{Safe: false, Score: 0.81, Reason: "contains exposed content: X(0.81)"}
	verdicts.EXPECT().Get(mock.Anything, testBlob.Fingerprint).Return(nil, cache.ErrCacheMiss).Once()
	next.EXPECT().Evaluate(mock.Anything, testBlob).Return(fresh, nil).Once()
	verdicts.EXPECT().Set(mock.Anything, testBlob.Fingerprint, fresh).Return(nil).Once()

	result, err := NewCachedEvaluator(testLogger(), next, verdicts).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.Same(t, fresh, result)
}

func TestCachedEvaluator_InconclusiveResultNotStored(t *testing.T) {
	next := evaluatorMocks.NewEvaluator(t)
	verdicts := cacheMocks.NewVerdictCache(t)

	fresh := domainAudit.NewPassResult()
	fresh.MarkSkipped(string(domainAudit.KindNudity), "classifier unavailable")
	verdicts.EXPECT().Get(mock.Anything, testBlob.Fingerprint).Return(nil, cache.ErrCacheMiss).Once()
	next.EXPECT().Evaluate(mock.Anything, testBlob).Return(fresh, nil).Once()

	result, err := NewCachedEvaluator(testLogger(), next, verdicts).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	verdicts.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedEvaluator_CacheFailuresFallThrough(t *testing.T) {
	next := evaluatorMocks.NewEvaluator(t)
	verdicts := cacheMocks.NewVerdictCache(t)

	fresh := domainAudit.NewPassResult()
	verdicts.EXPECT().Get(mock.Anything, testBlob.Fingerprint).Return(nil, errors.New("redis down")).Once()
	next.EXPECT().Evaluate(mock.Anything, testBlob).Return(fresh, nil).Once()
	verdicts.EXPECT().Set(mock.Anything, testBlob.Fingerprint, fresh).Return(errors.New("redis down")).Once()

	result, err := NewCachedEvaluator(testLogger(), next, verdicts).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.Same(t, fresh, result)
}

func TestCachedEvaluator_EmptyBlob(t *testing.T) {
	next := evaluatorMocks.NewEvaluator(t)
	verdicts := cacheMocks.NewVerdictCache(t)

	_, err := NewCachedEvaluator(testLogger(), next, verdicts).
		Evaluate(context.Background(), domainAudit.ContentBlob{})

	assert.ErrorIs(t, err, domainAudit.ErrEmptyBlob)
}
