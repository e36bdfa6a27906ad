package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	classifierMocks "github.com/NeuralTrust/TrustImage/pkg/domain/audit/mocks"
	managerMocks "github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager/mocks"
	"github.com/NeuralTrust/TrustImage/pkg/infra/policy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testBlob = domainAudit.NewContentBlob([]byte("not really a jpeg"), "uploads/abc.jpg")

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func expectClassifier(
	t *testing.T,
	models *managerMocks.Manager,
	kind domainAudit.Kind,
	name string,
	verdict domainAudit.Verdict,
	err error,
) *classifierMocks.Classifier {
	t.Helper()
	c := classifierMocks.NewClassifier(t)
	c.EXPECT().Name().Return(name)
	c.EXPECT().Classify(mock.Anything, testBlob).Return(verdict, err).Once()
	models.EXPECT().Get(mock.Anything, kind).Return(c, nil).Once()
	return c
}

func safeVerdicts(t *testing.T, models *managerMocks.Manager) {
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "FACE_FEMALE", Confidence: 0.88},
	}), nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "自然风景", Confidence: 0.71},
		{Label: "地图", Confidence: 0.2},
	}), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "a food photo", Confidence: 0.64},
		{Label: "bloody gore or dead body", Confidence: 0.1},
	}), nil)
}

func TestEvaluator_SafePassThrough(t *testing.T) {
	models := managerMocks.NewManager(t)
	safeVerdicts(t, models)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, domainAudit.ReasonPass, result.Reason)
	assert.Len(t, result.Details, 3)
	assert.Contains(t, result.Details, "nudenet")
	assert.Contains(t, result.Details, "chinese_clip")
	assert.Contains(t, result.Details, "openai_clip")
	assert.True(t, result.Conclusive())
}

func TestEvaluator_NudityRejectionStopsPipeline(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "FEMALE_BREAST_EXPOSED", Confidence: 0.81},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.False(t, result.Safe)
	assert.Equal(t, 0.81, result.Score)
	assert.Equal(t, "contains exposed content: FEMALE_BREAST_EXPOSED(0.81)", result.Reason)
	assert.Len(t, result.Details, 1)
	assert.Contains(t, result.Details, "nudenet")
	models.AssertNotCalled(t, "Get", mock.Anything, domainAudit.KindRegional)
	models.AssertNotCalled(t, "Get", mock.Anything, domainAudit.KindGeneral)
}

func TestEvaluator_NudityListsEveryOffendingRegion(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "FACE_FEMALE", Confidence: 0.95},
		{Label: "BUTTOCKS_EXPOSED", Confidence: 0.704},
		{Label: "FEMALE_GENITALIA_EXPOSED", Confidence: 0.9},
		{Label: "ANUS_EXPOSED", Confidence: 0.3},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.False(t, result.Safe)
	assert.Equal(t, 0.9, result.Score)
	assert.Equal(t, "contains exposed content: FEMALE_GENITALIA_EXPOSED(0.9), BUTTOCKS_EXPOSED(0.7)", result.Reason)
}

func TestEvaluator_ThresholdIsStrict(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "MALE_GENITALIA_EXPOSED", Confidence: policy.DefaultNudityThreshold},
	}), nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict(nil), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
}

func regionalPolicySet(t *testing.T) policy.Set {
	t.Helper()
	set := policy.Defaults()
	regional := &policy.LabelPolicy{
		Name:             string(domainAudit.KindRegional),
		Rule:             policy.RuleTopLabel,
		Reason:           "policy-sensitive",
		Safe:             []string{"landscape"},
		Unsafe:           []string{"separatist symbol"},
		DefaultThreshold: policy.DefaultZeroShotThreshold,
	}
	require.NoError(t, regional.Compile())
	set[domainAudit.KindRegional] = regional
	return set
}

func TestEvaluator_RegionalPolicy(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		wantSafe   bool
	}{
		{name: "above default threshold rejects", confidence: 0.55, wantSafe: false},
		{name: "below default threshold continues", confidence: 0.45, wantSafe: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := managerMocks.NewManager(t)
			expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict(nil), nil)
			expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
				{Label: "separatist symbol", Confidence: tt.confidence},
				{Label: "landscape", Confidence: 1 - tt.confidence},
			}), nil)
			if tt.wantSafe {
				expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
					{Label: "a news photo", Confidence: 0.8},
				}), nil)
			}

			result, err := NewEvaluator(testLogger(), models, regionalPolicySet(t)).Evaluate(context.Background(), testBlob)

			require.NoError(t, err)
			assert.Equal(t, tt.wantSafe, result.Safe)
			if tt.wantSafe {
				assert.Len(t, result.Details, 3)
				return
			}
			assert.Equal(t, "policy-sensitive: separatist symbol", result.Reason)
			assert.Equal(t, tt.confidence, result.Score)
			assert.Len(t, result.Details, 2)
			assert.NotContains(t, result.Details, "openai_clip")
		})
	}
}

func TestEvaluator_LabelSpecificThreshold(t *testing.T) {
	set := policy.Defaults()
	falsifiedMap := set[domainAudit.KindRegional].Unsafe[0]
	require.Equal(t, 0.40, set[domainAudit.KindRegional].Threshold(falsifiedMap))

	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: falsifiedMap, Confidence: 0.42},
		{Label: "地图", Confidence: 0.38},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, set).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.False(t, result.Safe)
	assert.Equal(t, "policy-sensitive: "+falsifiedMap, result.Reason)
}

func TestEvaluator_UnsafeLabelNotOnTopPasses(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "a movie or TV show scene", Confidence: 0.52},
		{Label: "bloody gore or dead body", Confidence: 0.48},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
}

func TestEvaluator_GeneralSafetyRejection(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "ISIS terrorist flag or propaganda", Confidence: 0.77},
		{Label: "a national flag", Confidence: 0.23},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.False(t, result.Safe)
	assert.Equal(t, 0.77, result.Score)
	assert.Equal(t, "dangerous content: ISIS terrorist flag or propaganda", result.Reason)
}

func TestEvaluator_UnavailableStageIsSkipped(t *testing.T) {
	models := managerMocks.NewManager(t)
	models.EXPECT().Get(mock.Anything, domainAudit.KindNudity).
		Return(nil, fmt.Errorf("nudity: %w: weights missing", domainAudit.ErrClassifierUnavailable)).Once()
	models.EXPECT().Get(mock.Anything, domainAudit.KindRegional).
		Return(nil, fmt.Errorf("regional: %w", domainAudit.ErrClassifierUnavailable)).Once()
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict([]domainAudit.LabelScore{
		{Label: "a cat or dog", Confidence: 0.9},
	}), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.Equal(t, domainAudit.ReasonPass, result.Reason)
	assert.Len(t, result.Details, 1)
	assert.Contains(t, result.Skipped[string(domainAudit.KindNudity)], "weights missing")
	assert.Contains(t, result.Skipped, string(domainAudit.KindRegional))
	assert.False(t, result.Conclusive())
}

func TestEvaluator_AllStagesUnavailable(t *testing.T) {
	models := managerMocks.NewManager(t)
	models.EXPECT().Get(mock.Anything, mock.Anything).Return(nil, domainAudit.ErrClassifierUnavailable).Times(3)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.Empty(t, result.Details)
	assert.Len(t, result.Skipped, 3)
}

func TestEvaluator_InferenceErrorIsInconclusive(t *testing.T) {
	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", nil, errors.New("unexpected tensor shape"))
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict(nil), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.NotContains(t, result.Details, "nudenet")
	assert.Equal(t, "unexpected tensor shape", result.Skipped[string(domainAudit.KindNudity)])
}

func TestEvaluator_PanicIsInconclusive(t *testing.T) {
	models := managerMocks.NewManager(t)
	c := classifierMocks.NewClassifier(t)
	c.EXPECT().Name().Return("nudenet")
	c.EXPECT().Classify(mock.Anything, testBlob).RunAndReturn(
		func(context.Context, domainAudit.ContentBlob) (domainAudit.Verdict, error) {
			panic("index out of range")
		},
	)
	models.EXPECT().Get(mock.Anything, domainAudit.KindNudity).Return(c, nil)
	expectClassifier(t, models, domainAudit.KindRegional, "chinese_clip", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict(nil), nil)

	result, err := NewEvaluator(testLogger(), models, policy.Defaults()).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.True(t, result.Safe)
	assert.Contains(t, result.Skipped[string(domainAudit.KindNudity)], "index out of range")
}

func TestEvaluator_EmptyBlob(t *testing.T) {
	models := managerMocks.NewManager(t)

	_, err := NewEvaluator(testLogger(), models, policy.Defaults()).
		Evaluate(context.Background(), domainAudit.NewContentBlob(nil, "k"))

	assert.ErrorIs(t, err, domainAudit.ErrEmptyBlob)
}

func TestEvaluator_OnlyConfiguredStagesRun(t *testing.T) {
	set := policy.Defaults()
	delete(set, domainAudit.KindRegional)

	models := managerMocks.NewManager(t)
	expectClassifier(t, models, domainAudit.KindNudity, "nudenet", domainAudit.NewVerdict(nil), nil)
	expectClassifier(t, models, domainAudit.KindGeneral, "openai_clip", domainAudit.NewVerdict(nil), nil)

	result, err := NewEvaluator(testLogger(), models, set).Evaluate(context.Background(), testBlob)

	require.NoError(t, err)
	assert.Len(t, result.Details, 2)
}

func TestFormatConfidence(t *testing.T) {
	assert.Equal(t, "0.81", formatConfidence(0.8149))
	assert.Equal(t, "0.7", formatConfidence(0.704))
	assert.Equal(t, "1", formatConfidence(0.999))
}
