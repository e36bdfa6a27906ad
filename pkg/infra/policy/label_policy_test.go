package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTopLabelPolicy(t *testing.T) *LabelPolicy {
	t.Helper()
	p := &LabelPolicy{
		Name:             "test",
		Rule:             RuleTopLabel,
		Safe:             []string{"landscape", "mosaic art"},
		Unsafe:           []string{"forbidden symbol", "falsified map"},
		Thresholds:       map[string]float64{"falsified map": 0.40},
		DefaultThreshold: 0.50,
	}
	require.NoError(t, p.Compile())
	return p
}

func TestLabelPolicy_ThresholdIsStrict(t *testing.T) {
	p := newTopLabelPolicy(t)

	assert.False(t, p.Violates(audit.LabelScore{Label: "forbidden symbol", Confidence: 0.50}))
	assert.True(t, p.Violates(audit.LabelScore{Label: "forbidden symbol", Confidence: 0.5000001}))
	assert.False(t, p.Violates(audit.LabelScore{Label: "falsified map", Confidence: 0.40}))
	assert.True(t, p.Violates(audit.LabelScore{Label: "falsified map", Confidence: 0.41}))
}

func TestLabelPolicy_SafeLabelNeverViolates(t *testing.T) {
	p := newTopLabelPolicy(t)

	assert.True(t, p.IsSafe("mosaic art"))
	assert.False(t, p.Violates(audit.LabelScore{Label: "mosaic art", Confidence: 1.0}))
	assert.False(t, p.Violates(audit.LabelScore{Label: "unlisted", Confidence: 1.0}))
}

func TestLabelPolicy_OffendingTopLabelOnly(t *testing.T) {
	p := newTopLabelPolicy(t)

	v := audit.NewVerdict([]audit.LabelScore{
		{Label: "landscape", Confidence: 0.45},
		{Label: "forbidden symbol", Confidence: 0.55},
	})
	hits := p.Offending(v)
	require.Len(t, hits, 1)
	assert.Equal(t, "forbidden symbol", hits[0].Label)

	// an unsafe label ranked second is ignored
	v = audit.NewVerdict([]audit.LabelScore{
		{Label: "landscape", Confidence: 0.60},
		{Label: "forbidden symbol", Confidence: 0.55},
	})
	assert.Empty(t, p.Offending(v))
}

func TestLabelPolicy_OffendingAnyRegion(t *testing.T) {
	p := &LabelPolicy{
		Name:             "regions",
		Rule:             RuleAnyRegion,
		Safe:             []string{"FACE_FEMALE"},
		Unsafe:           []string{"FEMALE_BREAST_EXPOSED", "BUTTOCKS_EXPOSED"},
		DefaultThreshold: 0.60,
	}
	require.NoError(t, p.Compile())

	v := audit.NewVerdict([]audit.LabelScore{
		{Label: "FACE_FEMALE", Confidence: 0.95},
		{Label: "FEMALE_BREAST_EXPOSED", Confidence: 0.81},
		{Label: "BUTTOCKS_EXPOSED", Confidence: 0.40},
	})
	hits := p.Offending(v)
	require.Len(t, hits, 1)
	assert.Equal(t, audit.LabelScore{Label: "FEMALE_BREAST_EXPOSED", Confidence: 0.81}, hits[0])
}

func TestLabelPolicy_CompileRejectsInvalid(t *testing.T) {
	overlap := &LabelPolicy{Name: "x", Rule: RuleTopLabel, Safe: []string{"a"}, Unsafe: []string{"a"}, DefaultThreshold: 0.5}
	assert.ErrorIs(t, overlap.Compile(), ErrOverlappingLabel)

	badThreshold := &LabelPolicy{Name: "x", Rule: RuleTopLabel, Unsafe: []string{"a"}, Thresholds: map[string]float64{"a": 1.5}}
	assert.ErrorIs(t, badThreshold.Compile(), ErrInvalidThreshold)

	badRule := &LabelPolicy{Name: "x", Rule: "sometimes"}
	assert.ErrorIs(t, badRule.Compile(), ErrInvalidRule)
}

func TestDefaults(t *testing.T) {
	set := Defaults()

	require.Len(t, set, 3)
	nudity := set[audit.KindNudity]
	assert.Equal(t, RuleAnyRegion, nudity.Rule)
	assert.Equal(t, 0.60, nudity.Threshold("FEMALE_BREAST_EXPOSED"))

	regional := set[audit.KindRegional]
	assert.Equal(t, 0.40, regional.Threshold(labelFalsifiedChinaMap))
	assert.Equal(t, 0.60, regional.Threshold(labelSeparatistFlags))
	assert.Equal(t, 0.50, regional.Threshold("anything else"))
	assert.Equal(t, len(regional.Safe)+len(regional.Unsafe), len(regional.Labels()))

	general := set[audit.KindGeneral]
	assert.True(t, general.IsUnsafe("bloody gore or dead body"))
	assert.True(t, general.IsSafe("an anime or cartoon image"))
}

func TestLoad_OverridesKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policies.yaml")
	doc := `
policies:
  general_safety:
    rule: top_label
    reason: dangerous content
    safe: ["a food photo"]
    unsafe: ["a weapon"]
    thresholds:
      a weapon: 0.7
    default_threshold: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	set, err := Load(path)
	require.NoError(t, err)

	general := set[audit.KindGeneral]
	assert.Equal(t, "general_safety", general.Name)
	assert.Equal(t, []string{"a food photo", "a weapon"}, general.Labels())
	assert.Equal(t, 0.7, general.Threshold("a weapon"))
	// untouched kinds keep their defaults
	assert.True(t, set[audit.KindNudity].IsUnsafe("ANUS_EXPOSED"))
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := Parse([]byte("policies:\n  sarcasm:\n    rule: top_label\n"))
	assert.ErrorIs(t, err, audit.ErrUnknownKind)
}

func TestSet_Digest(t *testing.T) {
	a := Defaults()
	b := Defaults()
	assert.Equal(t, a.Digest(), b.Digest())
	assert.Len(t, a.Digest(), 12)

	b[audit.KindGeneral].DefaultThreshold = 0.7
	assert.NotEqual(t, a.Digest(), b.Digest())
}
