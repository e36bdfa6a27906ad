package audit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	domainAudit "github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/modelmanager"
	"github.com/NeuralTrust/TrustImage/pkg/infra/policy"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const debugTopLabels = 3

// Outcome is the typed result of one stage.
type Outcome int

const (
	Passed Outcome = iota
	Rejected
	Inconclusive
)

func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Rejected:
		return "rejected"
	default:
		return "inconclusive"
	}
}

// StageResult is what one stage contributes to the evaluation. Verdict is
// set for Passed and Rejected; Cause is set for Inconclusive.
type StageResult struct {
	Kind       domainAudit.Kind
	Classifier string
	Outcome    Outcome
	Verdict    domainAudit.Verdict
	Score      float64
	Reason     string
	Cause      string
}

type stage struct {
	kind   domainAudit.Kind
	policy *policy.LabelPolicy
}

type evaluator struct {
	logger *logrus.Logger
	models modelmanager.Manager
	stages []stage
}

// NewEvaluator runs one stage per kind that has a policy, in pipeline order.
func NewEvaluator(logger *logrus.Logger, models modelmanager.Manager, policies policy.Set) domainAudit.Evaluator {
	stages := make([]stage, 0, len(policies))
	for _, kind := range domainAudit.Kinds() {
		if p, ok := policies[kind]; ok {
			stages = append(stages, stage{kind: kind, policy: p})
		}
	}
	return &evaluator{
		logger: logger,
		models: models,
		stages: stages,
	}
}

// Evaluate stops at the first rejecting stage. Only an invalid blob is
// returned as an error; classifier problems make a stage inconclusive.
func (e *evaluator) Evaluate(ctx context.Context, blob domainAudit.ContentBlob) (*domainAudit.Result, error) {
	if err := blob.Validate(); err != nil {
		return nil, err
	}

	result := domainAudit.NewPassResult()
	for _, st := range e.stages {
		sr := e.runStage(ctx, st, blob)
		prometheus.StageOutcomes.WithLabelValues(sr.label(), sr.Outcome.String()).Inc()

		switch sr.Outcome {
		case Rejected:
			result.Details[sr.Classifier] = sr.Verdict
			result.Safe = false
			result.Score = sr.Score
			result.Reason = sr.Reason
			e.logger.WithFields(logrus.Fields{
				"stage":       st.kind,
				"classifier":  sr.Classifier,
				"fingerprint": blob.Fingerprint,
				"key":         blob.Key,
				"score":       sr.Score,
			}).Warn("content rejected: " + sr.Reason)
			return result, nil
		case Passed:
			result.Details[sr.Classifier] = sr.Verdict
		case Inconclusive:
			result.MarkSkipped(string(st.kind), sr.Cause)
		}
	}

	e.logger.WithFields(logrus.Fields{
		"fingerprint": blob.Fingerprint,
		"key":         blob.Key,
		"skipped":     len(result.Skipped),
	}).Debug("content passed")
	return result, nil
}

func (e *evaluator) runStage(ctx context.Context, st stage, blob domainAudit.ContentBlob) (sr StageResult) {
	sr.Kind = st.kind
	log := e.logger.WithFields(logrus.Fields{
		"stage":       st.kind,
		"fingerprint": blob.Fingerprint,
	})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("classifier", sr.Classifier).Errorf("panic during classification: %v", r)
			sr = inconclusive(sr, fmt.Sprintf("panic: %v", r))
		}
	}()

	classifier, err := e.models.Get(ctx, st.kind)
	if err != nil {
		log.WithError(err).Warn("classifier unavailable, stage skipped")
		return inconclusive(sr, err.Error())
	}
	sr.Classifier = classifier.Name()
	log = log.WithField("classifier", sr.Classifier)

	start := time.Now()
	verdict, err := classifier.Classify(ctx, blob)
	if prometheus.Config.EnableLatency {
		prometheus.StageLatency.WithLabelValues(sr.Classifier).Observe(float64(time.Since(start).Milliseconds()))
	}
	if err != nil {
		log.WithError(err).Error("classification failed, stage skipped")
		return inconclusive(sr, err.Error())
	}

	if e.logger.IsLevelEnabled(logrus.DebugLevel) {
		log.WithField("top", formatScores(verdict.Head(debugTopLabels))).Debug("stage verdict")
	}

	sr.Verdict = verdict
	hits := st.policy.Offending(verdict)
	if len(hits) == 0 {
		sr.Outcome = Passed
		return sr
	}
	sr.Outcome = Rejected
	sr.Score, sr.Reason = describe(st.policy, hits)
	return sr
}

func inconclusive(sr StageResult, cause string) StageResult {
	sr.Outcome = Inconclusive
	sr.Verdict = nil
	sr.Cause = cause
	return sr
}

// label names the stage in metrics even when no classifier was obtained.
func (sr StageResult) label() string {
	if sr.Classifier != "" {
		return sr.Classifier
	}
	return string(sr.Kind)
}

// describe returns the highest offending confidence and the rejection
// reason. Region rules list every offending region with its confidence;
// top-label rules name the label only.
func describe(p *policy.LabelPolicy, hits []domainAudit.LabelScore) (float64, string) {
	score := 0.0
	for _, h := range hits {
		score = math.Max(score, h.Confidence)
	}
	if p.Rule == policy.RuleAnyRegion {
		return score, p.Reason + ": " + formatScores(hits)
	}
	return score, p.Reason + ": " + hits[0].Label
}

func formatScores(scores []domainAudit.LabelScore) string {
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, s.Label+"("+formatConfidence(s.Confidence)+")")
	}
	return strings.Join(parts, ", ")
}

func formatConfidence(c float64) string {
	return strconv.FormatFloat(math.Round(c*100)/100, 'f', -1, 64)
}
