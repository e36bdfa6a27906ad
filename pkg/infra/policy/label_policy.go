package policy

import (
	"errors"
	"fmt"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
)

// Rule selects which labels of a verdict are checked against the policy.
type Rule string

const (
	// RuleAnyRegion checks every entry; used by region detectors where each
	// entry is one detected region.
	RuleAnyRegion Rule = "any_region"
	// RuleTopLabel checks only the top ranked label; used by zero-shot
	// classifiers whose entries form one distribution.
	RuleTopLabel Rule = "top_label"
)

var (
	ErrOverlappingLabel = errors.New("label is both safe and unsafe")
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrInvalidRule      = errors.New("unknown policy rule")
)

// LabelPolicy is static per-classifier configuration. It is compiled once and
// never mutated afterwards, so it is safe for concurrent readers.
type LabelPolicy struct {
	Name             string             `yaml:"name"`
	Rule             Rule               `yaml:"rule"`
	Reason           string             `yaml:"reason"`
	Safe             []string           `yaml:"safe"`
	Unsafe           []string           `yaml:"unsafe"`
	Thresholds       map[string]float64 `yaml:"thresholds"`
	DefaultThreshold float64            `yaml:"default_threshold"`

	safe   map[string]struct{}
	unsafe map[string]struct{}
}

// Compile validates the policy and builds its lookup sets.
func (p *LabelPolicy) Compile() error {
	switch p.Rule {
	case RuleAnyRegion, RuleTopLabel:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRule, p.Rule)
	}
	if p.DefaultThreshold < 0 || p.DefaultThreshold > 1 {
		return fmt.Errorf("%s default: %w", p.Name, ErrInvalidThreshold)
	}
	p.safe = toSet(p.Safe)
	p.unsafe = toSet(p.Unsafe)
	for label := range p.unsafe {
		if _, ok := p.safe[label]; ok {
			return fmt.Errorf("%s %q: %w", p.Name, label, ErrOverlappingLabel)
		}
	}
	for label, t := range p.Thresholds {
		if t < 0 || t > 1 {
			return fmt.Errorf("%s %q: %w", p.Name, label, ErrInvalidThreshold)
		}
	}
	return nil
}

// Labels returns the vocabulary scored by zero-shot classifiers, safe labels
// first.
func (p *LabelPolicy) Labels() []string {
	labels := make([]string, 0, len(p.Safe)+len(p.Unsafe))
	labels = append(labels, p.Safe...)
	return append(labels, p.Unsafe...)
}

func (p *LabelPolicy) IsSafe(label string) bool {
	_, ok := p.safe[label]
	return ok
}

func (p *LabelPolicy) IsUnsafe(label string) bool {
	_, ok := p.unsafe[label]
	return ok
}

func (p *LabelPolicy) Threshold(label string) float64 {
	if t, ok := p.Thresholds[label]; ok {
		return t
	}
	return p.DefaultThreshold
}

// Violates reports whether s is an unsafe label strictly above its threshold.
func (p *LabelPolicy) Violates(s audit.LabelScore) bool {
	return p.IsUnsafe(s.Label) && s.Confidence > p.Threshold(s.Label)
}

// Offending returns the entries of v that violate the policy under its rule.
func (p *LabelPolicy) Offending(v audit.Verdict) []audit.LabelScore {
	if p.Rule == RuleTopLabel {
		top, ok := v.Top()
		if ok && p.Violates(top) {
			return []audit.LabelScore{top}
		}
		return nil
	}
	var hits []audit.LabelScore
	for _, s := range v {
		if p.Violates(s) {
			hits = append(hits, s)
		}
	}
	return hits
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
