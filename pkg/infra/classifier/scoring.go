package classifier

import (
	"fmt"
	"math"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
)

// Softmax turns raw logits into a probability distribution.
func Softmax(logits []float64) []float64 {
	out := make([]float64, len(logits))
	if len(logits) == 0 {
		return out
	}
	max := logits[0]
	for _, l := range logits[1:] {
		if l > max {
			max = l
		}
	}
	var sum float64
	for i, l := range logits {
		out[i] = math.Exp(l - max)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// zip pairs labels with their scores and ranks the result.
func zip(labels []string, scores []float64) (audit.Verdict, error) {
	if len(labels) != len(scores) {
		return nil, fmt.Errorf("%w: %d scores for %d labels", ErrMalformedResponse, len(scores), len(labels))
	}
	pairs := make([]audit.LabelScore, len(labels))
	for i, label := range labels {
		if err := checkConfidence(label, scores[i]); err != nil {
			return nil, err
		}
		pairs[i] = audit.LabelScore{Label: label, Confidence: scores[i]}
	}
	return audit.NewVerdict(pairs), nil
}

func checkConfidence(label string, c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("%w: confidence %v for %q", ErrMalformedResponse, c, label)
	}
	return nil
}
