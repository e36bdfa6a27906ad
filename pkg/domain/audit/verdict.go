package audit

import "sort"

type LabelScore struct {
	Label      string  `json:"label" msgpack:"label"`
	Confidence float64 `json:"confidence" msgpack:"confidence"`
}

// Verdict is the ranked output of one classifier for one blob, highest
// confidence first.
type Verdict []LabelScore

// NewVerdict copies scores and ranks them by descending confidence. Ties keep
// their input order.
func NewVerdict(scores []LabelScore) Verdict {
	v := make(Verdict, len(scores))
	copy(v, scores)
	sort.SliceStable(v, func(i, j int) bool {
		return v[i].Confidence > v[j].Confidence
	})
	return v
}

// Top returns the highest ranked label.
func (v Verdict) Top() (LabelScore, bool) {
	if len(v) == 0 {
		return LabelScore{}, false
	}
	return v[0], true
}

// Head returns at most n leading entries.
func (v Verdict) Head(n int) Verdict {
	if n > len(v) {
		n = len(v)
	}
	return v[:n]
}
