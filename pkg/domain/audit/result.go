package audit

const ReasonPass = "Pass"

// Result is the outcome of one evaluation. Details holds the verdict of every
// stage that produced one, keyed by classifier name; Skipped holds the reason
// a stage was inconclusive.
type Result struct {
	Safe    bool               `json:"safe" msgpack:"safe"`
	Score   float64            `json:"score" msgpack:"score"`
	Reason  string             `json:"reason" msgpack:"reason"`
	Details map[string]Verdict `json:"details" msgpack:"details"`
	Skipped map[string]string  `json:"skipped,omitempty" msgpack:"skipped,omitempty"`
}

func NewPassResult() *Result {
	return &Result{
		Safe:    true,
		Score:   0.0,
		Reason:  ReasonPass,
		Details: make(map[string]Verdict),
	}
}

// Conclusive reports whether every stage produced a verdict.
func (r *Result) Conclusive() bool {
	return len(r.Skipped) == 0
}

// MarkSkipped records that stage produced no verdict.
func (r *Result) MarkSkipped(stage, reason string) {
	if r.Skipped == nil {
		r.Skipped = make(map[string]string)
	}
	r.Skipped[stage] = reason
}
