package audit

import "context"

type Kind string

const (
	KindNudity   Kind = "nudity"
	KindRegional Kind = "regional_policy"
	KindGeneral  Kind = "general_safety"
)

// Kinds lists every classifier kind in pipeline order.
func Kinds() []Kind {
	return []Kind{KindNudity, KindRegional, KindGeneral}
}

//go:generate mockery --name=Classifier --dir=. --output=./mocks --filename=classifier_mock.go --case=underscore --with-expecter
type Classifier interface {
	Name() string
	Classify(ctx context.Context, blob ContentBlob) (Verdict, error)
}

//go:generate mockery --name=Evaluator --dir=. --output=./mocks --filename=evaluator_mock.go --case=underscore --with-expecter
type Evaluator interface {
	Evaluate(ctx context.Context, blob ContentBlob) (*Result, error)
}
