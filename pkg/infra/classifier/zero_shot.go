package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const defaultClassifyPath = "/classify"

type zeroShotRequest struct {
	Model  string   `json:"model,omitempty"`
	Image  string   `json:"image"`
	Labels []string `json:"labels"`
}

// zeroShot calls a CLIP style server that scores the image against the
// caller's labels. The server answers either with probabilities or with raw
// logits, one per label and in label order:
//
//	{"probs":[0.91,0.02,...]}  or  {"logits":[24.1,18.7,...]}
type zeroShot struct {
	name    string
	model   string
	labels  []string
	logger  *logrus.Logger
	client  httpx.Client
	breaker httpx.CircuitBreaker
	url     string
}

func NewZeroShot(
	name string,
	model string,
	labels []string,
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	endpoint string,
	classifyPath string,
) audit.Classifier {
	if classifyPath == "" {
		classifyPath = defaultClassifyPath
	}
	return &zeroShot{
		name:    name,
		model:   model,
		labels:  labels,
		logger:  logger,
		client:  client,
		breaker: breaker,
		url:     joinURL(endpoint, classifyPath),
	}
}

func (z *zeroShot) Name() string {
	return z.name
}

func (z *zeroShot) Classify(ctx context.Context, blob audit.ContentBlob) (audit.Verdict, error) {
	payload, err := json.Marshal(zeroShotRequest{
		Model:  z.model,
		Image:  base64.StdEncoding.EncodeToString(blob.Data),
		Labels: z.labels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classify request: %w", err)
	}
	var verdict audit.Verdict
	err = z.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		body, err := doRequest(z.client, req)
		if err != nil {
			return err
		}
		verdict, err = parseZeroShot(body, z.labels)
		return err
	})
	if err != nil {
		return nil, err
	}
	z.logger.WithFields(logrus.Fields{
		"classifier":  z.name,
		"fingerprint": blob.Fingerprint,
		"labels":      len(verdict),
	}).Debug("zero-shot classification finished")
	return verdict, nil
}

func parseZeroShot(body []byte, labels []string) (audit.Verdict, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if probs := v.Get("probs"); probs != nil {
		scores, err := floats(probs)
		if err != nil {
			return nil, err
		}
		return zip(labels, scores)
	}
	if logits := v.Get("logits"); logits != nil {
		scores, err := floats(logits)
		if err != nil {
			return nil, err
		}
		if len(scores) != len(labels) {
			return nil, fmt.Errorf("%w: %d logits for %d labels", ErrMalformedResponse, len(scores), len(labels))
		}
		return zip(labels, Softmax(scores))
	}
	return nil, fmt.Errorf("%w: neither probs nor logits present", ErrMalformedResponse)
}

func floats(v *fastjson.Value) ([]float64, error) {
	items, err := v.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		if out[i], err = item.Float64(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
	}
	return out, nil
}
