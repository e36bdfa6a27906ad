package classifier

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const defaultDetectPath = "/detect"

// regionDetector calls a NudeNet style server. The server receives one JPEG
// and answers with every body region it found:
//
//	{"detections":[{"class":"FACE_FEMALE","score":0.91,"box":[x,y,w,h]}]}
type regionDetector struct {
	name    string
	logger  *logrus.Logger
	client  httpx.Client
	breaker httpx.CircuitBreaker
	url     string
}

func NewRegionDetector(
	name string,
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	endpoint string,
	detectPath string,
) audit.Classifier {
	if detectPath == "" {
		detectPath = defaultDetectPath
	}
	return &regionDetector{
		name:    name,
		logger:  logger,
		client:  client,
		breaker: breaker,
		url:     joinURL(endpoint, detectPath),
	}
}

func (d *regionDetector) Name() string {
	return d.name
}

func (d *regionDetector) Classify(ctx context.Context, blob audit.ContentBlob) (audit.Verdict, error) {
	img := ToJPEG(blob.Data)
	var verdict audit.Verdict
	err := d.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(img))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "image/jpeg")
		body, err := doRequest(d.client, req)
		if err != nil {
			return err
		}
		verdict, err = parseDetections(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	d.logger.WithFields(logrus.Fields{
		"classifier":  d.name,
		"fingerprint": blob.Fingerprint,
		"regions":     len(verdict),
	}).Debug("region detection finished")
	return verdict, nil
}

func parseDetections(body []byte) (audit.Verdict, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	detections := v.Get("detections")
	if detections == nil {
		return nil, fmt.Errorf("%w: missing detections", ErrMalformedResponse)
	}
	items, err := detections.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	scores := make([]audit.LabelScore, 0, len(items))
	for _, item := range items {
		label := string(item.GetStringBytes("class"))
		if label == "" {
			return nil, fmt.Errorf("%w: detection without class", ErrMalformedResponse)
		}
		sv := item.Get("score")
		if sv == nil {
			return nil, fmt.Errorf("%w: detection %q without score", ErrMalformedResponse, label)
		}
		score, err := sv.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: score of %q: %v", ErrMalformedResponse, label, err)
		}
		if err := checkConfidence(label, score); err != nil {
			return nil, err
		}
		scores = append(scores, audit.LabelScore{Label: label, Confidence: score})
	}
	return audit.NewVerdict(scores), nil
}
