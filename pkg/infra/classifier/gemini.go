package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
	"google.golang.org/genai"
)

const (
	defaultGeminiModel  = "gemini-2.0-flash"
	defaultGeminiPrompt = "You are an image content classifier. Score how well each of the " +
		"following labels describes the image. Reply with a single JSON object " +
		"mapping every label, spelled exactly as given, to a probability between 0 " +
		"and 1. The probabilities must sum to 1. Labels: "
)

// contentGenerator is the subset of genai.Models the adapter needs.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// geminiZeroShot asks a Gemini vision model to distribute probability mass
// over the policy vocabulary, standing in for a CLIP server.
type geminiZeroShot struct {
	name      string
	model     string
	prompt    string
	labels    []string
	logger    *logrus.Logger
	generator contentGenerator
	breaker   httpx.CircuitBreaker
}

func NewGeminiZeroShot(
	name string,
	model string,
	prompt string,
	labels []string,
	logger *logrus.Logger,
	generator contentGenerator,
	breaker httpx.CircuitBreaker,
) audit.Classifier {
	if model == "" {
		model = defaultGeminiModel
	}
	if prompt == "" {
		prompt = defaultGeminiPrompt
	}
	return &geminiZeroShot{
		name:      name,
		model:     model,
		prompt:    prompt,
		labels:    labels,
		logger:    logger,
		generator: generator,
		breaker:   breaker,
	}
}

func newGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

func (g *geminiZeroShot) Name() string {
	return g.name
}

func (g *geminiZeroShot) Classify(ctx context.Context, blob audit.ContentBlob) (audit.Verdict, error) {
	labels, err := json.Marshal(g.labels)
	if err != nil {
		return nil, err
	}
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: g.prompt + string(labels)},
			{InlineData: &genai.Blob{MIMEType: mimetype.Detect(blob.Data).String(), Data: blob.Data}},
		},
	}}
	var verdict audit.Verdict
	err = g.breaker.Execute(func() error {
		result, err := g.generator.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return fmt.Errorf("failed to generate content: %w", err)
		}
		verdict, err = parseGeminiScores(result.Text(), g.labels)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logger.WithFields(logrus.Fields{
		"classifier":  g.name,
		"fingerprint": blob.Fingerprint,
		"model":       g.model,
	}).Debug("gemini classification finished")
	return verdict, nil
}

// parseGeminiScores reads the label->probability object. Labels the model
// left out score zero and the rest is renormalised, since generated numbers
// rarely sum to exactly one.
func parseGeminiScores(text string, labels []string) (audit.Verdict, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	var p fastjson.Parser
	v, err := p.Parse(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	scores := make([]float64, len(labels))
	var sum float64
	for i, label := range labels {
		sv := obj.Get(label)
		if sv == nil {
			continue
		}
		f, err := sv.Float64()
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: score of %q", ErrMalformedResponse, label)
		}
		scores[i] = f
		sum += f
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: no label scored", ErrMalformedResponse)
	}
	for i := range scores {
		scores[i] /= sum
	}
	return zip(labels, scores)
}
