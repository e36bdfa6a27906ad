package classifier

import (
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
)

const (
	BackendHTTP   = "http"
	BackendGemini = "gemini"
)

const (
	defaultTimeout     = 20 * time.Second
	defaultMaxFailures = 5
	defaultBreakerOpen = 30 * time.Second
)

var defaultNames = map[audit.Kind]string{
	audit.KindNudity:   "nudenet",
	audit.KindRegional: "chinese_clip",
	audit.KindGeneral:  "openai_clip",
}

// Config describes the inference backend serving one classifier kind.
type Config struct {
	Name        string
	Enabled     bool
	Backend     string
	Endpoint    string
	Model       string
	APIKey      string
	Timeout     time.Duration
	MaxFailures uint32
	Settings    map[string]interface{}
}

func (c Config) name(kind audit.Kind) string {
	if c.Name != "" {
		return c.Name
	}
	if n, ok := defaultNames[kind]; ok {
		return n
	}
	return string(kind)
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c Config) maxFailures() uint32 {
	if c.MaxFailures > 0 {
		return c.MaxFailures
	}
	return defaultMaxFailures
}

// httpSettings are the optional per-backend settings of the HTTP adapters.
type httpSettings struct {
	DetectPath      string `mapstructure:"detect_path"`
	ClassifyPath    string `mapstructure:"classify_path"`
	HealthPath      string `mapstructure:"health_path"`
	SkipHealthCheck bool   `mapstructure:"skip_health_check"`
}

type geminiSettings struct {
	Prompt string `mapstructure:"prompt"`
}
