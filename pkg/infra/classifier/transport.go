package classifier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/infra/httpx"
)

const maxErrorBody = 512

func doRequest(client httpx.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(msg)}
	}
	return body, nil
}

// checkHealth checks that an inference server answers its health endpoint.
func checkHealth(ctx context.Context, client httpx.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if _, err := doRequest(client, req); err != nil {
		return fmt.Errorf("health check %s: %w", url, err)
	}
	return nil
}

func joinURL(endpoint, path string) string {
	return strings.TrimRight(endpoint, "/") + "/" + strings.TrimLeft(path, "/")
}

// timeoutClient bounds every call to one inference backend. The wrapped
// client hands back a buffered body, so cancelling on return is safe.
type timeoutClient struct {
	client  httpx.Client
	timeout time.Duration
}

func (c *timeoutClient) Do(req *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	defer cancel()
	return c.client.Do(req.WithContext(ctx))
}
