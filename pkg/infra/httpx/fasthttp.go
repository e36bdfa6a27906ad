package httpx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 64
	DefaultMaxIdleConnDuration = 30 * time.Second
	DefaultMaxResponseBodySize = 16 * 1024 * 1024
)

type options struct {
	timeout             time.Duration
	maxConnsPerHost     int
	maxIdleConnDuration time.Duration
	maxResponseBodySize int
	userAgent           string
}

type Option func(*options)

// WithTimeout bounds both writing the request and reading the response.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithMaxConnsPerHost(n int) Option {
	return func(o *options) {
		o.maxConnsPerHost = n
	}
}

// WithMaxResponseBodySize caps the raw response and every decoded layer of it.
func WithMaxResponseBodySize(size int) Option {
	return func(o *options) {
		o.maxResponseBodySize = size
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

type FastHTTPClient struct {
	client    *fasthttp.Client
	userAgent string
	bodyLimit int
}

// NewFastHTTPClient returns a Client backed by a pooled fasthttp client.
// Responses are buffered and decoded before they are handed back, so callers
// never see a Content-Encoding.
func NewFastHTTPClient(opts ...Option) Client {
	o := &options{
		timeout:             DefaultTimeout,
		maxConnsPerHost:     DefaultMaxConnsPerHost,
		maxIdleConnDuration: DefaultMaxIdleConnDuration,
		maxResponseBodySize: DefaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return &FastHTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:         o.timeout,
			WriteTimeout:        o.timeout,
			MaxConnsPerHost:     o.maxConnsPerHost,
			MaxIdleConnDuration: o.maxIdleConnDuration,
			MaxResponseBodySize: o.maxResponseBodySize,
		},
		userAgent: o.userAgent,
		bodyLimit: o.maxResponseBodySize,
	}
}

// Do sends req and waits for the response or for req's context to end. A
// cancelled request returns ctx.Err() right away; the in-flight exchange is
// left to finish in the background and releases its buffers then.
func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(fastReq)
		fasthttp.ReleaseResponse(fastResp)
	}

	fastReq.SetRequestURI(req.URL.String())
	fastReq.Header.SetMethod(req.Method)
	if req.Host != "" {
		fastReq.Header.SetHost(req.Host)
	}
	for key, values := range req.Header {
		for _, value := range values {
			fastReq.Header.Add(key, value)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		fastReq.Header.SetUserAgent(c.userAgent)
	}
	if body != nil {
		fastReq.SetBodyRaw(body)
	}

	done := make(chan error, 1)
	go func() {
		if deadline, ok := ctx.Deadline(); ok {
			done <- c.client.DoDeadline(fastReq, fastResp, deadline)
			return
		}
		done <- c.client.Do(fastReq, fastResp)
	}()

	select {
	case err := <-done:
		defer release()
		if err != nil {
			return nil, err
		}
		return c.toResponse(req, fastResp)
	case <-ctx.Done():
		go func() {
			<-done
			release()
		}()
		return nil, ctx.Err()
	}
}

func (c *FastHTTPClient) toResponse(req *http.Request, fastResp *fasthttp.Response) (*http.Response, error) {
	// the response buffer is reused after release
	raw := fastResp.Body()
	body := make([]byte, len(raw))
	copy(body, raw)

	encoding := string(fastResp.Header.ContentEncoding())
	body, err := DecodeBody(encoding, body, c.bodyLimit)
	if err != nil {
		return nil, err
	}

	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})
	headers.Del("Content-Encoding")
	headers.Del("Content-Length")

	statusCode := fastResp.StatusCode()
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
