package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

var (
	ErrUnsupportedEncoding = errors.New("unsupported content-encoding")
	ErrBodyTooLarge        = errors.New("decoded body exceeds limit")
)

// DecodeBody undoes a Content-Encoding header value, last applied coding
// first. Each decoded layer is capped at limit bytes; a limit of zero means
// no cap.
func DecodeBody(contentEncoding string, body []byte, limit int) ([]byte, error) {
	if strings.TrimSpace(contentEncoding) == "" {
		return body, nil
	}
	codings := strings.Split(contentEncoding, ",")
	for i := len(codings) - 1; i >= 0; i-- {
		coding := strings.ToLower(strings.TrimSpace(codings[i]))
		var err error
		switch coding {
		case "", "identity":
			continue
		case "br":
			body, err = readLimited(io.NopCloser(brotli.NewReader(bytes.NewReader(body))), limit)
		case "gzip", "x-gzip":
			var gr *gzip.Reader
			if gr, err = gzip.NewReader(bytes.NewReader(body)); err == nil {
				body, err = readLimited(gr, limit)
			}
		case "zstd":
			var dec *zstd.Decoder
			if dec, err = zstd.NewReader(bytes.NewReader(body)); err == nil {
				body, err = readLimited(dec.IOReadCloser(), limit)
			}
		case "deflate":
			body, err = inflate(body, limit)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, coding)
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", coding, err)
		}
	}
	return body, nil
}

// inflate accepts both zlib wrapped and raw deflate streams; servers disagree
// on which one "deflate" means.
func inflate(body []byte, limit int) ([]byte, error) {
	if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
		return readLimited(zr, limit)
	}
	return readLimited(flate.NewReader(bytes.NewReader(body)), limit)
}

func readLimited(rc io.ReadCloser, limit int) ([]byte, error) {
	defer rc.Close()
	if limit <= 0 {
		return io.ReadAll(rc)
	}
	out, err := io.ReadAll(io.LimitReader(rc, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, ErrBodyTooLarge
	}
	return out, nil
}
