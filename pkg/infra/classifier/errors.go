package classifier

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse   = errors.New("malformed inference response")
	ErrBackendNotSupported = errors.New("backend not supported for classifier kind")
	ErrDisabled            = errors.New("classifier disabled by configuration")
)

// StatusError is a non-2xx reply from an inference server.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference server returned %d: %s", e.StatusCode, e.Body)
}
