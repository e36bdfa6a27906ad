package audit

import "errors"

var (
	ErrEmptyBlob             = errors.New("content blob is empty")
	ErrClassifierUnavailable = errors.New("classifier unavailable")
	ErrUnknownKind           = errors.New("unknown classifier kind")
)
