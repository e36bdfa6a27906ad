package image

import (
	"context"
	"errors"
)

// ErrTransientLock marks a write that lost a lock race and may succeed when
// retried.
var ErrTransientLock = errors.New("record store is locked")

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=image_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// DeleteByFingerprint removes every record with the fingerprint and
	// returns how many were removed. Zero rows is not an error.
	DeleteByFingerprint(ctx context.Context, fingerprint string) (int64, error)
}
