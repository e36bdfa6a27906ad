package storage

import (
	"context"
	"errors"
)

var ErrObjectNotFound = errors.New("object not found")

//go:generate mockery --name=ObjectStore --dir=. --output=./mocks --filename=object_store_mock.go --case=underscore --with-expecter
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the object. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
}
