package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/image"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const DefaultLockTimeout = 2 * time.Second

// postgres error codes that mean another transaction held the rows
var transientCodes = map[string]struct{}{
	"55P03": {}, // lock_not_available
	"40P01": {}, // deadlock_detected
	"40001": {}, // serialization_failure
}

// classifyError wraps lock contention in image.ErrTransientLock so callers can
// retry it.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := transientCodes[pgErr.Code]; ok {
			return fmt.Errorf("%w: %s (%s)", image.ErrTransientLock, pgErr.Message, pgErr.Code)
		}
	}
	return err
}

type imageRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

func NewImageRepository(db *gorm.DB, lockTimeout time.Duration) image.Repository {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &imageRepository{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// DeleteByFingerprint removes every upload with the fingerprint in one
// transaction. The lock wait is bounded so a concurrent writer surfaces as
// image.ErrTransientLock instead of blocking the worker.
func (r *imageRepository) DeleteByFingerprint(ctx context.Context, fingerprint string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(lockTimeoutStatement(r.lockTimeout)).Error; err != nil {
			return err
		}
		result := tx.Where("hash = ?", fingerprint).Delete(&image.Record{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, classifyError(err)
	}
	return removed, nil
}

// SET does not accept bind parameters.
func lockTimeoutStatement(d time.Duration) string {
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
}
