package repository

import (
	"context"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if err := (notification.Recipient{UserID: n.UserID, DeviceID: deref(n.DeviceID)}).Validate(); err != nil {
		return err
	}
	if n.Type == "" {
		n.Type = notification.TypeSystem
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByRecipient(
	ctx context.Context,
	to notification.Recipient,
	unreadOnly bool,
	limit int,
) ([]notification.Notification, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := r.db.WithContext(ctx)
	if to.UserID != nil {
		query = query.Where("user_id = ?", *to.UserID)
	} else {
		query = query.Where("device_id = ?", to.DeviceID)
	}
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	var out []notification.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
