package notification

import (
	"errors"
	"fmt"
	"time"
)

const (
	TypeSystem           = "system"
	TypeModerationReject = "moderation_reject"
)

var ErrInvalidRecipient = errors.New("notification recipient must be exactly one of user id or device id")

// Recipient addresses a signed-in user or an anonymous device, never both.
type Recipient struct {
	UserID   *int64 `json:"user_id,omitempty"`
	DeviceID string `json:"device_id,omitempty"`
}

func UserRecipient(id int64) Recipient {
	return Recipient{UserID: &id}
}

func DeviceRecipient(id string) Recipient {
	return Recipient{DeviceID: id}
}

func (r Recipient) Validate() error {
	hasUser := r.UserID != nil
	hasDevice := r.DeviceID != ""
	if hasUser == hasDevice {
		return ErrInvalidRecipient
	}
	return nil
}

func (r Recipient) String() string {
	if r.UserID != nil {
		return fmt.Sprintf("user:%d", *r.UserID)
	}
	if r.DeviceID != "" {
		return "device:" + r.DeviceID
	}
	return "anonymous"
}

type Notification struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	DeviceID  *string   `json:"device_id,omitempty" gorm:"index"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "user_notifications"
}

func New(to Recipient, kind, title, message string) (*Notification, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}
	n := &Notification{
		UserID:    to.UserID,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if to.DeviceID != "" {
		device := to.DeviceID
		n.DeviceID = &device
	}
	return n, nil
}
