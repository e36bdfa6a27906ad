package request

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NeuralTrust/TrustImage/pkg/domain/notification"
)

var ErrMissingObjectKey = errors.New("object_key is required")

// ModerationRequest re-audits an already published object. The owner is
// optional; without one the takedown sends no notification.
type ModerationRequest struct {
	ObjectKey string `json:"object_key"`
	UserID    *int64 `json:"user_id,omitempty"`
	DeviceID  string `json:"device_id,omitempty"`
}

func (r *ModerationRequest) Validate() error {
	r.ObjectKey = strings.TrimSpace(r.ObjectKey)
	if r.ObjectKey == "" {
		return ErrMissingObjectKey
	}
	if strings.Contains(r.ObjectKey, "..") {
		return fmt.Errorf("invalid object_key %q", r.ObjectKey)
	}
	if r.UserID != nil && r.DeviceID != "" {
		return notification.ErrInvalidRecipient
	}
	return nil
}

func (r *ModerationRequest) Owner() notification.Recipient {
	return notification.Recipient{UserID: r.UserID, DeviceID: r.DeviceID}
}
