package image

import "time"

// Record is one row of the upload history. Several records may share a
// fingerprint when identical bytes are uploaded more than once.
type Record struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	Hash        string    `json:"hash" gorm:"index"`
	ObjectKey   string    `json:"object_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UserID      *int64    `json:"user_id,omitempty"`
	DeviceID    *string   `json:"device_id,omitempty"`
	IsShared    bool      `json:"is_shared"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Record) TableName() string {
	return "history"
}
