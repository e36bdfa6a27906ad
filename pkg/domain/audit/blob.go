package audit

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLength matches the truncated SHA-256 used for object keys and
// history records.
const fingerprintLength = 32

// ContentBlob is an uploaded asset as handed to the pipeline. It is passed
// by value and never mutated.
type ContentBlob struct {
	Data        []byte
	Fingerprint string
	Key         string
}

func NewContentBlob(data []byte, key string) ContentBlob {
	return ContentBlob{
		Data:        data,
		Fingerprint: Fingerprint(data),
		Key:         key,
	}
}

func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:fingerprintLength]
}

func (b ContentBlob) Validate() error {
	if len(b.Data) == 0 {
		return ErrEmptyBlob
	}
	return nil
}
