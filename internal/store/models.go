package store

import (
	"encoding/json"
	"time"

	"github.com/sayitbetter/backend/internal/core"
)

// CloudRecord is the server-side shape of one user's encrypted backup.
// EncryptedData stays an opaque JSON object: the server validates that the
// four encryption sub-fields are present and never looks further.
type CloudRecord struct {
	EncryptedData json.RawMessage `json:"encryptedData"`
	EntryCount    int             `json:"entryCount"`
	Checksum      string          `json:"checksum"`
	Version       int             `json:"version"`
	LastModified  string          `json:"lastModified"`
	UpdatedAt     string          `json:"updatedAt"`
}

// CloudUpload is the request body of a cloud backup upload.
type CloudUpload struct {
	UserID        string          `json:"userId"`
	EncryptedData json.RawMessage `json:"encryptedData"`
	EntryCount    int             `json:"entryCount"`
	LastModified  string          `json:"lastModified"`
	Checksum      string          `json:"checksum"`
	Version       int             `json:"version"`
}

// Record builds the stored record from an upload, stamping UpdatedAt and
// defaulting Version and LastModified.
func (u *CloudUpload) Record(now time.Time) *CloudRecord {
	version := u.Version
	if version == 0 {
		version = 1
	}
	lastModified := u.LastModified
	if lastModified == "" {
		lastModified = now.UTC().Format(time.RFC3339)
	}
	return &CloudRecord{
		EncryptedData: u.EncryptedData,
		EntryCount:    u.EntryCount,
		Checksum:      u.Checksum,
		Version:       version,
		LastModified:  lastModified,
		UpdatedAt:     now.UTC().Format(time.RFC3339),
	}
}

// ValidateEncryptedData checks the structural shape of an encrypted payload:
// the four encryption sub-fields must be present. Contents are ciphertext
// and are deliberately not interpreted.
func ValidateEncryptedData(raw json.RawMessage) error {
	if len(raw) == 0 {
		return core.NewValidationError("missing required field: encryptedData")
	}

	var probe struct {
		Encrypted *string `json:"encrypted"`
		Salt      *string `json:"salt"`
		IV        *string `json:"iv"`
		Algorithm *string `json:"algorithm"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return core.NewValidationError("encryptedData must be an object")
	}

	for field, value := range map[string]*string{
		"encrypted": probe.Encrypted,
		"salt":      probe.Salt,
		"iv":        probe.IV,
		"algorithm": probe.Algorithm,
	} {
		if value == nil {
			return core.NewValidationError("missing required encryption field: %s", field)
		}
	}
	return nil
}

// Validate checks the structural shape of an upload before it reaches any
// storage backend.
func (u *CloudUpload) Validate() error {
	if u.UserID == "" {
		return core.NewValidationError("missing required field: userId")
	}
	if err := ValidateUserID(u.UserID); err != nil {
		return err
	}
	if u.Checksum == "" {
		return core.NewValidationError("missing required field: checksum")
	}
	return ValidateEncryptedData(u.EncryptedData)
}
