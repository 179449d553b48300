package models

import "time"

// UploadTicket is a one-time direct upload target issued by object storage.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	StorageID string    `json:"storageId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
