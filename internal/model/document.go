package model

import "time"

// Document represents an uploaded file in the system.
// Metadata lives in the database; the bytes themselves live in object
// storage under StorageKey. The declared content type and size are stored
// verbatim from the upload.
// Active is a soft-delete marker: inactive documents are hidden from every
// read path but never physically removed.
type Document struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	FileName         string    `json:"file_name"`
	FileType         string    `json:"file_type"`
	FileSize         int64     `json:"file_size"`
	StorageKey       string    `json:"-"`
	UploaderID       int64     `json:"uploader_id"`
	UploaderName     string    `json:"uploader_name"`
	UploaderUsername string    `json:"uploader_username"`
	UploadedAt       time.Time `json:"uploaded_at"`
	Active           bool      `json:"-"`
}
