package domain

import (
	"context"
	"time"
)

const (
	DefaultMaxRefundProofs  = 4
	DefaultMaxReturnMedia   = 9
	DefaultReturnWindowDays = 7
)

// Attachment is an uploaded file as received from the client.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type StoredObject struct {
	Key string
	URL string
}

// FileStore keeps uploaded evidence outside the database.
type FileStore interface {
	Put(ctx context.Context, key string, file Attachment) (*StoredObject, error)
	Remove(ctx context.Context, key string) error
}

type RefundProof struct {
	ID         string
	RefundID   string
	FileType   string
	FileURL    string
	ObjectKey  string
	Notes      string
	UploadedBy int64
	CreatedAt  time.Time
}

type ReturnMedia struct {
	ID              string
	ReturnRequestID string
	FileURL         string
	ObjectKey       string
	ContentType     string
	CreatedAt       time.Time
}

type DisputeEvidence struct {
	ID          string
	DisputeID   string
	FileURL     string
	ObjectKey   string
	ContentType string
	Notes       string
	UploadedBy  int64
	CreatedAt   time.Time
}
