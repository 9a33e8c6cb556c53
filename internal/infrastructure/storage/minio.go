package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/LavaJover/shvark-refund-service/internal/config"
	"github.com/LavaJover/shvark-refund-service/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioFileStore keeps refund attachments in a single bucket.
type MinioFileStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioFileStore(cfg *config.RefundConfig) (*MinioFileStore, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioFileStore{
		client:  client,
		bucket:  cfg.Minio.Bucket,
		baseURL: strings.TrimRight(client.EndpointURL().String(), "/"),
	}, nil
}

// EnsureBucket creates the attachment bucket when it is missing.
func (s *MinioFileStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioFileStore) Put(ctx context.Context, key string, file domain.Attachment) (*domain.StoredObject, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(file.Data), int64(len(file.Data)),
		minio.PutObjectOptions{ContentType: file.ContentType})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}
	return &domain.StoredObject{Key: key, URL: ObjectURL(s.baseURL, s.bucket, key)}, nil
}

func (s *MinioFileStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func ObjectURL(baseURL, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, strings.TrimLeft(key, "/"))
}
