// Package storage persists uploaded identification documents to S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carepulse/carepulse-api/internal/domain/patient"
)

// ErrUnavailable signals that the object store rejected the upload. A
// registration that carries a document must fail when this happens.
var ErrUnavailable = errors.New("document store unavailable")

// S3API is the subset of the S3 client used by DocumentStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DocumentStore writes identification documents to a bucket. Only the
// object metadata is returned; the patient record keeps the key, not
// the bytes.
type DocumentStore struct {
	bucket string
	client S3API
	log    *zap.Logger
}

// NewDocumentStore creates a store. With an empty bucket the store is
// disabled and uploads report ErrUnavailable.
func NewDocumentStore(client S3API, bucket string, log *zap.Logger) *DocumentStore {
	return &DocumentStore{bucket: bucket, client: client, log: log}
}

func (s *DocumentStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.client != nil
}

// Upload stores one document under a per-user key and returns its
// metadata. The object key embeds a fresh UUID so repeated uploads of the
// same filename never collide.
func (s *DocumentStore) Upload(ctx context.Context, userID uuid.UUID, fileName, contentType string, body io.Reader, size int64) (*patient.IdentificationDocument, error) {
	if !s.Enabled() {
		return nil, ErrUnavailable
	}

	key := fmt.Sprintf("identification/%s/%s-%s", userID, uuid.NewString(), path.Base(fileName))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.log.Error("identification document upload failed",
			zap.String("user_id", userID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.log.Info("identification document stored",
		zap.String("user_id", userID.String()),
		zap.String("key", key),
		zap.Int64("size_bytes", size),
	)

	return &patient.IdentificationDocument{
		FileName:    path.Base(fileName),
		ContentType: contentType,
		S3Key:       key,
		SizeBytes:   size,
		UploadedAt:  time.Now().UTC(),
	}, nil
}
