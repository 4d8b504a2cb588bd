// Package minio implements storage.Store on a MinIO (or other S3 compatible)
// server using minio-go.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jorjao81/zh-learn/config"
	uperrors "github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
)

// API is the subset of *minio.Client used by Store.
type API interface {
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

var _ API = (*minio.Client)(nil)

// Store uploads objects into a single MinIO bucket.
type Store struct {
	api     API
	bucket  string
	baseURL string
}

var _ storage.Store = (*Store)(nil)

// New connects to cfg.Endpoint with static V4 credentials. Client retries
// are limited to a single attempt.
func New(cfg config.Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:      credentials.NewStaticV4(cfg.Credentials.AccountName, cfg.Credentials.AccountKey, ""),
		Secure:     cfg.UseSSL,
		Region:     cfg.Region,
		MaxRetries: 1,
	})
	if err != nil {
		return nil, uperrors.NewError("minio.connect", uperrors.Configuration(err)).WithContainer(cfg.Container)
	}

	return NewWithAPI(client, cfg.Container, client.EndpointURL().String()), nil
}

// NewWithAPI creates a Store over api. baseURL is the scheme and host
// object URLs are built from.
func NewWithAPI(api API, bucket, baseURL string) *Store {
	return &Store{
		api:     api,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// PutObject implements storage.Store.
func (s *Store) PutObject(
	ctx context.Context,
	key string,
	data []byte,
	opts storage.PutOptions,
) (*storage.PutResult, error) {
	info, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		UserMetadata: opts.Metadata,
	})
	if err != nil {
		return nil, uperrors.NewObjectError("minio.putObject", s.bucket, key, translateError(err))
	}

	return &storage.PutResult{
		Key:       key,
		Size:      int64(len(data)),
		ETag:      info.ETag,
		VersionID: info.VersionID,
	}, nil
}

// ObjectURL implements storage.Store using path style addressing.
func (s *Store) ObjectURL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + storage.EscapeKey(key)
}

func translateError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return uperrors.Transport(fmt.Errorf("%w: %w", uperrors.ErrAccessDenied, err))
	case "NoSuchBucket":
		return uperrors.Transport(fmt.Errorf("%w: %w", uperrors.ErrContainerNotFound, err))
	default:
		return uperrors.Transport(err)
	}
}
