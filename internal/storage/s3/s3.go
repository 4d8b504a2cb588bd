// Package s3 implements storage.Store on Amazon S3 and S3 compatible endpoints.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/jorjao81/zh-learn/config"
	uperrors "github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
)

// API defines the S3 operations used by Store.
type API interface {
	// PutObject uploads an object to S3
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Verify that the AWS S3 client implements our interface
var _ API = (*s3.Client)(nil)

// AWS error codes that indicate rejected credentials.
var accessDeniedCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"ExpiredToken":          true,
}

// Store uploads objects into a single bucket.
type Store struct {
	api      API
	bucket   string
	region   string
	endpoint string
}

var _ storage.Store = (*Store)(nil)

// New creates a Store using the account name as access key id and the
// account key as secret access key. SDK retries are disabled.
func New(ctx context.Context, cfg config.Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Credentials.AccountName,
			cfg.Credentials.AccountKey,
			"",
		)),
		awsconfig.WithRetryMaxAttempts(1),
	)
	if err != nil {
		return nil, uperrors.NewError("s3.connect", uperrors.Configuration(err)).WithContainer(cfg.Container)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return NewWithAPI(s3.NewFromConfig(awsCfg, s3Opts...), cfg.Container, cfg.Region, cfg.Endpoint), nil
}

// NewWithAPI creates a Store on top of a custom API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api API, bucket, region, endpoint string) *Store {
	return &Store{
		api:      api,
		bucket:   bucket,
		region:   region,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// PutObject implements storage.Store.
func (s *Store) PutObject(
	ctx context.Context,
	key string,
	data []byte,
	opts storage.PutOptions,
) (*storage.PutResult, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}

	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if len(opts.Metadata) > 0 {
		input.Metadata = opts.Metadata
	}

	output, err := s.api.PutObject(ctx, input)
	if err != nil {
		return nil, uperrors.NewObjectError("s3.putObject", s.bucket, key, translateError(err))
	}

	return &storage.PutResult{
		Key:       key,
		Size:      int64(len(data)),
		ETag:      aws.ToString(output.ETag),
		VersionID: aws.ToString(output.VersionId),
	}, nil
}

// ObjectURL implements storage.Store. Custom endpoints use path style.
func (s *Store) ObjectURL(key string) string {
	escaped := storage.EscapeKey(key)
	if s.endpoint != "" {
		return s.endpoint + "/" + s.bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

// translateError maps S3 error codes onto the module sentinels.
func translateError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch {
		case accessDeniedCodes[apiErr.ErrorCode()]:
			return uperrors.Transport(fmt.Errorf("%w: %w", uperrors.ErrAccessDenied, err))
		case apiErr.ErrorCode() == "NoSuchBucket":
			return uperrors.Transport(fmt.Errorf("%w: %w", uperrors.ErrContainerNotFound, err))
		}
	}

	return uperrors.Transport(err)
}
