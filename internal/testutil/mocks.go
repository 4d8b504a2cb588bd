// Package testutil provides test utilities and mocks for the storage backends
// and the uploader. This package is internal and should only be used for
// testing within this module.
package testutil

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
)

// MockBlobAPI is a mock of the azblob client subset used by the azure backend.
type MockBlobAPI struct {
	UploadBufferFunc func(context.Context, string, string, []byte, *azblob.UploadBufferOptions) (azblob.UploadBufferResponse, error)
}

// UploadBuffer mocks the azblob UploadBuffer operation.
func (m *MockBlobAPI) UploadBuffer(
	ctx context.Context,
	containerName, blobName string,
	buffer []byte,
	o *azblob.UploadBufferOptions,
) (azblob.UploadBufferResponse, error) {
	if m.UploadBufferFunc != nil {
		return m.UploadBufferFunc(ctx, containerName, blobName, buffer, o)
	}
	return azblob.UploadBufferResponse{}, nil
}

// MockS3Client is a mock of the S3 client subset used by the s3 backend.
type MockS3Client struct {
	PutObjectFunc func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// MockMinioClient is a mock of the minio client subset used by the minio backend.
type MockMinioClient struct {
	PutObjectFunc func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error)
}

// PutObject mocks the minio PutObject operation.
func (m *MockMinioClient) PutObject(
	ctx context.Context,
	bucketName, objectName string,
	reader io.Reader,
	objectSize int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, bucketName, objectName, reader, objectSize, opts)
	}
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}
