// Package azure implements storage.Store on Azure Blob Storage.
//
// The client is built from an account-key connection string. SDK retries are
// disabled so each PutObject is exactly one service call.
package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/jorjao81/zh-learn/config"
	"github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
)

// API defines the subset of the azblob client used by Store.
type API interface {
	// UploadBuffer uploads a buffer as a block blob, overwriting any existing blob
	UploadBuffer(
		ctx context.Context,
		containerName, blobName string,
		buffer []byte,
		o *azblob.UploadBufferOptions,
	) (azblob.UploadBufferResponse, error)
}

// Verify that the azblob client implements our interface
var _ API = (*azblob.Client)(nil)

// Store uploads blobs into a single container.
type Store struct {
	api        API
	container  string
	serviceURL string
}

var _ storage.Store = (*Store)(nil)

// New creates a Store from the account credentials in cfg.
func New(cfg config.Config) (*Store, error) {
	return NewFromConnectionString(cfg.ConnectionString(), cfg.Container)
}

// NewFromConnectionString creates a Store for container from an account-key
// connection string. A BlobEndpoint entry overrides the account endpoint.
func NewFromConnectionString(connectionString, container string) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			// A negative value means one try and no retries.
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	})
	if err != nil {
		return nil, errors.NewError("azure.connect", errors.Configuration(err)).WithContainer(container)
	}

	return NewWithAPI(client, container, client.URL()), nil
}

// NewWithAPI creates a Store on top of a custom API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api API, container, serviceURL string) *Store {
	return &Store{
		api:        api,
		container:  container,
		serviceURL: strings.TrimRight(serviceURL, "/"),
	}
}

// ServiceURL returns the account endpoint for an account and DNS suffix.
func ServiceURL(account, endpointSuffix string) string {
	return fmt.Sprintf("https://%s.blob.%s", account, endpointSuffix)
}

// PutObject implements storage.Store.
func (s *Store) PutObject(
	ctx context.Context,
	key string,
	data []byte,
	opts storage.PutOptions,
) (*storage.PutResult, error) {
	input := &azblob.UploadBufferOptions{}

	if opts.ContentType != "" {
		input.HTTPHeaders = &blob.HTTPHeaders{
			BlobContentType: to.Ptr(opts.ContentType),
		}
	}

	if len(opts.Metadata) > 0 {
		input.Metadata = make(map[string]*string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			input.Metadata[k] = to.Ptr(v)
		}
	}

	output, err := s.api.UploadBuffer(ctx, s.container, key, data, input)
	if err != nil {
		return nil, errors.NewObjectError("azure.putObject", s.container, key, translateError(err))
	}

	result := &storage.PutResult{
		Key:  key,
		Size: int64(len(data)),
	}
	if output.ETag != nil {
		result.ETag = string(*output.ETag)
	}

	return result, nil
}

// ObjectURL implements storage.Store.
func (s *Store) ObjectURL(key string) string {
	return s.serviceURL + "/" + s.container + "/" + storage.EscapeKey(key)
}

// translateError maps Azure service error codes onto the module sentinels.
// Every returned error wraps errors.ErrTransport.
func translateError(err error) error {
	switch {
	case bloberror.HasCode(err,
		bloberror.AuthenticationFailed,
		bloberror.AuthorizationFailure,
		bloberror.AuthorizationPermissionMismatch,
		bloberror.InsufficientAccountPermissions,
	):
		return errors.Transport(fmt.Errorf("%w: %w", errors.ErrAccessDenied, err))
	case bloberror.HasCode(err, bloberror.ContainerNotFound):
		return errors.Transport(fmt.Errorf("%w: %w", errors.ErrContainerNotFound, err))
	}
	return errors.Transport(err)
}
