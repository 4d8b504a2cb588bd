package minio

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorjao81/zh-learn/config"
	uperrors "github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/storage"
	"github.com/jorjao81/zh-learn/internal/testutil"
)

func TestStore_PutObject(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		data    string
		opts    storage.PutOptions
		putFunc func(*testing.T) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error)
		wantErr bool
		wantIs  []error
	}{
		{
			name: "successful upload",
			key:  "x/a.mp3",
			data: "ID3 audio",
			opts: storage.PutOptions{
				ContentType: "audio/mpeg",
				Metadata:    map[string]string{"batch_id": "b1"},
			},
			putFunc: func(t *testing.T) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
				return func(_ context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
					assert.Equal(t, "audio", bucket)
					assert.Equal(t, "x/a.mp3", object)
					assert.Equal(t, int64(9), size)
					assert.Equal(t, "audio/mpeg", opts.ContentType)
					assert.Equal(t, "b1", opts.UserMetadata["batch_id"])

					body, err := io.ReadAll(r)
					require.NoError(t, err)
					assert.Equal(t, "ID3 audio", string(body))
					return minio.UploadInfo{ETag: "etag-1", VersionID: "v1", Size: size}, nil
				}
			},
		},
		{
			name: "access denied",
			key:  "x/a.mp3",
			data: "x",
			putFunc: func(*testing.T) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
				return func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
					return minio.UploadInfo{}, minio.ErrorResponse{Code: "SignatureDoesNotMatch", StatusCode: http.StatusForbidden}
				}
			},
			wantErr: true,
			wantIs:  []error{uperrors.ErrTransport, uperrors.ErrAccessDenied},
		},
		{
			name: "missing bucket",
			key:  "x/a.mp3",
			data: "x",
			putFunc: func(*testing.T) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
				return func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
					return minio.UploadInfo{}, minio.ErrorResponse{Code: "NoSuchBucket", StatusCode: http.StatusNotFound}
				}
			},
			wantErr: true,
			wantIs:  []error{uperrors.ErrTransport, uperrors.ErrContainerNotFound},
		},
		{
			name: "connection refused",
			key:  "x/a.mp3",
			data: "x",
			putFunc: func(*testing.T) func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
				return func(context.Context, string, string, io.Reader, int64, minio.PutObjectOptions) (minio.UploadInfo, error) {
					return minio.UploadInfo{}, errors.New("connection refused")
				}
			},
			wantErr: true,
			wantIs:  []error{uperrors.ErrTransport},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &testutil.MockMinioClient{PutObjectFunc: tt.putFunc(t)}
			store := NewWithAPI(mock, "audio", "http://localhost:9000/")

			result, err := store.PutObject(context.Background(), tt.key, []byte(tt.data), tt.opts)

			if tt.wantErr {
				require.Error(t, err)
				for _, target := range tt.wantIs {
					assert.ErrorIs(t, err, target)
				}
				var opErr *uperrors.Error
				require.True(t, errors.As(err, &opErr))
				assert.Equal(t, "minio.putObject", opErr.Op)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.key, result.Key)
			assert.Equal(t, int64(len(tt.data)), result.Size)
			assert.Equal(t, "etag-1", result.ETag)
			assert.Equal(t, "v1", result.VersionID)
		})
	}
}

func TestStore_ObjectURL(t *testing.T) {
	store := NewWithAPI(&testutil.MockMinioClient{}, "audio", "http://localhost:9000/")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain key", key: "x/a.mp3", want: "http://localhost:9000/audio/x/a.mp3"},
		{name: "leading slash kept", key: "/a.mp3", want: "http://localhost:9000/audio//a.mp3"},
		{name: "space escaped", key: "x/a b.mp3", want: "http://localhost:9000/audio/x/a%20b.mp3"},
		{name: "non ascii escaped", key: "x/你好.mp3", want: "http://localhost:9000/audio/x/%E4%BD%A0%E5%A5%BD.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.ObjectURL(tt.key))
		})
	}
}

func TestNew_SingleAttempt(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "service unavailable", status: http.StatusServiceUnavailable},
		{name: "internal server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, http.MethodPut, r.Method)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			// The region is set so the client does not look up the bucket location.
			store, err := New(config.Config{
				Credentials: config.Credentials{AccountName: "minioadmin", AccountKey: "minioadmin"},
				Container:   "audio",
				Endpoint:    strings.TrimPrefix(srv.URL, "http://"),
				UseSSL:      false,
				Region:      config.DefaultRegion,
			})
			require.NoError(t, err)

			_, err = store.PutObject(context.Background(), "x/a.mp3", []byte("data"), storage.PutOptions{})
			require.Error(t, err)
			assert.True(t, uperrors.IsTransport(err))
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestNew(t *testing.T) {
	store, err := New(config.Config{
		Credentials: config.Credentials{AccountName: "minioadmin", AccountKey: "minioadmin"},
		Container:   "audio",
		Endpoint:    "localhost:9000",
		UseSSL:      false,
		Region:      config.DefaultRegion,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/audio/k.mp3", store.ObjectURL("k.mp3"))

	t.Run("rejects endpoint with a path", func(t *testing.T) {
		_, err := New(config.Config{
			Credentials: config.Credentials{AccountName: "a", AccountKey: "b"},
			Container:   "audio",
			Endpoint:    "localhost:9000/bucket",
		})
		require.Error(t, err)
		assert.True(t, uperrors.IsConfiguration(err))
	})
}
