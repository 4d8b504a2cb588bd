// Package config builds the upload configuration from the process environment.
//
// The configuration is resolved once at start-up and passed by value to the
// components that need it. Nothing else in the module reads the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	uperrors "github.com/jorjao81/zh-learn/errors"
	"github.com/jorjao81/zh-learn/internal/validation"
)

// Environment variables read by Load.
const (
	EnvAccountName    = "AZ_STORAGE_ACCOUNT_NAME_ZH"
	EnvAccountKey     = "AZ_STORAGE_ACCOUNT_KEY_ZH"
	EnvEndpointSuffix = "AZ_STORAGE_ENDPOINT_SUFFIX"
	EnvBackend        = "ZH_STORAGE_BACKEND"
	EnvContainer      = "ZH_STORAGE_CONTAINER"
	EnvRegion         = "ZH_STORAGE_REGION"
	EnvEndpoint       = "ZH_STORAGE_ENDPOINT"
	EnvUseSSL         = "ZH_STORAGE_USE_SSL"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultContainer      = "audio"
	DefaultEndpointSuffix = "core.windows.net"
	DefaultRegion         = "us-east-1"
)

// Backend names the object store implementation.
type Backend string

// Supported backends.
const (
	BackendAzure Backend = "azure"
	BackendS3    Backend = "s3"
	BackendMinIO Backend = "minio"
)

// LookupFunc resolves an environment variable. It has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Credentials identify the storage account. For S3 compatible backends the
// account name is the access key id and the account key is the secret.
type Credentials struct {
	AccountName string
	AccountKey  string
}

// IsComplete reports whether both the name and the key are set.
func (c Credentials) IsComplete() bool {
	return c.AccountName != "" && c.AccountKey != ""
}

// String implements fmt.Stringer without revealing the key.
func (c Credentials) String() string {
	if c.AccountKey == "" {
		return fmt.Sprintf("account=%s key=<unset>", c.AccountName)
	}
	return fmt.Sprintf("account=%s key=<redacted>", c.AccountName)
}

// Validate returns a configuration error naming the first missing variable.
// The key is checked before the name.
func (c Credentials) Validate() error {
	if c.AccountKey == "" {
		return uperrors.NewError("config", uperrors.ErrConfiguration).
			WithMessage(EnvAccountKey + " environment variable not set")
	}
	if c.AccountName == "" {
		return uperrors.NewError("config", uperrors.ErrConfiguration).
			WithMessage(EnvAccountName + " environment variable not set")
	}
	return nil
}

// Config holds everything needed to build a store and run a batch.
type Config struct {
	Backend     Backend
	Credentials Credentials

	// Container is the blob container (bucket for S3 compatible backends).
	Container string

	// EndpointSuffix is the Azure storage DNS suffix.
	EndpointSuffix string

	// Region is the S3 region.
	Region string

	// Endpoint overrides the S3 endpoint URL or sets the MinIO host:port.
	Endpoint string

	// UseSSL selects https for MinIO.
	UseSSL bool
}

// Load resolves the configuration through lookup. When envFile is non-empty
// and the file exists its variables are merged in first; variables already
// visible through lookup take precedence. A missing file is not an error.
// Load does not validate; call Validate before using the result.
func Load(lookup LookupFunc, envFile string) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			lookup = overlay(lookup, fileVars)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, uperrors.NewError("config", uperrors.Configuration(err)).
				WithPath(envFile).
				WithMessage("reading env file")
		}
	}

	cfg := Config{
		Backend: Backend(strings.ToLower(get(lookup, EnvBackend, string(BackendAzure)))),
		Credentials: Credentials{
			AccountName: get(lookup, EnvAccountName, ""),
			AccountKey:  get(lookup, EnvAccountKey, ""),
		},
		Container:      get(lookup, EnvContainer, DefaultContainer),
		EndpointSuffix: get(lookup, EnvEndpointSuffix, DefaultEndpointSuffix),
		Region:         get(lookup, EnvRegion, DefaultRegion),
		Endpoint:       get(lookup, EnvEndpoint, ""),
		UseSSL:         true,
	}

	if raw, ok := lookup(EnvUseSSL); ok && raw != "" {
		useSSL, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, uperrors.NewError("config", uperrors.Configuration(err)).
				WithMessage(EnvUseSSL + " must be a boolean")
		}
		cfg.UseSSL = useSSL
	}

	return cfg, nil
}

// Validate checks the configuration. Credentials are checked first so that a
// missing key is always the reported problem.
func (c Config) Validate() error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}

	switch c.Backend {
	case BackendAzure:
		if err := validation.ValidateAccountName(c.Credentials.AccountName); err != nil {
			return uperrors.NewError("config", uperrors.Configuration(err))
		}
		if err := validation.ValidateContainerName(c.Container); err != nil {
			return uperrors.NewError("config", uperrors.Configuration(err))
		}
		if c.EndpointSuffix == "" {
			return uperrors.NewError("config", uperrors.ErrConfiguration).
				WithMessage(EnvEndpointSuffix + " cannot be empty")
		}
	case BackendS3:
		if err := validation.ValidateBucketName(c.Container); err != nil {
			return uperrors.NewError("config", uperrors.Configuration(err))
		}
	case BackendMinIO:
		if err := validation.ValidateBucketName(c.Container); err != nil {
			return uperrors.NewError("config", uperrors.Configuration(err))
		}
		if c.Endpoint == "" {
			return uperrors.NewError("config", uperrors.ErrConfiguration).
				WithMessage(EnvEndpoint + " is required for the minio backend")
		}
	default:
		return uperrors.NewError("config", uperrors.ErrConfiguration).
			WithMessage(fmt.Sprintf("unknown %s %q", EnvBackend, c.Backend))
	}

	return nil
}

// ConnectionString returns the Azure storage connection string.
func (c Config) ConnectionString() string {
	return "DefaultEndpointsProtocol=https;AccountName=" + c.Credentials.AccountName +
		";AccountKey=" + c.Credentials.AccountKey +
		";EndpointSuffix=" + c.EndpointSuffix
}

func get(lookup LookupFunc, key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func overlay(lookup LookupFunc, fileVars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}
}
