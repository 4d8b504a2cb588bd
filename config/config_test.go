package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uperrors "github.com/jorjao81/zh-learn/errors"
)

func lookupFrom(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{
		EnvAccountName: "zhaudio",
		EnvAccountKey:  "c2VjcmV0",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, BackendAzure, cfg.Backend)
	assert.Equal(t, "zhaudio", cfg.Credentials.AccountName)
	assert.Equal(t, "c2VjcmV0", cfg.Credentials.AccountKey)
	assert.Equal(t, DefaultContainer, cfg.Container)
	assert.Equal(t, DefaultEndpointSuffix, cfg.EndpointSuffix)
	assert.Equal(t, DefaultRegion, cfg.Region)
	assert.True(t, cfg.UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(lookupFrom(map[string]string{
		EnvAccountName: "minioadmin",
		EnvAccountKey:  "minioadmin",
		EnvBackend:     "MinIO",
		EnvContainer:   "zh.audio",
		EnvEndpoint:    "localhost:9000",
		EnvUseSSL:      "false",
	}), "")
	require.NoError(t, err)

	assert.Equal(t, BackendMinIO, cfg.Backend)
	assert.Equal(t, "zh.audio", cfg.Container)
	assert.Equal(t, "localhost:9000", cfg.Endpoint)
	assert.False(t, cfg.UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidUseSSL(t *testing.T) {
	_, err := Load(lookupFrom(map[string]string{EnvUseSSL: "sometimes"}), "")
	require.Error(t, err)
	assert.True(t, uperrors.IsConfiguration(err))
	assert.Contains(t, err.Error(), EnvUseSSL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := EnvAccountName + "=fromfile\n" + EnvAccountKey + "=filekey\n" + EnvContainer + "=clips\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Run("file fills unset variables", func(t *testing.T) {
		cfg, err := Load(lookupFrom(map[string]string{}), envFile)
		require.NoError(t, err)
		assert.Equal(t, "fromfile", cfg.Credentials.AccountName)
		assert.Equal(t, "filekey", cfg.Credentials.AccountKey)
		assert.Equal(t, "clips", cfg.Container)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		cfg, err := Load(lookupFrom(map[string]string{EnvAccountName: "fromenv"}), envFile)
		require.NoError(t, err)
		assert.Equal(t, "fromenv", cfg.Credentials.AccountName)
		assert.Equal(t, "filekey", cfg.Credentials.AccountKey)
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		cfg, err := Load(lookupFrom(map[string]string{}), filepath.Join(dir, "absent.env"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Credentials.AccountName)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Backend:        BackendAzure,
		Credentials:    Credentials{AccountName: "zhaudio", AccountKey: "key"},
		Container:      DefaultContainer,
		EndpointSuffix: DefaultEndpointSuffix,
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:        "missing key reported first",
			mutate:      func(c *Config) { c.Credentials = Credentials{} },
			errContains: EnvAccountKey + " environment variable not set",
		},
		{
			name:        "missing name",
			mutate:      func(c *Config) { c.Credentials.AccountName = "" },
			errContains: EnvAccountName + " environment variable not set",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.Backend = "gcs" },
			errContains: "unknown " + EnvBackend,
		},
		{
			name:        "invalid azure account",
			mutate:      func(c *Config) { c.Credentials.AccountName = "Not-Valid" },
			errContains: "account name",
		},
		{
			name:        "invalid container",
			mutate:      func(c *Config) { c.Container = "Audio" },
			errContains: "lowercase",
		},
		{
			name:        "empty endpoint suffix",
			mutate:      func(c *Config) { c.EndpointSuffix = "" },
			errContains: EnvEndpointSuffix,
		},
		{
			name: "minio without endpoint",
			mutate: func(c *Config) {
				c.Backend = BackendMinIO
				c.Endpoint = ""
			},
			errContains: EnvEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, uperrors.IsConfiguration(err))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("s3 accepts access key ids as account names", func(t *testing.T) {
		cfg := valid
		cfg.Backend = BackendS3
		cfg.Credentials.AccountName = "AKIAEXAMPLE"
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_ConnectionString(t *testing.T) {
	cfg := Config{
		Credentials:    Credentials{AccountName: "zhaudio", AccountKey: "abc=="},
		EndpointSuffix: DefaultEndpointSuffix,
	}

	assert.Equal(t,
		"DefaultEndpointsProtocol=https;AccountName=zhaudio;AccountKey=abc==;EndpointSuffix=core.windows.net",
		cfg.ConnectionString(),
	)
}

func TestCredentials_String(t *testing.T) {
	assert.Equal(t, "account=zhaudio key=<redacted>", Credentials{AccountName: "zhaudio", AccountKey: "secret"}.String())
	assert.Equal(t, "account= key=<unset>", Credentials{}.String())
	assert.NotContains(t, Credentials{AccountName: "a", AccountKey: "secret"}.String(), "secret")
}
