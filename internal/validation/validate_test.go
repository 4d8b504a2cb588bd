package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jorjao81/zh-learn/errors"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		account string
		wantErr bool
	}{
		{name: "valid", account: "zhaudio01", wantErr: false},
		{name: "minimum length", account: "abc", wantErr: false},
		{name: "too short", account: "ab", wantErr: true},
		{name: "too long", account: strings.Repeat("a", 25), wantErr: true},
		{name: "uppercase", account: "ZhAudio", wantErr: true},
		{name: "hyphen", account: "zh-audio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.account)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateContainerName(t *testing.T) {
	tests := []struct {
		name      string
		container string
		wantErr   bool
	}{
		{name: "default container", container: "audio", wantErr: false},
		{name: "with hyphen", container: "zh-audio", wantErr: false},
		{name: "starts with digit", container: "1audio", wantErr: false},
		{name: "too short", container: "au", wantErr: true},
		{name: "too long", container: strings.Repeat("a", 64), wantErr: true},
		{name: "uppercase", container: "Audio", wantErr: true},
		{name: "dots not allowed", container: "zh.audio", wantErr: true},
		{name: "leading hyphen", container: "-audio", wantErr: true},
		{name: "trailing hyphen", container: "audio-", wantErr: true},
		{name: "double hyphen", container: "zh--audio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContainerName(tt.container)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{name: "simple", bucket: "audio", wantErr: false},
		{name: "dots allowed", bucket: "zh.audio.backup", wantErr: false},
		{name: "adjacent dots", bucket: "zh..audio", wantErr: true},
		{name: "ip address", bucket: "192.168.1.1", wantErr: true},
		{name: "underscore", bucket: "zh_audio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "folder and file", key: "x/a.mp3", wantErr: false},
		{name: "leading slash kept", key: "/a.mp3", wantErr: false},
		{name: "dot segments kept", key: "../a.mp3", wantErr: false},
		{name: "unicode", key: "词汇/你好.mp3", wantErr: false},
		{name: "empty", key: "", wantErr: true},
		{name: "control character", key: "x/a\x00.mp3", wantErr: true},
		{name: "too long", key: strings.Repeat("k", MaxKeyLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
		wantErr  bool
	}{
		{name: "nil", metadata: nil, wantErr: false},
		{name: "valid", metadata: map[string]string{"batch_id": "abc", "Source2": "cli"}, wantErr: false},
		{name: "hyphen in key", metadata: map[string]string{"batch-id": "abc"}, wantErr: true},
		{name: "leading digit", metadata: map[string]string{"1key": "abc"}, wantErr: true},
		{name: "empty key", metadata: map[string]string{"": "abc"}, wantErr: true},
		{name: "non ascii value", metadata: map[string]string{"word": "你好"}, wantErr: true},
		{name: "long value", metadata: map[string]string{"word": strings.Repeat("v", 2049)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMetadata(tt.metadata)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
