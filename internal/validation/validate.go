// Package validation provides centralized input validation logic.
// This includes account name, container name, blob key and metadata checks.
//
// Destination keys are validated only for what every store rejects outright.
// Leading slashes are kept as-is, so an empty folder still produces "/name".
package validation

import (
	"strings"
	"unicode"

	"github.com/jorjao81/zh-learn/errors"
)

// MaxKeyLength is the longest key accepted by every supported store.
const MaxKeyLength = 1024

// ValidateAccountName validates an Azure storage account name.
// Account names are 3 to 24 characters of lowercase letters and digits.
func ValidateAccountName(name string) error {
	if len(name) < 3 || len(name) > 24 {
		return errors.NewError("validateAccountName", errors.ErrInvalidInput).
			WithMessage("account name must be between 3 and 24 characters long")
	}
	for _, char := range name {
		if !isLowerAlnum(char) {
			return errors.NewError("validateAccountName", errors.ErrInvalidInput).
				WithMessage("account name can only contain lowercase letters and numbers")
		}
	}
	return nil
}

// ValidateContainerName validates an Azure blob container name.
func ValidateContainerName(container string) error {
	return validateDNSName("validateContainerName", container, false)
}

// ValidateBucketName validates an S3 bucket name. Buckets additionally allow
// dots but cannot look like an IP address.
func ValidateBucketName(bucket string) error {
	if err := validateDNSName("validateBucketName", bucket, true); err != nil {
		return err
	}
	if isIPAddress(bucket) {
		return errors.NewError("validateBucketName", errors.ErrInvalidInput).
			WithContainer(bucket).
			WithMessage("bucket name cannot be formatted as an IP address")
	}
	return nil
}

// ValidateKey validates a destination blob key.
func ValidateKey(key string) error {
	if key == "" {
		return errors.NewError("validateKey", errors.ErrInvalidKey).
			WithMessage("key cannot be empty")
	}
	if len(key) > MaxKeyLength {
		return errors.NewError("validateKey", errors.ErrInvalidKey).
			WithKey(key).
			WithMessage("key cannot exceed 1024 characters")
	}
	if hasControlCharacters(key) {
		return errors.NewError("validateKey", errors.ErrInvalidKey).
			WithKey(key).
			WithMessage("key cannot contain control characters")
	}
	return nil
}

// ValidateMetadata validates metadata names and values. Names must be valid
// identifiers since Azure sends them as x-ms-meta-<name> headers.
func ValidateMetadata(metadata map[string]string) error {
	for key, value := range metadata {
		if err := validateMetadataKey(key); err != nil {
			return err
		}
		if err := validateMetadataValue(value); err != nil {
			return err
		}
	}
	return nil
}

func validateDNSName(op, name string, allowDots bool) error {
	if len(name) < 3 || len(name) > 63 {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithContainer(name).
			WithMessage("name must be between 3 and 63 characters long")
	}

	for _, char := range name {
		if isLowerAlnum(char) || char == '-' || (allowDots && char == '.') {
			continue
		}
		return errors.NewError(op, errors.ErrInvalidInput).
			WithContainer(name).
			WithMessage("name can only contain lowercase letters, numbers and hyphens")
	}

	first, last := rune(name[0]), rune(name[len(name)-1])
	if !isLowerAlnum(first) || !isLowerAlnum(last) {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithContainer(name).
			WithMessage("name must start and end with a letter or number")
	}

	if strings.Contains(name, "--") || strings.Contains(name, "..") {
		return errors.NewError(op, errors.ErrInvalidInput).
			WithContainer(name).
			WithMessage("name cannot contain consecutive hyphens or dots")
	}

	return nil
}

func isLowerAlnum(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z')
}

// isIPAddress checks if a string is formatted as an IPv4 address
func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}

	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		num := 0
		for _, char := range part {
			if char < '0' || char > '9' {
				return false
			}
			num = num*10 + int(char-'0')
		}
		if num > 255 {
			return false
		}
	}

	return true
}

func hasControlCharacters(key string) bool {
	for _, char := range key {
		if unicode.IsControl(char) {
			return true
		}
	}
	return false
}

func validateMetadataKey(key string) error {
	if key == "" {
		return errors.NewError("validateMetadata", errors.ErrInvalidInput).
			WithMessage("metadata key cannot be empty")
	}
	if len(key) > 128 {
		return errors.NewError("validateMetadata", errors.ErrInvalidInput).
			WithMessage("metadata key cannot exceed 128 characters")
	}

	for i, char := range key {
		switch {
		case char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z'):
		case char >= '0' && char <= '9' && i > 0:
		default:
			return errors.NewError("validateMetadata", errors.ErrInvalidInput).
				WithMessage("metadata key must be a valid identifier: " + key)
		}
	}

	return nil
}

func validateMetadataValue(value string) error {
	if len(value) > 2048 {
		return errors.NewError("validateMetadata", errors.ErrInvalidInput).
			WithMessage("metadata value cannot exceed 2048 characters")
	}

	// Header values are limited to printable ASCII.
	for _, char := range value {
		if char < 32 || char > 126 {
			return errors.NewError("validateMetadata", errors.ErrInvalidInput).
				WithMessage("metadata value can only contain printable ASCII characters")
		}
	}

	return nil
}
