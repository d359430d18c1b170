package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateKey verifies the dotted-lowercase settings key grammar.
func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "single segment", key: "color", wantErr: false},
		{name: "dotted segments", key: "color.theme", wantErr: false},
		{name: "hyphenated segment", key: "proxy.http-timeout", wantErr: false},
		{name: "digits after letter", key: "s3.bucket", wantErr: false},
		{name: "empty", key: "", wantErr: true},
		{name: "uppercase", key: "Color.Theme", wantErr: true},
		{name: "leading dot", key: ".color", wantErr: true},
		{name: "trailing dot", key: "color.", wantErr: true},
		{name: "double dot", key: "color..theme", wantErr: true},
		{name: "segment starting with digit", key: "color.2theme", wantErr: true},
		{name: "underscore", key: "color_theme", wantErr: true},
		{name: "whitespace", key: "color theme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateStoreName verifies that store names are safe to use as a
// settings file basename.
func TestValidateStoreName(t *testing.T) {
	tests := []struct {
		name      string
		storeName string
		wantErr   bool
	}{
		{name: "simple", storeName: "packrat", wantErr: false},
		{name: "hyphenated", storeName: "packrat-cli", wantErr: false},
		{name: "single character", storeName: "p", wantErr: false},
		{name: "numeric", storeName: "123", wantErr: false},
		{name: "empty", storeName: "", wantErr: true},
		{name: "leading hyphen", storeName: "-packrat", wantErr: true},
		{name: "trailing hyphen", storeName: "packrat-", wantErr: true},
		{name: "unix path separator", storeName: "a/b", wantErr: true},
		{name: "windows path separator", storeName: `a\b`, wantErr: true},
		{name: "parent traversal", storeName: "../packrat", wantErr: true},
		{name: "dot name", storeName: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreName(tt.storeName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestCLIError verifies message formatting and errors.Is/As unwrapping.
func TestCLIError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewCLIError(ExitUserCancelled, "operation cancelled by user")
		assert.Equal(t, "operation cancelled by user", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		underlying := fmt.Errorf("permission denied")
		err := WrapCLIError(ExitStoreError, "failed to write settings file", underlying)

		assert.Equal(t, "failed to write settings file: permission denied", err.Error())
		assert.Equal(t, underlying, err.Unwrap())

		// errors.As must find the CLIError through a further wrap.
		outer := fmt.Errorf("config set: %w", err)
		var cliErr *CLIError
		require.True(t, errors.As(outer, &cliErr))
		assert.Equal(t, ExitStoreError, cliErr.Code)
	})
}
