// Package cli — config_test.go contains unit tests for the pure formatting
// functions used by the config command's text output.
//
// These tests verify data transformation logic without requiring a real
// settings store or any filesystem access.
package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFormatSettingsList verifies that FormatSettingsList produces sorted
// "key=value" lines and marks an empty store explicitly.
func TestFormatSettingsList(t *testing.T) {
	tests := []struct {
		name string
		all  map[string]any
		want []string
	}{
		{
			name: "empty map returns marker",
			all:  map[string]any{},
			want: []string{"(empty)"},
		},
		{
			name: "nil map returns marker",
			all:  nil,
			want: []string{"(empty)"},
		},
		{
			name: "single entry",
			all:  map[string]any{"color.theme": "dark"},
			want: []string{"color.theme=dark"},
		},
		{
			name: "entries sorted by key",
			all: map[string]any{
				"proxy.host":  "proxy.example.com",
				"color.theme": "dark",
				"editor":      "vim",
			},
			want: []string{
				"color.theme=dark",
				"editor=vim",
				"proxy.host=proxy.example.com",
			},
		},
		{
			name: "non-string values use default formatting",
			all: map[string]any{
				"retries": float64(3),
				"beta":    true,
			},
			want: []string{
				"beta=true",
				"retries=3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSettingsList(tt.all)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestFormatValue verifies that strings print bare while other JSON value
// types fall back to fmt's default formatting.
func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string prints bare", value: "dark", want: "dark"},
		{name: "empty string", value: "", want: ""},
		{name: "bool", value: true, want: "true"},
		{name: "number from JSON", value: float64(8080), want: "8080"},
		{name: "nil", value: nil, want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}
