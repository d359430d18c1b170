package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseInvocation verifies decoding of the npm_config_argv JSON shape,
// including the empty and malformed cases that must close the gate.
func TestParseInvocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		want    *Invocation
	}{
		{
			name: "global uninstall",
			raw:  `{"remain":["packrat"],"cooked":["uninstall","--global","packrat"],"original":["uninstall","-g","packrat"]}`,
			want: &Invocation{
				Remain:   []string{"packrat"},
				Cooked:   []string{"uninstall", "--global", "packrat"},
				Original: []string{"uninstall", "-g", "packrat"},
			},
		},
		{
			name: "global update",
			raw:  `{"remain":["packrat"],"cooked":["update","--global","packrat"],"original":["update","-g","packrat"]}`,
			want: &Invocation{
				Remain:   []string{"packrat"},
				Cooked:   []string{"update", "--global", "packrat"},
				Original: []string{"update", "-g", "packrat"},
			},
		},
		{
			name: "missing arrays decode to nil slices",
			raw:  `{}`,
			want: &Invocation{},
		},
		{
			name:    "empty value means no invocation recorded",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			raw:     `{"original":["uninstall"`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			raw:     `["uninstall","-g","packrat"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInvocation(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestInvocationTokens verifies that the original tokens are preferred and
// the cooked form is only a fallback.
func TestInvocationTokens(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want []string
	}{
		{
			name: "original preferred",
			inv: Invocation{
				Cooked:   []string{"uninstall", "--global", "packrat"},
				Original: []string{"uninstall", "-g", "packrat"},
			},
			want: []string{"uninstall", "-g", "packrat"},
		},
		{
			name: "cooked fallback when original is empty",
			inv: Invocation{
				Cooked: []string{"uninstall", "packrat"},
			},
			want: []string{"uninstall", "packrat"},
		},
		{
			name: "both empty",
			inv:  Invocation{},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.Tokens())
		})
	}
}

// TestIsUninstall verifies the token gate, including the cases where
// substring matching would give the wrong answer: a package name that
// merely contains "uninstall" must not open the gate.
func TestIsUninstall(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
		want bool
	}{
		{
			name: "explicit uninstall",
			inv:  Invocation{Original: []string{"uninstall", "-g", "packrat"}},
			want: true,
		},
		{
			name: "update does not open the gate",
			inv:  Invocation{Original: []string{"update", "-g", "packrat"}},
			want: false,
		},
		{
			name: "install does not open the gate",
			inv:  Invocation{Original: []string{"install", "-g", "packrat"}},
			want: false,
		},
		{
			name: "package name containing the word is not a match",
			inv:  Invocation{Original: []string{"update", "-g", "uninstall-helper"}},
			want: false,
		},
		{
			name: "uninstall anywhere in the token list",
			inv:  Invocation{Original: []string{"--registry", "https://example.invalid", "uninstall", "packrat"}},
			want: true,
		},
		{
			name: "gate works on cooked fallback",
			inv:  Invocation{Cooked: []string{"uninstall", "--global", "packrat"}},
			want: true,
		},
		{
			name: "empty invocation",
			inv:  Invocation{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inv.IsUninstall())
		})
	}
}
