// Package lifecycle reads the host package manager's recorded invocation.
//
// When npm runs a lifecycle script (preinstall, preuninstall, ...), it does
// not tell the script which user command triggered it. The only signal is
// the npm_config_argv environment variable: a JSON object recording the
// argument list of the original npm invocation. A preuninstall hook fires
// on both `npm uninstall` and `npm update`, so the hook must inspect the
// recorded tokens to tell an explicit removal apart from an upgrade.
package lifecycle

import (
	"encoding/json"
	"fmt"
	"os"
)

// EnvArgv is the environment variable under which npm exposes the recorded
// invocation to lifecycle scripts. The value is a JSON object with three
// string arrays: "remain", "cooked", and "original".
const EnvArgv = "npm_config_argv"

// uninstallToken is the literal command token that marks an explicit
// removal. `npm update` records "update" instead, which is how the
// cleanup gate distinguishes the two.
const uninstallToken = "uninstall"

// Invocation is the decoded npm_config_argv structure.
//
// Example for `npm uninstall -g packrat`:
//
//	{"remain":["packrat"],"cooked":["uninstall","--global","packrat"],"original":["uninstall","-g","packrat"]}
type Invocation struct {
	// Remain holds the positional arguments left after flag parsing.
	Remain []string `json:"remain"`

	// Cooked holds the normalized argument list (short flags expanded).
	Cooked []string `json:"cooked"`

	// Original holds the raw tokens exactly as the user typed them.
	Original []string `json:"original"`
}

// ParseInvocation decodes a JSON-encoded npm_config_argv value.
//
// An empty string is treated as "no invocation recorded" rather than a
// JSON syntax error, because lifecycle scripts can legitimately run in
// environments (direct execution, non-npm package managers) where the
// variable is simply unset.
func ParseInvocation(raw string) (*Invocation, error) {
	if raw == "" {
		return nil, fmt.Errorf("no invocation recorded (%s is empty)", EnvArgv)
	}

	var inv Invocation
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", EnvArgv, err)
	}

	return &inv, nil
}

// FromEnviron reads and decodes the invocation from the current process
// environment. Returns an error when the variable is unset or malformed;
// callers decide whether that closes or opens their gate.
func FromEnviron() (*Invocation, error) {
	return ParseInvocation(os.Getenv(EnvArgv))
}

// Tokens returns the command tokens to gate on. The original tokens are
// preferred because they reflect what the user actually typed; when npm
// omits them (older versions populated only cooked), the cooked form is
// used instead.
func (i *Invocation) Tokens() []string {
	if len(i.Original) > 0 {
		return i.Original
	}
	return i.Cooked
}

// Contains reports whether the invocation's tokens include the given
// literal token. Matching is exact per token — never substring matching
// against a joined command line, which would also match package names
// or flag values that merely contain the word.
func (i *Invocation) Contains(token string) bool {
	for _, t := range i.Tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// IsUninstall reports whether the recorded invocation was an explicit
// removal (`npm uninstall ...`) rather than an upgrade or any other
// command that also fires the preuninstall hook.
func (i *Invocation) IsUninstall() bool {
	return i.Contains(uninstallToken)
}
