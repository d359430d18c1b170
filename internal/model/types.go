// Package model defines the domain types for the packrat CLI.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// keyRegex validates settings keys: dotted lowercase segments, each segment
// starting with a letter and containing only letters, digits, and hyphens.
// Examples: "color", "color.theme", "proxy.http-timeout".
var keyRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*(\.[a-z][a-z0-9-]*)*$`)

// ValidateKey checks if the given string is a valid settings key.
// Valid keys are dotted lowercase segments such as "color.theme".
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("settings key must not be empty")
	}
	if !keyRegex.MatchString(key) {
		return fmt.Errorf("invalid settings key %q: must be dotted lowercase segments (e.g. color.theme)", key)
	}
	return nil
}

// nameRegex validates store names: alphanumeric + hyphens only,
// must start and end with alphanumeric.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateStoreName checks if the given name is a valid store name.
// The name becomes the settings file basename, so it must be a single
// path-safe token: alphanumeric plus hyphens, starting and ending with
// an alphanumeric character.
func ValidateStoreName(name string) error {
	if name == "" {
		return fmt.Errorf("store name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid store name %q: must not contain path separators", name)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid store name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// ExitCode defines standard CLI exit codes. These codes allow lifecycle
// scripts and CI systems to programmatically determine the outcome of a
// command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitStoreError indicates the settings store could not be read
	// or written.
	ExitStoreError ExitCode = 2

	// ExitKeyNotFound indicates the requested settings key does not exist.
	ExitKeyNotFound ExitCode = 3

	// ExitInvalidArgument indicates a key, value, or flag failed validation.
	ExitInvalidArgument ExitCode = 4

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
