// Package model defines the domain types and value objects for the
// packrat CLI.
//
// This package contains pure data structures with no external dependencies:
// settings-key and store-name validation, exit codes (ExitCode), and a
// custom error type (CLIError) that carries exit codes for proper OS
// process exit handling.
package model
