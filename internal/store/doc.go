// Package store persists packrat's per-user settings in a single JSON
// file under the user's configuration directory
// ($XDG_CONFIG_HOME/configstore/packrat.json on Linux).
//
// The file format is JSON with comments tolerated on read (via
// github.com/tidwall/jsonc), since users hand-edit the file. Writes go
// through github.com/google/renameio/v2 so the file is replaced
// atomically and durably.
//
// The store also owns the two paths the uninstall cleanup operates on:
// Path() is the settings file and Dir() its containing directory.
package store
