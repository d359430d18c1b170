package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/packrat/internal/model"
)

// storeDirName is the directory under the user config root that holds all
// settings files. Using a shared "configstore" directory (rather than one
// directory per tool) matches the artifact layout the cleanup hook targets.
const storeDirName = "configstore"

// filePerm is the mode for the settings file. Settings can contain tokens
// and proxy credentials, so the file is readable by the owner only.
const filePerm = 0o600

// Store persists a flat map of dotted settings keys to values in a single
// JSON file under the user's configuration directory.
//
// The store is stateless between calls: every operation reads the file,
// applies the change, and writes the file back atomically. A single-shot
// CLI never holds the store open long enough for caching to matter, and
// read-modify-write keeps concurrent invocations from clobbering each
// other's writes mid-file (the atomic rename makes each write all-or-nothing).
type Store struct {
	// name is the settings file basename without extension.
	name string

	// path is the absolute path to the settings JSON file.
	path string
}

// New creates a Store for the given tool name, rooted at the standard
// user configuration directory:
//
//	$XDG_CONFIG_HOME/configstore/<name>.json   (Linux)
//	~/Library/Application Support/configstore/<name>.json   (macOS)
//	%AppData%\configstore\<name>.json   (Windows)
//
// The settings file is not created until the first Set; New only computes
// the path.
func New(name string) (*Store, error) {
	if err := model.ValidateStoreName(name); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid store name", err)
	}

	// os.UserConfigDir respects XDG_CONFIG_HOME on Unix and falls back to
	// the platform default, which keeps path computation out of this package.
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError, "failed to locate user config directory", err)
	}

	return &Store{
		name: name,
		path: filepath.Join(base, storeDirName, name+".json"),
	}, nil
}

// NewAt creates a Store rooted at an explicit settings file path.
// Used by tests and by callers that receive the path from elsewhere.
func NewAt(path string) *Store {
	return &Store{
		name: filepath.Base(path),
		path: path,
	}
}

// Path returns the absolute path to the settings file.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory containing the settings file. This is the
// directory the uninstall cleanup removes after deleting the file.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// All reads the settings file and returns its contents as a map.
//
// A missing file is not an error — it yields an empty map, since a tool
// that has never persisted a setting behaves identically to one whose
// settings were all removed.
//
// The read path tolerates JSONC (comments and trailing commas): users
// hand-edit the settings file, and rejecting a file over a comment would
// strand them. Writes always emit canonical JSON, so comments survive
// only until the next Set.
func (s *Store) All() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to read settings file %s", s.path), err)
	}

	// Strip JSONC comments and trailing commas before parsing with the
	// standard encoding/json.
	cleanJSON := jsonc.ToJSON(data)

	var all map[string]any
	if err := json.Unmarshal(cleanJSON, &all); err != nil {
		return nil, model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("settings file %s is corrupt", s.path), err)
	}
	if all == nil {
		all = map[string]any{}
	}

	return all, nil
}

// Get returns the value stored under the given key.
// Returns a CLIError with ExitKeyNotFound when the key is absent.
func (s *Store) Get(key string) (any, error) {
	if err := model.ValidateKey(key); err != nil {
		return nil, model.WrapCLIError(model.ExitInvalidArgument, "invalid key", err)
	}

	all, err := s.All()
	if err != nil {
		return nil, err
	}

	value, ok := all[key]
	if !ok {
		return nil, model.NewCLIError(model.ExitKeyNotFound,
			fmt.Sprintf("key %q is not set", key))
	}
	return value, nil
}

// Set stores a value under the given key, creating the settings file and
// its directory on first use.
//
// Note: this is why the cleanup hook removes the directory even when the
// file is absent — creating the store initializes the directory before
// the first value is ever written.
func (s *Store) Set(key string, value any) error {
	if err := model.ValidateKey(key); err != nil {
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid key", err)
	}

	all, err := s.All()
	if err != nil {
		return err
	}

	all[key] = value
	return s.save(all)
}

// Unset removes the value stored under the given key.
// Returns a CLIError with ExitKeyNotFound when the key is absent, so the
// user learns about typos instead of getting a silent no-op.
func (s *Store) Unset(key string) error {
	if err := model.ValidateKey(key); err != nil {
		return model.WrapCLIError(model.ExitInvalidArgument, "invalid key", err)
	}

	all, err := s.All()
	if err != nil {
		return err
	}

	if _, ok := all[key]; !ok {
		return model.NewCLIError(model.ExitKeyNotFound,
			fmt.Sprintf("key %q is not set", key))
	}

	delete(all, key)
	return s.save(all)
}

// Clear removes all settings but keeps the file in place.
// Removing the file itself is the cleanup hook's job, not Clear's.
func (s *Store) Clear() error {
	return s.save(map[string]any{})
}

// save writes the full settings map back to disk.
//
// The write is atomic and durable: renameio writes to a temp file in the
// same directory, fsyncs, and renames over the target, so a crash mid-Set
// never leaves a truncated settings file behind.
func (s *Store) save(all map[string]any) error {
	if err := os.MkdirAll(s.Dir(), 0o700); err != nil {
		return model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to create settings directory %s", s.Dir()), err)
	}

	// Two-space indentation keeps the file diff- and hand-edit-friendly.
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to encode settings", err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(s.path, data, filePerm); err != nil {
		return model.WrapCLIError(model.ExitStoreError,
			fmt.Sprintf("failed to write settings file %s", s.path), err)
	}
	return nil
}

// ExportYAML writes the full settings map to w as YAML.
// Used to back up settings before an uninstall removes them.
func (s *Store) ExportYAML(w io.Writer) error {
	all, err := s.All()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(all); err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to encode settings as YAML", err)
	}
	return enc.Close()
}

// ImportYAML replaces the store contents with the YAML document read
// from r. Every top-level key in the document must be a valid settings
// key; the import is all-or-nothing so a bad backup cannot half-apply.
func (s *Store) ImportYAML(r io.Reader) error {
	var all map[string]any
	if err := yaml.NewDecoder(r).Decode(&all); err != nil {
		return model.WrapCLIError(model.ExitStoreError, "failed to parse YAML settings", err)
	}

	for key := range all {
		if err := model.ValidateKey(key); err != nil {
			return model.WrapCLIError(model.ExitInvalidArgument,
				fmt.Sprintf("invalid key %q in imported settings", key), err)
		}
	}

	return s.save(all)
}
