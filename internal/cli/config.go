// Package cli — config.go implements the "packrat config" command group.
//
// The subcommands (get, set, unset, list, path) are the day-to-day surface
// of the settings store. They are deliberately thin: validation and
// persistence live in internal/store; this file only shapes input and
// output (text or JSON, per the --json global flag).
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/packrat/internal/store"
)

// NewConfigCommand creates the "config" command group with all its
// subcommands registered.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write packrat settings",
		Long: `Read and write settings in packrat's local store.

Keys are flat dotted lowercase segments, e.g. "color.theme". Values are
stored as strings.

Examples:
  packrat config set color.theme dark
  packrat config get color.theme
  packrat config list
  packrat config path`,
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigPathCommand())
	cmd.AddCommand(newConfigExportCommand())
	cmd.AddCommand(newConfigImportCommand())

	return cmd
}

// openStore creates the Store handle shared by all config subcommands.
func openStore() (*store.Store, error) {
	return store.New(storeName)
}

// newConfigGetCommand creates "config get <key>".
func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			value, err := st.Get(args[0])
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				printJSON(map[string]interface{}{"key": args[0], "value": value})
			} else {
				fmt.Println(FormatValue(value))
			}
			return nil
		},
	}
}

// newConfigSetCommand creates "config set <key> <value>".
func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			if err := st.Set(args[0], args[1]); err != nil {
				return err
			}

			logger.Debug().Str("key", args[0]).Str("path", st.Path()).Msg("setting stored")
			if IsJSONOutput() {
				printJSON(map[string]interface{}{"key": args[0], "value": args[1], "action": "set"})
			}
			return nil
		},
	}
}

// newConfigUnsetCommand creates "config unset <key>".
func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a key from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			if err := st.Unset(args[0]); err != nil {
				return err
			}

			if IsJSONOutput() {
				printJSON(map[string]interface{}{"key": args[0], "action": "unset"})
			}
			return nil
		},
	}
}

// newConfigListCommand creates "config list".
func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			all, err := st.All()
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				printJSON(all)
				return nil
			}

			for _, line := range FormatSettingsList(all) {
				fmt.Println(line)
			}
			return nil
		},
	}
}

// newConfigPathCommand creates "config path".
// Scripts use this to locate the settings file (e.g. for backups).
func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			if IsJSONOutput() {
				printJSON(map[string]interface{}{"path": st.Path(), "dir": st.Dir()})
			} else {
				fmt.Println(st.Path())
			}
			return nil
		},
	}
}

// newConfigExportCommand creates "config export [file]".
// With no argument the YAML document goes to stdout.
func newConfigExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all settings as YAML",
		Long: `Export all settings as a YAML document, to stdout or to a file.

Useful as a backup before uninstalling:
  packrat config export packrat-settings.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return st.ExportYAML(os.Stdout)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer func() { _ = f.Close() }()

			return st.ExportYAML(f)
		},
	}
}

// newConfigImportCommand creates "config import <file>".
// The import replaces the whole store with the document's contents.
func newConfigImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all settings from a YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			if err := st.ImportYAML(f); err != nil {
				return err
			}

			logger.Debug().Str("file", args[0]).Msg("settings imported")
			return nil
		},
	}
}

// FormatSettingsList converts a settings map into sorted "key=value" lines
// for text output. An empty map yields a single "(empty)" marker so the
// user can tell a successful empty listing from no output at all.
func FormatSettingsList(all map[string]any) []string {
	if len(all) == 0 {
		return []string{"(empty)"}
	}

	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s=%s", key, FormatValue(all[key])))
	}
	return lines
}

// FormatValue renders a stored value for text output. Strings print bare
// (no quotes); everything else falls back to fmt's default formatting.
func FormatValue(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// printJSON writes a value to stdout as indented JSON.
func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}
