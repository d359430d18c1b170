// Package cli — cleanup.go implements the "packrat cleanup" command.
//
// This is the preuninstall lifecycle hook, wired from package.json:
//
//	"scripts": { "preuninstall": "packrat cleanup" }
//
// The hook fires on both `npm uninstall` and `npm update`, so the command
// inspects the recorded invocation (npm_config_argv) and only removes the
// settings store for an explicit uninstall. It is hidden from help output
// because users are not expected to run it directly.
//
// The command always exits 0: whatever happens to the settings file, the
// package manager's own removal must proceed.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/packrat/internal/cleanup"
	"github.com/mmr-tortoise/packrat/internal/lifecycle"
	"github.com/mmr-tortoise/packrat/internal/store"
)

// cleanupFlags holds the flag values for the cleanup command.
type cleanupFlags struct {
	// assumeYes skips the interactive confirmation prompt when true.
	assumeYes bool

	// dryRun reports what would be removed without touching the filesystem.
	dryRun bool
}

// NewCleanupCommand creates the "cleanup" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCleanupCommand() *cobra.Command {
	flags := &cleanupFlags{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove the settings store on uninstall (lifecycle hook)",
		Long: `Remove packrat's settings file and directory when the hosting package
manager uninstalls it.

The command reads the recorded invocation from the ` + lifecycle.EnvArgv + `
environment variable and does nothing unless the triggering command was an
explicit uninstall. When the settings file exists, it asks for confirmation
before deleting it (default: no).`,

		// Lifecycle hooks are machinery, not user surface.
		Hidden: true,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanup(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.assumeYes, "yes", "y", false, "Delete the settings file without confirmation")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Report what would be removed without removing it")

	return cmd
}

// runCleanup is the main logic function for the cleanup command.
//
// Unlike every other command it never returns an error: a failing hook
// would abort the host package manager's uninstall, which is worse than
// leaving a settings file behind.
func runCleanup(flags *cleanupFlags) error {
	// Step 1: Decode the recorded invocation. A missing or malformed
	// npm_config_argv means we cannot prove the user asked for a removal,
	// so the gate stays closed (nil invocation).
	inv, err := lifecycle.FromEnviron()
	if err != nil {
		logger.Debug().Err(err).Msg("no usable lifecycle invocation")
	}

	// Step 2: Locate the settings store. If even the config directory
	// cannot be determined there is nothing to clean up.
	st, err := store.New(storeName)
	if err != nil {
		logger.Debug().Err(err).Msg("failed to locate settings store")
		fmt.Println("packrat could not locate its settings; nothing was removed.")
		return nil
	}

	// Step 3: Run the cleanup state machine.
	result := cleanup.Run(cleanup.Options{
		Invocation: inv,
		FilePath:   st.Path(),
		DirPath:    st.Dir(),
		AssumeYes:  flags.assumeYes,
		DryRun:     flags.dryRun,
		Logger:     logger,
	})

	// Step 4: Structured output for --json consumers. The human-readable
	// messages were already printed by the cleanup package itself.
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(os.Stdout, string(data))
	}

	return nil
}
