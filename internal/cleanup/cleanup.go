package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mmr-tortoise/packrat/internal/lifecycle"
)

// Options configures a single cleanup run.
//
// In, Out, and Logger are injectable so tests can drive the confirmation
// prompt and capture messages without a terminal. Zero values fall back
// to stdin/stdout and a no-op logger.
type Options struct {
	// Invocation is the recorded package-manager invocation that triggered
	// the hook. A nil invocation (variable unset or malformed) closes the
	// gate: the hook cannot prove an explicit removal, so it does nothing.
	Invocation *lifecycle.Invocation

	// FilePath is the settings file to delete.
	FilePath string

	// DirPath is the settings file's containing directory, removed after
	// the file.
	DirPath string

	// In supplies the confirmation answer. Defaults to os.Stdin.
	In io.Reader

	// Out receives user-facing messages. Defaults to os.Stdout.
	Out io.Writer

	// AssumeYes skips the confirmation prompt, answering yes. Set by the
	// --yes flag for non-interactive uninstalls (CI, `npm_config_yes`).
	AssumeYes bool

	// DryRun reports what would be removed without mutating the filesystem.
	DryRun bool

	// Logger receives debug diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Result records which steps of the cleanup actually ran. The CLI layer
// uses it for JSON output; tests use it to assert the state machine.
type Result struct {
	// Gated is true when the command gate closed (the triggering command
	// was not an explicit uninstall) and nothing was done.
	Gated bool `json:"gated"`

	// FileExisted is true when the settings file was present at the start.
	FileExisted bool `json:"fileExisted"`

	// Declined is true when the user answered no to the confirmation prompt.
	Declined bool `json:"declined"`

	// FileRemoved is true when the settings file was deleted.
	FileRemoved bool `json:"fileRemoved"`

	// DirRemoved is true when the settings directory was deleted (or was
	// already absent).
	DirRemoved bool `json:"dirRemoved"`

	// Failed is true when a filesystem error degraded the run to a
	// remediation message. The run still completes; Failed is never an
	// error the caller must handle.
	Failed bool `json:"failed"`
}

// Run executes the one-shot settings cleanup:
//
//	gate → existence check → confirmation → delete file → delete directory → report
//
// Run never returns an error. The hosting package-manager lifecycle must
// complete whether or not the cleanup succeeds, so every filesystem error
// is caught here and converted into a remediation message naming the
// directory the user has to remove by hand.
func Run(opts Options) *Result {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	result := &Result{}

	// Step 1: Command gate. The preuninstall hook also fires on upgrades;
	// only an explicit `uninstall` token opens the gate.
	if opts.Invocation == nil || !opts.Invocation.IsUninstall() {
		opts.Logger.Debug().Msg("cleanup gate closed: triggering command is not an uninstall")
		result.Gated = true
		return result
	}

	opts.Logger.Debug().
		Str("file", opts.FilePath).
		Str("dir", opts.DirPath).
		Msg("cleanup gate open")

	// Step 2: Existence check. The directory can exist without the file
	// (store initialization creates it before the first value is written),
	// so an absent file skips the prompt but not the directory removal.
	result.FileExisted = fileExists(opts.FilePath)

	if result.FileExisted {
		// Step 3: Confirmation, defaulting to no. Declined means stop —
		// the settings survive the uninstall and the directory stays too.
		if !opts.AssumeYes && !promptConfirmation(opts.In, opts.Out, opts.FilePath) {
			result.Declined = true
			fmt.Fprintf(opts.Out, "Keeping settings file at %s\n", opts.FilePath)
			return result
		}

		if opts.DryRun {
			fmt.Fprintf(opts.Out, "Would remove settings file %s and directory %s\n",
				opts.FilePath, opts.DirPath)
			return result
		}

		if err := os.Remove(opts.FilePath); err != nil {
			opts.Logger.Debug().Err(err).Msg("failed to remove settings file")
			reportFailure(opts.Out, opts.DirPath)
			result.Failed = true
			return result
		}
		result.FileRemoved = true
	} else if opts.DryRun {
		fmt.Fprintf(opts.Out, "Would remove settings directory %s\n", opts.DirPath)
		return result
	}

	// Step 4: Directory removal. os.Remove only deletes empty directories,
	// which is exactly right: if another tool still keeps files in the
	// shared directory, the removal fails and degrades to the remediation
	// message instead of destroying someone else's settings.
	if err := os.Remove(opts.DirPath); err != nil && !os.IsNotExist(err) {
		opts.Logger.Debug().Err(err).Msg("failed to remove settings directory")
		reportFailure(opts.Out, opts.DirPath)
		result.Failed = true
		return result
	}
	result.DirRemoved = true

	// Step 5: Reporting. A success message only when the file was actually
	// deleted; a bare directory sweep stays silent.
	if result.FileRemoved {
		fmt.Fprintf(opts.Out, "Removed settings file %s\n", opts.FilePath)
	}
	return result
}

// fileExists reports whether the path exists. Any stat error other than
// "not exist" counts as absent: if the file cannot even be stat'd, the
// prompt would only lead to a failing delete.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// promptConfirmation asks the user whether to delete the settings file.
// It reads a single line and checks for "y" or "yes"; anything else,
// including an empty answer or a closed stdin, counts as no.
func promptConfirmation(in io.Reader, out io.Writer, filePath string) bool {
	fmt.Fprintf(out, "packrat stores your settings in %s\n", filePath)
	fmt.Fprint(out, "Delete them as well? [y/N] ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes"
	}

	// Closed stdin or read error — the default answer is no.
	return false
}

// reportFailure emits the remediation message. It names the directory
// rather than the file because removing the directory also removes any
// leftover file inside it.
func reportFailure(out io.Writer, dirPath string) {
	fmt.Fprintf(out, "packrat could not remove its settings automatically.\n")
	fmt.Fprintf(out, "Please delete %s manually.\n", dirPath)
}
