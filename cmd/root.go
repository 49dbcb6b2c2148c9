package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
	logger "github.com/PolarWolf314/vault2vault/internal/logging"
	"github.com/PolarWolf314/vault2vault/internal/ui"
	"github.com/PolarWolf314/vault2vault/internal/utils"
	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	verbose             bool
	debug               bool
	interactive         bool
	backup              bool
	ignoreUndecryptable bool
	dryRun              bool
	vaultID             string
	oldPassFile         string
	newPassFile         string
	configPath          string
	excludePatterns     []string
	extensions          []string

	Logger logger.Logger

	// RootCmd is the command run by Execute.
	RootCmd = NewRootCmd()
)

// NewRootCmd builds the root command, binding its flags to fresh defaults.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault2vault [flags] PATH...",
		Short: "Rekey ansible-vault encrypted files and inline !vault values",
		Long: `Rekeys ansible-vault encrypted data from an old password to a new one.

Whole files encrypted with ansible-vault are rekeyed as a unit. YAML files are
searched for inline !vault values, and each one is rewritten in place; every
other byte of the file, comments and formatting included, is left unchanged.

PATH may name files, directories (searched recursively) or glob patterns
such as 'group_vars/**/*.yml'.

Examples:
  # Rekey a whole inventory, prompting for both passwords
  vault2vault inventory/

  # Use password files and keep backups
  vault2vault --old-pass-file old.txt --new-pass-file new.txt --backup site.yml

  # Preview the change without writing anything
  vault2vault --dry-run --old-pass-file old.txt --new-pass-file new.txt group_vars/

  # Ask before each file and each encrypted variable
  vault2vault --interactive host_vars/web.yml`,
		Version:       Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.ErrOrStderr(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing vault2vault with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: runRekey,
	}

	flags := cmd.Flags()
	flags.BoolVarP(&interactive, "interactive", "i", false, "confirm each file and encrypted variable before rekeying")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.BoolVarP(&backup, "backup", "b", false, "copy each file to <file>.bak before rewriting it")
	flags.StringVar(&vaultID, "vault-id", "", "only rekey values with this vault id (or none), and label new values with it")
	flags.BoolVar(&ignoreUndecryptable, "ignore-undecryptable", false, "skip values that cannot be decrypted instead of aborting")
	flags.StringVar(&oldPassFile, "old-pass-file", "", "read the old password from a file ('-' for stdin)")
	flags.StringVar(&newPassFile, "new-pass-file", "", "read the new password from a file ('-' for stdin)")
	flags.StringVar(&configPath, "config", "", "config file (default .vault2vault.toml, then the user config dir)")
	flags.BoolVar(&dryRun, "dry-run", false, "show what would change without writing anything")
	flags.StringSliceVar(&excludePatterns, "exclude", nil, "glob pattern of paths to skip (repeatable)")
	flags.StringSliceVar(&extensions, "extension", nil, "file extension parsed as YAML (repeatable, default .yaml,.yml)")

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	reportError(Logger, RootCmd.ErrOrStderr(), err)
	return ExitCode(err)
}

// reportError logs the error that ended the run to w, with a hint when the
// old password could not open a value.
func reportError(l logger.Logger, w io.Writer, err error) {
	if l.Err == nil {
		l.Err = w
	}
	l.Errorf("%v", err)

	if errors.Is(err, kerrors.ErrDecryptFailed) {
		fmt.Fprintln(w, ui.Info.Sprint("→")+" Check the old password, or pass "+
			ui.Flag.Sprint("--ignore-undecryptable")+" to skip values it cannot open")
	}
}

// ExitCode maps an error returned by the root command to an exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, kerrors.ErrInterrupted), errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}

// Helper functions for testing

// ResetGlobalState resets package state to its defaults for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	interactive = false
	backup = false
	ignoreUndecryptable = false
	dryRun = false
	vaultID = ""
	oldPassFile = ""
	newPassFile = ""
	configPath = ""
	excludePatterns = nil
	extensions = nil
	readPassphrase = utils.ReadPassphraseContext
	Logger = logger.Logger{}
}
