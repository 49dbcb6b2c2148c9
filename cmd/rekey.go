package cmd

import (
	"bufio"
	"strings"

	"github.com/PolarWolf314/vault2vault/internal/configs"
	"github.com/PolarWolf314/vault2vault/internal/rekey"
	"github.com/PolarWolf314/vault2vault/internal/ui"
	"github.com/PolarWolf314/vault2vault/internal/utils"
	"github.com/PolarWolf314/vault2vault/internal/workflows"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func runRekey(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting rekey of %d paths", len(args))
	ctx := cmd.Context()

	Logger.Debugf("Loading config")
	cfg, err := configs.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		Logger.Infof("Using config %s", cfg.Path)
	}
	for _, key := range cfg.Unknown {
		Logger.Warnf("Unknown key %q in %s", key, cfg.Path)
	}
	applyConfig(cmd.Flags(), cfg)

	oldSecret, newSecret, err := readSecrets(ctx)
	if err != nil {
		return err
	}

	opts := workflows.RekeyOptions{
		Paths:               args,
		Exclude:             excludePatterns,
		Extensions:          extensions,
		Old:                 oldSecret,
		New:                 newSecret,
		VaultID:             vaultID,
		Backup:              backup,
		IgnoreUndecryptable: ignoreUndecryptable,
		DryRun:              dryRun,
		Logger:              Logger,
	}

	// Prompts and a spinner cannot share the terminal.
	showSpinner := !interactive && !verbose && !debug && !dryRun
	spinner, cleanup := startSpinner(cmd, "Rekeying vault data...", showSpinner)
	defer cleanup()

	if interactive {
		opts.Confirm = &promptConfirmer{
			in:  bufio.NewReader(cmd.InOrStdin()),
			out: cmd.ErrOrStderr(),
		}
	}

	result, err := workflows.Rekey(ctx, opts)
	if err != nil {
		return err
	}

	if dryRun {
		printDiffs(cmd.OutOrStdout(), result)
	}

	spinner.FinalMSG = summary(result, dryRun)
	return nil
}

// applyConfig copies config file values into flags not set on the command line.
func applyConfig(flags *pflag.FlagSet, cfg *configs.Config) {
	setBool := func(name string, target *bool, value bool) {
		if !flags.Changed(name) {
			*target = value
		}
	}
	setString := func(name string, target *string, value string) {
		if !flags.Changed(name) && value != "" {
			*target = value
		}
	}
	setSlice := func(name string, target *[]string, value []string) {
		if !flags.Changed(name) && len(value) > 0 {
			*target = value
		}
	}

	setBool("interactive", &interactive, cfg.Interactive)
	setBool("backup", &backup, cfg.Backup)
	setBool("ignore-undecryptable", &ignoreUndecryptable, cfg.IgnoreUndecryptable)
	setString("vault-id", &vaultID, cfg.VaultID)
	setString("old-pass-file", &oldPassFile, cfg.OldPassFile)
	setString("new-pass-file", &newPassFile, cfg.NewPassFile)
	setSlice("exclude", &excludePatterns, cfg.Exclude)
	setSlice("extension", &extensions, cfg.Extensions)

	Logger.Debugf("Effective options: interactive=%t backup=%t ignore-undecryptable=%t vault-id=%q extensions=%v exclude=%v",
		interactive, backup, ignoreUndecryptable, vaultID, extensions, excludePatterns)
}

func summary(result *workflows.RekeyResult, dryRun bool) string {
	var changed, skipped, skippedVariables int
	var backups []string
	for _, f := range result.Files {
		if f.BackupPath != "" {
			backups = append(backups, f.BackupPath)
		}
		switch f.State {
		case workflows.StateRewritten, workflows.StatePreviewed:
			if f.Kind == rekey.WholeFile || len(f.Rekeyed) > 0 {
				changed++
			}
		case workflows.StateSkipped, workflows.StateSkippedWithWarning:
			skipped++
		}
		skippedVariables += len(f.Skipped)
	}

	var b strings.Builder
	switch {
	case changed == 0:
		b.WriteString(ui.Info.Sprint("→") + " Nothing to rekey")
	case dryRun:
		b.WriteString(ui.Info.Sprint("→") + " Dry run: would rekey " + ui.Plural(changed, "file", "files") +
			" (" + ui.Plural(result.Variables(), "inline variable", "inline variables") + "); nothing was written")
	default:
		b.WriteString(ui.Success.Sprint("✓") + " Rekeyed " + ui.Plural(changed, "file", "files") +
			" (" + ui.Plural(result.Variables(), "inline variable", "inline variables") + ")")
	}

	if skipped > 0 {
		b.WriteString("\n" + ui.Warning.Sprint("!") + " Skipped " + ui.Plural(skipped, "file", "files"))
	}
	if skippedVariables > 0 {
		b.WriteString("\n" + ui.Warning.Sprint("!") + " Left " + ui.Plural(skippedVariables, "variable", "variables") + " untouched")
	}
	if len(backups) > 0 {
		b.WriteString("\n" + ui.Info.Sprint("→") + " Backups written:" + strings.TrimSuffix(utils.FormatPaths(backups), "\n"))
	}
	return b.String()
}
