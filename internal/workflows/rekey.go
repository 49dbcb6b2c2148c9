package workflows

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/PolarWolf314/vault2vault/internal/document"
	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
	"github.com/PolarWolf314/vault2vault/internal/files"
	logger "github.com/PolarWolf314/vault2vault/internal/logging"
	"github.com/PolarWolf314/vault2vault/internal/rekey"
	"github.com/PolarWolf314/vault2vault/internal/ui"
	"github.com/PolarWolf314/vault2vault/internal/vault"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// RekeyOptions configures the rekey workflow.
type RekeyOptions struct {
	// Paths are files, directories or glob patterns to process.
	Paths []string

	// Exclude lists glob patterns of paths to leave alone.
	Exclude []string

	// Extensions mark files parsed as structured documents.
	// Defaults to rekey.DefaultExtensions when empty.
	Extensions []string

	// Old decrypts existing payloads, New encrypts the replacements.
	// New.VaultID labels every payload written.
	Old vault.Secret
	New vault.Secret

	// VaultID, when set, restricts rekeying to payloads that are unlabelled
	// or labelled with this vault id.
	VaultID string

	// Backup copies each file to <file>.bak before it is rewritten.
	Backup bool

	// IgnoreUndecryptable downgrades decrypt failures to warnings.
	IgnoreUndecryptable bool

	// DryRun computes results and diffs without writing anything.
	DryRun bool

	// Confirm gates each file and each encrypted variable.
	// A nil Confirm accepts everything.
	Confirm Confirmer

	// Parser configures how structured documents are parsed.
	Parser document.Config

	Logger logger.Logger
}

// FileState is the final state of one processed file.
type FileState int

const (
	// StateIgnored files were neither whole-file encrypted nor structured.
	StateIgnored FileState = iota
	// StateSkipped files were declined or filtered out.
	StateSkipped
	// StateSkippedWithWarning files could not be decrypted under the ignore policy.
	StateSkippedWithWarning
	// StateRewritten files were written back.
	StateRewritten
	// StatePreviewed files would have been written back in a dry run.
	StatePreviewed
)

func (s FileState) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateSkippedWithWarning:
		return "skipped with warning"
	case StateRewritten:
		return "rewritten"
	case StatePreviewed:
		return "previewed"
	default:
		return "ignored"
	}
}

// SkippedValue records an encrypted variable left untouched.
type SkippedValue struct {
	Path   rekey.Path
	Reason string
}

// FileResult contains the outcome for one file.
type FileResult struct {
	Path  string
	Kind  rekey.Kind
	State FileState

	// BackupPath is set when a backup was written.
	BackupPath string

	// Rekeyed lists the variables rewritten, in traversal order.
	Rekeyed []rekey.Path

	// Skipped lists the variables left untouched.
	Skipped []SkippedValue

	// Diff is a unified diff of the change, set in dry runs.
	Diff string
}

// RekeyResult contains the outcome of a rekey run.
type RekeyResult struct {
	Files []*FileResult
}

// Count returns the number of files that ended in state.
func (r *RekeyResult) Count(state FileState) int {
	n := 0
	for _, f := range r.Files {
		if f.State == state {
			n++
		}
	}
	return n
}

// Variables returns the total number of variables rekeyed.
func (r *RekeyResult) Variables() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Rekeyed)
	}
	return n
}

// Rekey processes every file resolved from opts.Paths, in discovery order.
//
// It stops at the first fatal error and returns the results gathered so far.
// Files processed before the failure keep their new contents; the failing
// file is left untouched.
//
// Returns ErrFileNotFound if a named path does not exist.
// Returns ErrDecryptFailed if a payload cannot be decrypted and
// IgnoreUndecryptable is not set.
// Returns ErrSpanNotFound if an encrypted variable cannot be located in its file.
func Rekey(ctx context.Context, opts RekeyOptions) (*RekeyResult, error) {
	paths, err := files.Resolve(opts.Paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debugf("Resolved %d files from %d paths", len(paths), len(opts.Paths))

	result := &RekeyResult{}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, interrupted(err)
		}

		fr, err := RekeyFile(ctx, path, opts)
		if fr != nil {
			result.Files = append(result.Files, fr)
		}
		if err != nil {
			return result, fmt.Errorf("%s: %w", path, err)
		}
	}

	return result, nil
}

// RekeyFile processes a single file.
//
// Whole-file payloads are rekeyed as one unit. Structured documents are
// parsed once; each encrypted variable is then located and replaced in a
// running copy of the raw text, in traversal order. The file is written at
// most once, after every variable has been handled, so a fatal error leaves
// it untouched even when earlier variables were already replaced in memory.
func RekeyFile(ctx context.Context, path string, opts RekeyOptions) (*FileResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = rekey.DefaultExtensions
	}

	result := &FileResult{Path: path, Kind: rekey.Classify(path, raw, extensions)}
	opts.Logger.Debugf("Classified %s as %s", path, result.Kind)

	switch result.Kind {
	case rekey.WholeFile:
		return rekeyWholeFile(ctx, raw, result, opts)
	case rekey.Structured:
		return rekeyStructured(ctx, raw, result, opts)
	default:
		result.State = StateIgnored
		return result, nil
	}
}

func rekeyWholeFile(ctx context.Context, raw []byte, result *FileResult, opts RekeyOptions) (*FileResult, error) {
	blob := string(raw)

	if ok, label := matchesVaultID(blob, opts.VaultID); !ok {
		opts.Logger.Infof("Skipping %s: vault id %q does not match %q", result.Path, label, opts.VaultID)
		result.State = StateSkipped
		return result, nil
	}

	ok, err := confirm(ctx, opts, fmt.Sprintf("Rekey encrypted file %s?", ui.Path.Sprint(result.Path)))
	if err != nil {
		return result, err
	}
	if !ok {
		result.State = StateSkipped
		return result, nil
	}

	rekeyed, err := vault.Rekey(opts.Old, opts.New, blob)
	if err != nil {
		if isDecryptFailure(err) && opts.IgnoreUndecryptable {
			opts.Logger.Warnf("Skipping %s: %v", ui.Path.Sprint(result.Path), err)
			result.State = StateSkippedWithWarning
			return result, nil
		}
		return result, err
	}

	// Keep the original trailing line break, if any.
	if trailing := raw[len(bytes.TrimRight(raw, "\r\n")):]; len(trailing) > 0 {
		rekeyed += string(trailing)
	}

	return finish(raw, []byte(rekeyed), result, opts)
}

func rekeyStructured(ctx context.Context, raw []byte, result *FileResult, opts RekeyOptions) (*FileResult, error) {
	cfg := opts.Parser
	if cfg.IsEncrypted == nil {
		cfg = document.DefaultConfig()
	}

	roots, err := document.Parse(raw, cfg)
	if err != nil {
		return result, err
	}

	ok, err := confirm(ctx, opts, fmt.Sprintf("Search %s for encrypted variables?", ui.Path.Sprint(result.Path)))
	if err != nil {
		return result, err
	}
	if !ok {
		result.State = StateSkipped
		return result, nil
	}

	buf := raw
	for path, scalar := range rekey.Walk(roots...) {
		if err := ctx.Err(); err != nil {
			return result, interrupted(err)
		}

		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedValue{Path: path, Reason: reason})
		}

		if ok, label := matchesVaultID(scalar.Value, opts.VaultID); !ok {
			opts.Logger.Infof("Skipping %s:%s: vault id %q does not match %q", result.Path, path, label, opts.VaultID)
			skip("vault id mismatch")
			continue
		}

		// An alias has no text of its own. Locating its value would find
		// whichever identical payload comes first in buf.
		if scalar.Aliased {
			opts.Logger.Debugf("Skipping %s:%s: alias of &%s", result.Path, path, scalar.Anchor)
			skip("anchor-aliased")
			continue
		}

		span, err := rekey.Locate(buf, scalar.Value, scalar.Anchor)
		if errors.Is(err, kerrors.ErrAnchorAliased) {
			opts.Logger.Debugf("Skipping %s:%s: alias of &%s", result.Path, path, scalar.Anchor)
			skip("anchor-aliased")
			continue
		}
		if err != nil {
			return result, fmt.Errorf("%s (line %d, column %d): %w", path, scalar.Line, scalar.Column, err)
		}
		opts.Logger.Debugf("Located %s:%s at [%d, %d) with indent %d", result.Path, path, span.Start, span.End, span.Indent)

		ok, err := confirm(ctx, opts, fmt.Sprintf("Rekey variable %s in %s?", ui.Variable.Sprint(path), ui.Path.Sprint(result.Path)))
		if err != nil {
			return result, err
		}
		if !ok {
			skip("declined")
			continue
		}

		rekeyed, err := vault.Rekey(opts.Old, opts.New, scalar.Value)
		if err != nil {
			if isDecryptFailure(err) && opts.IgnoreUndecryptable {
				opts.Logger.Warnf("Skipping %s in %s: %v", ui.Variable.Sprint(path), ui.Path.Sprint(result.Path), err)
				skip("undecryptable")
				continue
			}
			return result, fmt.Errorf("%s (line %d, column %d): %w", path, scalar.Line, scalar.Column, err)
		}

		buf, err = rekey.Rewrite(buf, span, rekeyed)
		if err != nil {
			return result, fmt.Errorf("%s (line %d, column %d): %w", path, scalar.Line, scalar.Column, err)
		}
		result.Rekeyed = append(result.Rekeyed, path)
		opts.Logger.Infof("Rekeyed %s:%s", result.Path, path)
	}

	return finish(raw, buf, result, opts)
}

// finish writes updated back to the file, or records a diff in a dry run.
func finish(raw, updated []byte, result *FileResult, opts RekeyOptions) (*FileResult, error) {
	if opts.DryRun {
		diff, err := unifiedDiff(result.Path, raw, updated)
		if err != nil {
			return result, err
		}
		result.Diff = diff
		result.State = StatePreviewed
		return result, nil
	}

	if opts.Backup {
		backup, err := files.Backup(result.Path)
		if err != nil {
			return result, err
		}
		result.BackupPath = backup
		opts.Logger.Infof("Backed up %s to %s", result.Path, backup)
	}

	if err := files.WriteAtomic(result.Path, updated); err != nil {
		return result, err
	}

	result.State = StateRewritten
	return result, nil
}

func confirm(ctx context.Context, opts RekeyOptions, question string) (bool, error) {
	if opts.Confirm == nil {
		return true, nil
	}
	return opts.Confirm.Confirm(ctx, question)
}

// matchesVaultID reports whether blob should be processed under filter,
// along with the blob's own vault id.
func matchesVaultID(blob, filter string) (bool, string) {
	if filter == "" {
		return true, ""
	}
	h, err := vault.ParseHeader(blob)
	if err != nil {
		// Malformed payloads fail later with a decrypt error.
		return true, ""
	}
	return h.VaultID == "" || h.VaultID == filter, h.VaultID
}

func isDecryptFailure(err error) bool {
	return errors.Is(err, kerrors.ErrDecryptFailed) || errors.Is(err, kerrors.ErrInvalidVaultFormat)
}

func interrupted(err error) error {
	return fmt.Errorf("%w: %v", kerrors.ErrInterrupted, err)
}
