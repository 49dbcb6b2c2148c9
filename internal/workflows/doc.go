// Package workflows provides high-level orchestration for vault2vault.
//
// Workflows coordinate discovery, classification, parsing, locating and
// rewriting to implement the rekey command, independent of CLI concerns like
// flag parsing, spinners, prompts and output formatting.
//
// # File States
//
// Each file is read once and classified:
//
//   - Whole-file payloads are rekeyed as a single unit.
//   - Structured documents (.yaml and .yml by default) are parsed and every
//     inline !vault variable is rekeyed in traversal order.
//   - Everything else is ignored and never opened for writing.
//
// A file ends as ignored, skipped, skipped with warning, rewritten or, in a
// dry run, previewed. Structured documents are written back even when no
// variable changed.
//
// # Error Handling
//
// Decrypt failures abort the run unless RekeyOptions.IgnoreUndecryptable is
// set, in which case the file or variable is skipped with a warning. Locate
// failures always abort. Variables earlier in traversal order may already be
// rewritten in memory when a later one fails; the file is never written in
// that case. Files processed before the failure keep their new contents.
//
//	result, err := workflows.Rekey(ctx, opts)
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // Suggest --ignore-undecryptable
//	}
//
// # Context Usage
//
// Cancellation is checked between files and between variables. A write in
// progress always completes.
package workflows
