// Package errors provides typed error values for vault2vault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Password errors: raised before any file is touched (ErrPasswordMismatch,
//     ErrPasswordFileUnreadable, ErrEmptyPassword)
//   - Crypto errors: vault payload failures (ErrDecryptFailed, ErrInvalidVaultFormat)
//   - Document errors: locating text inside a file (ErrSpanNotFound, ErrAnchorAliased,
//     ErrInvalidDocument)
//   - File errors: discovery and write-back (ErrFileNotFound)
//
// # Policy
//
// ErrDecryptFailed is the only error that the ignore policy may downgrade to
// a warning. ErrSpanNotFound is never downgraded: it means the document has a
// shape the rewriter does not understand. ErrAnchorAliased is not a failure at
// all; it tells the caller to skip an alias occurrence.
//
// # Usage
//
//	plaintext, err := vault.Decrypt(secret, blob)
//	if errors.Is(err, kerrors.ErrDecryptFailed) && opts.IgnoreUndecryptable {
//	    // warn and move on
//	}
package errors
