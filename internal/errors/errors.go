package errors

import "errors"

// Password errors are raised while acquiring passphrases, before any file is processed.
var (
	// ErrPasswordMismatch indicates the new passphrase and its confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordFileUnreadable indicates a password file could not be read.
	ErrPasswordFileUnreadable = errors.New("password file could not be read")

	// ErrEmptyPassword indicates an empty passphrase was supplied.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// Cryptographic errors indicate failures while handling vault payloads.
var (
	// ErrDecryptFailed indicates the passphrase does not match or the payload is corrupt.
	ErrDecryptFailed = errors.New("failed to decrypt vault data")

	// ErrInvalidVaultFormat indicates the payload is not a recognised vault envelope.
	ErrInvalidVaultFormat = errors.New("invalid vault format")
)

// Document errors indicate problems mapping parsed values back onto file text.
var (
	// ErrSpanNotFound indicates an encrypted value could not be found in the raw text.
	ErrSpanNotFound = errors.New("encrypted value not found in file text")

	// ErrAnchorAliased indicates the value is an alias occurrence with no text of its own.
	ErrAnchorAliased = errors.New("value is an anchor alias")

	// ErrInvalidDocument indicates the file could not be parsed as a structured document.
	ErrInvalidDocument = errors.New("invalid structured document")
)

// File and run errors.
var (
	// ErrFileNotFound indicates a requested path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrInterrupted indicates the user aborted the run.
	ErrInterrupted = errors.New("interrupted by user")
)
