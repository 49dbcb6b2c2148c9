// Package utils provides small shared helpers for vault2vault.
//
// # Filesystem Utilities
//
//   - ExpandHome: expands a leading ~ in user-supplied paths
//
// # I/O Utilities
//
//   - ReadSecretFile: reads a password file (or stdin for "-")
//   - ReadStdin: reads all data from standard input
//
// # Terminal Utilities
//
//   - ReadPassphrase: masked passphrase prompt
//   - ReadPassphraseContext: masked prompt that honours cancellation
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
package utils
