// Package files finds the files to rekey and writes results back safely.
//
// Paths given on the command line may be files, directories (walked
// recursively, version control directories skipped) or glob patterns with
// ** support. Exclude patterns use the same glob syntax and match either the
// full path or the base name.
//
// Backups are plain copies named <file>.bak. Backup files are skipped when
// walking directories so a second run does not rekey them.
//
// All writes go through a temporary file followed by a rename.
package files
