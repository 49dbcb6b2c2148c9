// Package logger provides leveled console logging for vault2vault.
//
// Output is prefixed with a colored level tag. Verbosity is controlled by
// two flags:
//
//   - --verbose: shows info messages (files visited, variables rekeyed)
//   - --debug: additionally shows debug details (classification, spans)
//
// Warnings and errors are always shown on stderr.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Rekeyed %d variables in %s", n, path)
package logger
