package utils

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// StdinPath names standard input where a file path is expected.
const StdinPath = "-"

// ReadSecretFile reads a password from path, or from stdin when path is "-".
// Trailing line breaks are stripped; other whitespace is kept.
func ReadSecretFile(path string) ([]byte, error) {
	var data []byte
	var err error

	if path == StdinPath {
		data, err = ReadStdin()
	} else {
		var expanded string
		expanded, err = ExpandHome(path)
		if err == nil {
			data, err = os.ReadFile(expanded)
		}
	}
	if err != nil {
		return nil, err
	}

	return bytes.TrimRight(data, "\r\n"), nil
}

// ReadStdin reads all content from stdin.
// Returns an error if stdin is a terminal (no piped data) or cannot be read.
func ReadStdin() ([]byte, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat stdin: %w", err)
	}

	// If ModeCharDevice is set, stdin is connected to a terminal.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, fmt.Errorf("no data provided on stdin (hint: pipe the password to this command)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}

	return data, nil
}
