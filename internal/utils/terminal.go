package utils

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseContext is ReadPassphrase that gives up when ctx is done,
// restoring the terminal state so echo is not left disabled.
func ReadPassphraseContext(ctx context.Context, prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	state, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("cannot read passphrase: %w", err)
	}

	type reply struct {
		passphrase []byte
		err        error
	}
	done := make(chan reply, 1)
	go func() {
		passphrase, err := ReadPassphrase(prompt)
		done <- reply{passphrase, err}
	}()

	select {
	case r := <-done:
		return r.passphrase, r.err
	case <-ctx.Done():
		_ = term.Restore(fd, state)
		fmt.Fprintln(os.Stderr)
		return nil, ctx.Err()
	}
}
