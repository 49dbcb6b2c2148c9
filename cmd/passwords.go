package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
	"github.com/PolarWolf314/vault2vault/internal/utils"
	"github.com/PolarWolf314/vault2vault/internal/vault"
)

// readPassphrase prompts for a password without echo. Replaced in tests.
var readPassphrase = utils.ReadPassphraseContext

// readSecrets obtains the old and new passwords, from files when configured
// and from masked prompts otherwise. The new secret carries the vault id.
func readSecrets(ctx context.Context) (vault.Secret, vault.Secret, error) {
	if oldPassFile == utils.StdinPath && newPassFile == utils.StdinPath {
		return vault.Secret{}, vault.Secret{}, fmt.Errorf("only one of --old-pass-file and --new-pass-file can read from stdin")
	}
	if interactive && (oldPassFile == utils.StdinPath || newPassFile == utils.StdinPath) {
		return vault.Secret{}, vault.Secret{}, fmt.Errorf("--interactive reads answers from stdin and cannot be combined with a password read from stdin")
	}

	oldPassword, err := readPassword(ctx, oldPassFile, "Old vault password: ", false)
	if err != nil {
		return vault.Secret{}, vault.Secret{}, fmt.Errorf("old password: %w", err)
	}
	Logger.Debugf("Old password read (%d bytes)", len(oldPassword))

	newPassword, err := readPassword(ctx, newPassFile, "New vault password: ", true)
	if err != nil {
		return vault.Secret{}, vault.Secret{}, fmt.Errorf("new password: %w", err)
	}
	Logger.Debugf("New password read (%d bytes)", len(newPassword))

	return vault.NewSecret(oldPassword, ""), vault.NewSecret(newPassword, vaultID), nil
}

func readPassword(ctx context.Context, file, prompt string, confirm bool) ([]byte, error) {
	if file != "" {
		Logger.Debugf("Reading password from %s", file)
		password, err := utils.ReadSecretFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrPasswordFileUnreadable, file, err)
		}
		if len(password) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", kerrors.ErrEmptyPassword, file)
		}
		return password, nil
	}

	password, err := prompted(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, kerrors.ErrEmptyPassword
	}

	if confirm {
		again, err := prompted(ctx, "Confirm new vault password: ")
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(password, again) {
			return nil, kerrors.ErrPasswordMismatch
		}
	}

	return password, nil
}

func prompted(ctx context.Context, prompt string) ([]byte, error) {
	password, err := readPassphrase(ctx, prompt)
	if errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInterrupted, err)
	}
	return password, err
}
