package rekey

import (
	"strings"
	"testing"

	"github.com/PolarWolf314/vault2vault/internal/vault"
)

// encryptValue is a helper that seals plaintext under password.
func encryptValue(t *testing.T, password, plaintext string) string {
	t.Helper()
	blob, err := vault.Encrypt(vault.NewSecret([]byte(password), ""), []byte(plaintext))
	if err != nil {
		t.Fatalf("Failed to encrypt test value: %v", err)
	}
	return blob
}

// vaultEntry renders "key: !vault |" followed by blob indented by indent spaces.
func vaultEntry(key, blob string, indent int) string {
	keyIndent := strings.Repeat(" ", max(indent-2, 0))
	return keyIndent + key + ": !vault |\n" + Pad(blob, indent, "\n") + "\n"
}

// dedent strips indent spaces from every line of s.
func dedent(s string, indent int) string {
	prefix := strings.Repeat(" ", indent)
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
