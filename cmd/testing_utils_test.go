package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vault2vault/internal/document"
	"github.com/PolarWolf314/vault2vault/internal/rekey"
	"github.com/PolarWolf314/vault2vault/internal/vault"
	"github.com/spf13/cobra"
)

const (
	testOldPassword = "old-password"
	testNewPassword = "new-password"
)

// setupTestEnvironment moves the test into a fresh directory with no config
// files in reach and restores global state afterwards.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, ".config"))
	t.Setenv("NO_COLOR", "1")

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})

	ResetGlobalState()
	return tempDir
}

// createTestCLI creates a fresh root command wired to in-memory streams.
func createTestCLI(args []string, stdin io.Reader) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	cmd.SetIn(stdin)
	cmd.SetArgs(args)
	return cmd, &stdout, &stderr
}

// writePasswordFiles writes the old and new test passwords and returns the
// flags that point at them.
func writePasswordFiles(t *testing.T, dir string) []string {
	t.Helper()
	oldFile := writeTestFile(t, dir, "old.pass", testOldPassword+"\n")
	newFile := writeTestFile(t, dir, "new.pass", testNewPassword+"\n")
	return []string{"--old-pass-file", oldFile, "--new-pass-file", newFile}
}

// writeTestFile writes content to name inside dir and returns the path.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// vaultFile renders a YAML document with one inline vault value per key.
func vaultFile(t *testing.T, password string, values map[string]string, keys ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# managed by ansible\n")
	for _, key := range keys {
		blob, err := vault.Encrypt(vault.NewSecret([]byte(password), ""), []byte(values[key]))
		if err != nil {
			t.Fatalf("Failed to encrypt test value: %v", err)
		}
		b.WriteString(key + ": !vault |\n" + rekey.Pad(blob, 2, "\n") + "\n")
	}
	b.WriteString("plain: value\n")
	return b.String()
}

// decryptAll decrypts every inline vault value in raw, in document order.
func decryptAll(t *testing.T, raw, password string) []string {
	t.Helper()
	roots, err := document.Parse([]byte(raw), document.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to parse file: %v", err)
	}
	var plaintexts []string
	for path, s := range rekey.Walk(roots...) {
		plaintext, err := vault.Decrypt(vault.NewSecret([]byte(password), ""), s.Value)
		if err != nil {
			t.Fatalf("Failed to decrypt %s: %v", path, err)
		}
		plaintexts = append(plaintexts, string(plaintext))
	}
	return plaintexts
}
