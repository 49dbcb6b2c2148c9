package vault

import (
	"errors"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	secret := NewSecret([]byte("correct horse"), "")

	tests := []struct {
		name      string
		plaintext string
	}{
		{"Empty", ""},
		{"Short", "hunter2"},
		{"BlockAligned", "0123456789abcdef"},
		{"Multiline", "line one\nline two\n"},
		{"Long", strings.Repeat("secret-", 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := Encrypt(secret, []byte(tc.plaintext))
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}

			got, err := Decrypt(secret, blob)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if string(got) != tc.plaintext {
				t.Errorf("Decrypt() = %q, expected %q", got, tc.plaintext)
			}
		})
	}
}

func TestEncryptFormat(t *testing.T) {
	blob, err := Encrypt(NewSecret([]byte("pw"), ""), []byte(strings.Repeat("x", 200)))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if strings.HasSuffix(blob, "\n") {
		t.Error("Encrypt output should not end with a newline")
	}

	lines := strings.Split(blob, "\n")
	if lines[0] != "$ANSIBLE_VAULT;1.1;AES256" {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if len(lines) < 3 {
		t.Fatalf("Expected a multi-line body, got %d lines", len(lines))
	}
	for i, line := range lines[1 : len(lines)-1] {
		if len(line) != 80 {
			t.Errorf("Body line %d has width %d, expected 80", i+1, len(line))
		}
	}
	if last := lines[len(lines)-1]; len(last) == 0 || len(last) > 80 {
		t.Errorf("Last body line has width %d", len(last))
	}
}

func TestEncryptWithVaultID(t *testing.T) {
	blob, err := Encrypt(NewSecret([]byte("pw"), "prod"), []byte("value"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if !strings.HasPrefix(blob, "$ANSIBLE_VAULT;1.2;AES256;prod\n") {
		t.Errorf("Expected 1.2 header with vault id, got: %q", strings.SplitN(blob, "\n", 2)[0])
	}

	h, err := ParseHeader(blob)
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if h.VaultID != "prod" {
		t.Errorf("Expected vault id 'prod', got %q", h.VaultID)
	}

	// The vault id is a label only; any secret with the right password opens it.
	got, err := Decrypt(NewSecret([]byte("pw"), ""), blob)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Decrypt() = %q, expected %q", got, "value")
	}
}

func TestEncryptUsesFreshSalt(t *testing.T) {
	secret := NewSecret([]byte("pw"), "")
	a, err := Encrypt(secret, []byte("same"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt(secret, []byte("same"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if a == b {
		t.Error("Two encryptions of the same plaintext should differ")
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	blob, err := Encrypt(NewSecret([]byte("right"), ""), []byte("value"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(NewSecret([]byte("wrong"), ""), blob)
	if !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Expected ErrDecryptFailed, got: %v", err)
	}
}

func TestDecryptCorruptBody(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want error
	}{
		{"NotHex", "$ANSIBLE_VAULT;1.1;AES256\nzzzz", kerrors.ErrDecryptFailed},
		{"WrongFieldCount", "$ANSIBLE_VAULT;1.1;AES256\n" + "616263", kerrors.ErrDecryptFailed},
		{"NoHeader", "616263", kerrors.ErrInvalidVaultFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decrypt(NewSecret([]byte("pw"), ""), tc.blob)
			if !errors.Is(err, tc.want) {
				t.Errorf("Decrypt() error = %v, expected %v", err, tc.want)
			}
		})
	}
}

func TestDecryptToleratesIndentation(t *testing.T) {
	secret := NewSecret([]byte("pw"), "")
	blob, err := Encrypt(secret, []byte("value"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	indented := "  " + strings.ReplaceAll(blob, "\n", "\n  ") + "\n"
	got, err := Decrypt(secret, indented)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Decrypt() = %q, expected %q", got, "value")
	}
}

func TestRekey(t *testing.T) {
	oldSecret := NewSecret([]byte("old"), "")
	newSecret := NewSecret([]byte("new"), "")

	blob, err := Encrypt(oldSecret, []byte("value"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	rekeyed, err := Rekey(oldSecret, newSecret, blob)
	if err != nil {
		t.Fatalf("Rekey failed: %v", err)
	}

	if _, err := Decrypt(oldSecret, rekeyed); !errors.Is(err, kerrors.ErrDecryptFailed) {
		t.Errorf("Old secret should no longer decrypt, got: %v", err)
	}
	got, err := Decrypt(newSecret, rekeyed)
	if err != nil {
		t.Fatalf("Decrypt with new secret failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Decrypt() = %q, expected %q", got, "value")
	}
}

func TestIsEncrypted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"Vault11", "$ANSIBLE_VAULT;1.1;AES256\n6162", true},
		{"Vault12", "$ANSIBLE_VAULT;1.2;AES256;dev\n6162", true},
		{"PlainYAML", "key: value\n", false},
		{"InlineVault", "key: !vault |\n  $ANSIBLE_VAULT;1.1;AES256\n", false},
		{"Empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEncrypted([]byte(tc.input)); got != tc.want {
				t.Errorf("IsEncrypted(%q) = %t, expected %t", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Header
		wantErr bool
	}{
		{"Version11", "$ANSIBLE_VAULT;1.1;AES256\n0000", Header{Version: "1.1", Cipher: "AES256"}, false},
		{"Version12", "$ANSIBLE_VAULT;1.2;AES256;dev", Header{Version: "1.2", Cipher: "AES256", VaultID: "dev"}, false},
		{"TrailingCR", "$ANSIBLE_VAULT;1.1;AES256\r\n0000", Header{Version: "1.1", Cipher: "AES256"}, false},
		{"Version12MissingID", "$ANSIBLE_VAULT;1.2;AES256", Header{}, true},
		{"UnknownVersion", "$ANSIBLE_VAULT;2.0;AES256", Header{}, true},
		{"UnknownCipher", "$ANSIBLE_VAULT;1.1;DES", Header{}, true},
		{"NotVault", "hello", Header{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHeader(tc.input)
			if tc.wantErr {
				if !errors.Is(err, kerrors.ErrInvalidVaultFormat) {
					t.Errorf("Expected ErrInvalidVaultFormat, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeader failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseHeader() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}
