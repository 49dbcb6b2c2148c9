package vault

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	ansiblevault "github.com/sosedoff/ansible-vault-go"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
)

const (
	// HeaderPrefix starts every vault payload.
	HeaderPrefix = "$ANSIBLE_VAULT"

	cipherName = "AES256"
)

// Secret is a passphrase, optionally bound to a vault id.
type Secret struct {
	Password []byte
	VaultID  string
}

// NewSecret returns a Secret for the given passphrase and vault id.
func NewSecret(password []byte, vaultID string) Secret {
	return Secret{Password: password, VaultID: vaultID}
}

// Header is the parsed first line of a vault payload.
type Header struct {
	Version string
	Cipher  string
	VaultID string
}

// String renders the header line. A vault id forces format 1.2.
func (h Header) String() string {
	if h.VaultID != "" {
		return strings.Join([]string{HeaderPrefix, "1.2", h.Cipher, h.VaultID}, ";")
	}
	return strings.Join([]string{HeaderPrefix, h.Version, h.Cipher}, ";")
}

// IsEncrypted reports whether data is a vault payload.
func IsEncrypted(data []byte) bool {
	return bytes.HasPrefix(data, []byte(HeaderPrefix+";"))
}

// ParseHeader parses the first line of a vault payload.
func ParseHeader(blob string) (Header, error) {
	line, _, _ := strings.Cut(strings.TrimLeft(blob, " \t\r\n"), "\n")
	line = strings.TrimSpace(line)

	fields := strings.Split(line, ";")
	if len(fields) < 3 || fields[0] != HeaderPrefix {
		return Header{}, fmt.Errorf("%w: missing vault header", kerrors.ErrInvalidVaultFormat)
	}

	h := Header{Version: fields[1], Cipher: strings.TrimSpace(fields[2])}
	switch h.Version {
	case "1.1":
		if len(fields) != 3 {
			return Header{}, fmt.Errorf("%w: unexpected fields in 1.1 header", kerrors.ErrInvalidVaultFormat)
		}
	case "1.2":
		if len(fields) != 4 || fields[3] == "" {
			return Header{}, fmt.Errorf("%w: 1.2 header requires a vault id", kerrors.ErrInvalidVaultFormat)
		}
		h.VaultID = fields[3]
	default:
		return Header{}, fmt.Errorf("%w: unsupported version %q", kerrors.ErrInvalidVaultFormat, h.Version)
	}

	if h.Cipher != cipherName {
		return Header{}, fmt.Errorf("%w: unsupported cipher %q", kerrors.ErrInvalidVaultFormat, h.Cipher)
	}

	return h, nil
}

// Decrypt opens a vault payload with the given secret.
// Indented or 1.2 labelled payloads are accepted.
// A wrong passphrase or a corrupt payload wraps ErrDecryptFailed.
func Decrypt(secret Secret, blob string) ([]byte, error) {
	canonical, err := canonicalize(blob)
	if err != nil {
		return nil, err
	}

	plaintext, err := ansiblevault.Decrypt(canonical, string(secret.Password))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
	}

	return []byte(plaintext), nil
}

// Encrypt seals plaintext into a vault payload. A secret with a vault id
// gets a 1.2 header labelled with it.
// The result has no trailing newline.
func Encrypt(secret Secret, plaintext []byte) (string, error) {
	blob, err := ansiblevault.Encrypt(string(plaintext), string(secret.Password))
	if err != nil {
		return "", fmt.Errorf("encrypting: %w", err)
	}
	blob = strings.TrimRight(blob, "\r\n")

	if secret.VaultID == "" {
		return blob, nil
	}

	_, body, _ := strings.Cut(blob, "\n")
	header := Header{Version: "1.2", Cipher: cipherName, VaultID: secret.VaultID}
	return header.String() + "\n" + body, nil
}

// Rekey decrypts blob with oldSecret and encrypts the plaintext with newSecret.
func Rekey(oldSecret, newSecret Secret, blob string) (string, error) {
	plaintext, err := Decrypt(oldSecret, blob)
	if err != nil {
		return "", err
	}
	return Encrypt(newSecret, plaintext)
}

// canonicalize validates blob and rewrites it as an unindented 1.1 payload,
// the only form ansiblevault.Decrypt reads.
func canonicalize(blob string) (string, error) {
	if _, err := ParseHeader(blob); err != nil {
		return "", err
	}

	lines := strings.Split(strings.TrimLeft(blob, " \t\r\n"), "\n")

	var body []string
	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			body = append(body, line)
		}
	}

	inner, err := hex.DecodeString(strings.Join(body, ""))
	if err != nil {
		return "", fmt.Errorf("%w: body is not hex: %v", kerrors.ErrDecryptFailed, err)
	}
	if fields := bytes.Split(inner, []byte("\n")); len(fields) != 3 {
		return "", fmt.Errorf("%w: expected 3 body fields, got %d", kerrors.ErrDecryptFailed, len(fields))
	}

	header := Header{Version: "1.1", Cipher: cipherName}
	return header.String() + "\n" + strings.Join(body, "\n"), nil
}
