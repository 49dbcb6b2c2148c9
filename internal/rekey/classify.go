package rekey

import (
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/vault2vault/internal/vault"
)

// Kind is the processing path chosen for a file.
type Kind int

const (
	// Ignored files are left untouched and never opened for writing.
	Ignored Kind = iota
	// WholeFile files are a single vault payload.
	WholeFile
	// Structured files are parsed and searched for inline encrypted values.
	Structured
)

func (k Kind) String() string {
	switch k {
	case WholeFile:
		return "encrypted file"
	case Structured:
		return "structured document"
	default:
		return "ignored"
	}
}

// DefaultExtensions are the suffixes treated as structured documents.
var DefaultExtensions = []string{".yaml", ".yml"}

// Classify decides how a file is processed. A whole-file payload wins over
// the extension check.
func Classify(path string, raw []byte, extensions []string) Kind {
	if vault.IsEncrypted(raw) {
		return WholeFile
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext != "" && strings.EqualFold(ext, normalizeExt(e)) {
			return Structured
		}
	}
	return Ignored
}

func normalizeExt(e string) string {
	if !strings.HasPrefix(e, ".") {
		return "." + e
	}
	return e
}
