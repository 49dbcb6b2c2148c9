package utils

import (
	"strings"

	"github.com/PolarWolf314/vault2vault/internal/ui"
)

// FormatPaths formats a slice of paths into a readable list.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}
