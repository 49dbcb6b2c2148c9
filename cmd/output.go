package cmd

import (
	"fmt"
	"io"

	"github.com/PolarWolf314/vault2vault/internal/workflows"
)

// printDiffs writes the dry-run diff of every file that would change.
func printDiffs(w io.Writer, result *workflows.RekeyResult) {
	for _, f := range result.Files {
		if f.Diff != "" {
			fmt.Fprint(w, f.Diff)
		}
	}
}
