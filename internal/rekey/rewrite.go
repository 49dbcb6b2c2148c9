package rekey

import (
	"fmt"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
)

// Rewrite replaces the first occurrence of the text at span with
// newCiphertext, indented and line-broken the same way. raw is not modified;
// the returned buffer must be threaded into the next Locate call.
//
// A span that no longer matches raw wraps ErrSpanNotFound.
func Rewrite(raw []byte, span Span, newCiphertext string) ([]byte, error) {
	if span.Start < 0 || span.End > len(raw) || span.Start > span.End {
		return nil, fmt.Errorf("%w: span [%d, %d) outside buffer of %d bytes", kerrors.ErrSpanNotFound, span.Start, span.End, len(raw))
	}

	old := raw[span.Start:span.End]
	start := indexLine(raw, old)
	if start < 0 {
		return nil, fmt.Errorf("%w: span text no longer present", kerrors.ErrSpanNotFound)
	}
	end := start + len(old)

	replacement := Pad(newCiphertext, span.Indent, span.Newline)

	out := make([]byte, 0, len(raw)-len(old)+len(replacement))
	out = append(out, raw[:start]...)
	out = append(out, replacement...)
	out = append(out, raw[end:]...)
	return out, nil
}
