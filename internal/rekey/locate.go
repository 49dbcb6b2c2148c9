package rekey

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	kerrors "github.com/PolarWolf314/vault2vault/internal/errors"
)

// Span is the byte range [Start, End) of an indented vault payload in raw
// text. Every line of the payload is prefixed by Indent spaces and lines are
// separated by Newline. End excludes the final line break.
type Span struct {
	Start   int
	End     int
	Indent  int
	Newline string
}

// Locate finds the text of ciphertext in raw.
//
// When the body line cannot be found and anchor is set, the value is an alias
// occurrence whose text lives at its anchor (or was already rewritten there)
// and ErrAnchorAliased is returned. Otherwise a failed search wraps
// ErrSpanNotFound.
//
// On success raw[Start:End], with Indent spaces removed from each line, equals
// ciphertext without its trailing line break.
func Locate(raw []byte, ciphertext, anchor string) (Span, error) {
	lines := payloadLines(ciphertext)
	if len(lines) < 2 {
		return Span{}, fmt.Errorf("%w: payload has no body lines", kerrors.ErrSpanNotFound)
	}

	re := regexp.MustCompile(`\n( *)` + regexp.QuoteMeta(lines[1]) + `(\r?\n|$)`)
	m := re.FindSubmatchIndex(raw)
	if m == nil {
		if anchor != "" {
			return Span{}, fmt.Errorf("%w: &%s", kerrors.ErrAnchorAliased, anchor)
		}
		return Span{}, fmt.Errorf("%w: no line matches %q", kerrors.ErrSpanNotFound, truncate(lines[1], 16))
	}

	indent := m[3] - m[2]
	newline := "\n"
	if m[5] > m[4] && raw[m[4]] == '\r' {
		newline = "\r\n"
	}

	padded := []byte(Pad(ciphertext, indent, newline))
	start := indexLine(raw, padded)
	if start < 0 {
		return Span{}, fmt.Errorf("%w: indented payload (indent %d) not found", kerrors.ErrSpanNotFound, indent)
	}

	return Span{
		Start:   start,
		End:     start + len(padded),
		Indent:  indent,
		Newline: newline,
	}, nil
}

// Pad renders ciphertext with every non-blank line prefixed by indent spaces,
// joined by newline. There is no trailing line break.
func Pad(ciphertext string, indent int, newline string) string {
	if newline == "" {
		newline = "\n"
	}
	prefix := strings.Repeat(" ", indent)

	lines := payloadLines(ciphertext)
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, newline)
}

// payloadLines splits a payload into lines, dropping blank lines and
// surrounding whitespace.
func payloadLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// indexLine returns the offset of the first occurrence of block in raw that
// starts at the beginning of a line and ends at the end of one, or -1.
func indexLine(raw, block []byte) int {
	offset := 0
	for {
		i := bytes.Index(raw[offset:], block)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(block)

		startsLine := start == 0 || raw[start-1] == '\n'
		endsLine := end == len(raw) || raw[end] == '\n' || raw[end] == '\r'
		if startsLine && endsLine {
			return start
		}
		offset = start + 1
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
