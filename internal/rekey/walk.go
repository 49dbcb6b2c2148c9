package rekey

import (
	"iter"
	"strconv"

	"github.com/PolarWolf314/vault2vault/internal/document"
)

// Path is a breadcrumb to a value, for example ".db.hosts.0.password".
// It is used for messages only.
type Path string

// Key returns p extended by a mapping key.
func (p Path) Key(k string) Path {
	return p + Path("."+k)
}

// Index returns p extended by a sequence index.
func (p Path) Index(i int) Path {
	return p + Path("."+strconv.Itoa(i))
}

func (p Path) String() string {
	if p == "" {
		return "."
	}
	return string(p)
}

// Walk returns the encrypted scalars of the given document roots in
// depth-first order: mapping entries in source order, sequence items by
// index. Paths in documents after the first are prefixed with "[n]".
func Walk(roots ...document.Node) iter.Seq2[Path, *document.Scalar] {
	return func(yield func(Path, *document.Scalar) bool) {
		for i, root := range roots {
			var base Path
			if i > 0 {
				base = Path("[" + strconv.Itoa(i) + "]")
			}
			if !walk(root, base, yield) {
				return
			}
		}
	}
}

func walk(n document.Node, p Path, yield func(Path, *document.Scalar) bool) bool {
	switch n := n.(type) {
	case *document.Mapping:
		for _, e := range n.Entries {
			if !walk(e.Value, p.Key(e.Key), yield) {
				return false
			}
		}
	case *document.Sequence:
		for i, item := range n.Items {
			if !walk(item, p.Index(i), yield) {
				return false
			}
		}
	case *document.Scalar:
		if n.Encrypted {
			return yield(p, n)
		}
	}
	return true
}
