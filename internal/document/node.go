package document

// Node is one node of a parsed document tree: a *Mapping, a *Sequence or a *Scalar.
type Node interface {
	node()
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Node
}

// Mapping holds its entries in source order.
type Mapping struct {
	Entries []Entry
}

// Sequence holds its items in index order.
type Sequence struct {
	Items []Node
}

// Scalar is a leaf value.
type Scalar struct {
	Value string
	Tag   string

	// Encrypted is set when the scalar was parsed from an encrypted-content tag.
	// Value then holds the raw vault payload, not plaintext.
	Encrypted bool

	// Anchor is the anchor name when this scalar is an anchor target or was
	// reached through an alias of one. Alias occurrences have no text of
	// their own in the source.
	Anchor string

	// Aliased is set on copies produced by resolving an alias.
	Aliased bool

	Line   int
	Column int
}

func (*Mapping) node()  {}
func (*Sequence) node() {}
func (*Scalar) node()   {}
