// Package rekey locates vault encrypted values inside raw file text and
// swaps them for new payloads without touching any other byte.
//
// The parsed tree tells us which values are encrypted but not where their
// text lives, and re-serializing the tree would reformat the whole file.
// Instead each payload is found in the raw text by its second line, the
// first line of hex body, which is close to unique within a file. The
// whitespace in front of that line gives the block's indentation, from which
// the full indented rendering of the payload is rebuilt and located. The
// rewriter then replaces that rendering with the new payload indented the
// same way.
//
// Replacements are applied one at a time against a running buffer. Each
// call to Locate must therefore see the buffer produced by the previous
// Rewrite.
package rekey
