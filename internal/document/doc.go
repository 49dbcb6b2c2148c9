// Package document parses structured text files into a small tree model
// used to find encrypted values.
//
// The tree has three node types: *Mapping, *Sequence and *Scalar. Aliases are
// expanded into copies of their anchored subtree so every occurrence of a
// value is visible to a walker, but each copy records the anchor name. The
// source text of an anchored value appears only once, at the anchor.
//
// Parsing is configured per call through Config rather than by registering
// global tag constructors.
package document
