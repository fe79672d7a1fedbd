// Package tei wraps github.com/beevik/etree with the handful of tree operations
// the corpus synthesizer needs on TEI training documents.
//
// Every element in an etree document keeps an explicit parent link, so removal
// is expressed as "collect the matches in document order, then detach each one
// from its parent" rather than mutating a tree while it is being traversed.
// Element lookups match on the local name and accept either the TEI namespace
// or no namespace at all, which lets pooled fragments that were serialized on
// their own be queried the same way as full documents.
package tei
