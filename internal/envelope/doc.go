// Package envelope wraps affiliation fragments in a minimal TEI document so
// each synthesized record has the shape the name-address model expects.
package envelope
