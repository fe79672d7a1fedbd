// Package splice turns normalized affiliation documents into combined
// name-address records.
//
// For every eligible affiliation (one that still names an organisation) the
// splicer wraps a copy in a fresh envelope and prepends the parts of the next
// pooled author. Only the first affiliation per distinct organisation text is
// used within a document. A document either contributes all of its records or
// none, and the pool cursor is restored when it contributes none.
package splice
