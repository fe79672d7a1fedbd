// Package namepool builds the ordered pool of annotated author fragments
// drawn from the header training corpus.
//
// Build walks the corpus, strips citation markers, and snapshots every author
// element so later mutation of the source documents cannot reach pooled
// fragments. The Pool hands fragments out round-robin; its cursor can be saved
// and restored so a caller can undo the draws of a unit of work that failed.
package namepool
