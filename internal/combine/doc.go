// Package combine runs the end-to-end synthesis: it pools author names from
// the header corpus, normalizes and splices every affiliation document, and
// writes the assembled corpus.
//
// Run is the only entry point. Failures are tagged with the sentinels in
// errors.go so callers can classify them with errors.Is.
package combine
