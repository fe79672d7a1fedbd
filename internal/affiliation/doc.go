// Package affiliation normalizes documents from the affiliation/address
// training corpus before they are spliced.
//
// Each parsed document passes through four filters in order: citation markers
// are removed, laboratory organisation names are removed, department
// organisation names are thinned at random so only a controlled minority
// survives, and person names inside affiliations are removed so the only names
// in a synthesized record are injected ones. The department filter draws from
// an injected Random so tests can pin its outcome.
package affiliation
