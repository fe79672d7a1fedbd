package affiliation

import (
	"context"
	"io/fs"
	"iter"
	"log/slog"

	"github.com/beevik/etree"

	"nacombine/internal/logging"
	"nacombine/internal/tei"
)

// DefaultDepartmentRetention is the probability a department orgName survives.
const DefaultDepartmentRetention = 0.1

// Organisation name types with special handling.
const (
	TypeLaboratory = "laboratory"
	TypeDepartment = "department"
)

// Stats counts the effect of normalization.
type Stats struct {
	Files               int
	Parsed              int
	Skipped             int
	Markers             int
	Laboratories        int
	DepartmentsRemoved  int
	DepartmentsRetained int
}

func (s *Stats) add(o Stats) {
	s.Markers += o.Markers
	s.Laboratories += o.Laboratories
	s.DepartmentsRemoved += o.DepartmentsRemoved
	s.DepartmentsRetained += o.DepartmentsRetained
}

// Document is one normalized affiliation corpus file.
type Document struct {
	Path string
	Doc  *etree.Document
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithDepartmentRetention overrides the probability that a department orgName
// is kept.
func WithDepartmentRetention(p float64) Option {
	return func(n *Normalizer) {
		n.retention = p
	}
}

// WithLogger attaches a logger for skip reports.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// Normalizer applies the affiliation filters. It is not safe for concurrent use.
type Normalizer struct {
	random    Random
	retention float64
	logger    *slog.Logger
	stats     Stats
	err       error
}

// New returns a Normalizer drawing department decisions from random.
func New(random Random, opts ...Option) *Normalizer {
	n := &Normalizer{random: random, retention: DefaultDepartmentRetention}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = logging.NewComponentLogger(n.logger, "affiliation")
	return n
}

// Normalize runs every filter over doc in place and returns what it removed.
func (n *Normalizer) Normalize(doc *etree.Document) Stats {
	var st Stats
	root := doc.Root()
	if root == nil {
		return st
	}

	st.Markers = tei.RemoveAll(root, tei.TagMarker)
	st.Laboratories = tei.Detach(tei.FindWhere(root, tei.TagOrgName, tei.HasType(TypeLaboratory)))

	var drop []*etree.Element
	for _, org := range tei.FindWhere(root, tei.TagOrgName, tei.HasType(TypeDepartment)) {
		if n.random.Float64() < n.retention {
			st.DepartmentsRetained++
			continue
		}
		drop = append(drop, org)
	}
	st.DepartmentsRemoved = tei.Detach(drop)
	return st
}

// Scan lazily walks dir and yields each parsable document after Normalize.
// Unparsable documents are logged and skipped. A walk failure stops the
// sequence; check Err once iteration ends.
func (n *Normalizer) Scan(ctx context.Context, dir string) iter.Seq[Document] {
	return func(yield func(Document) bool) {
		n.err = tei.WalkDocuments(ctx, dir, func(path string, walkErr error) error {
			if walkErr != nil {
				logging.WarnWithContext(n.logger, "affiliation corpus entry unreadable",
					"affiliation_walk_failed",
					logging.Path(path),
					logging.Error(walkErr),
					logging.String(logging.FieldErrorHint, "check file permissions below the affiliation corpus"))
				return nil
			}
			n.stats.Files++

			doc, err := tei.ParseFile(path)
			if err != nil {
				n.stats.Skipped++
				logging.WarnWithContext(n.logger, "skipping unparsable affiliation document",
					"affiliation_parse_failed",
					logging.Path(path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "fix or remove the malformed XML file"),
					logging.String(logging.FieldImpact, "no records are synthesized from this file"))
				return nil
			}
			n.stats.Parsed++
			n.stats.add(n.Normalize(doc))

			if !yield(Document{Path: path, Doc: doc}) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// Err reports the walk failure that ended the last Scan, if any.
func (n *Normalizer) Err() error {
	return n.err
}

// Stats returns the counts accumulated by Scan.
func (n *Normalizer) Stats() Stats {
	return n.stats
}

// Fragments returns the affiliation elements of doc in document order.
func Fragments(doc *etree.Document) []*etree.Element {
	if doc == nil {
		return nil
	}
	return tei.FindAll(doc.Root(), tei.TagAffiliation)
}
