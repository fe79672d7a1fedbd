package splice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"

	"nacombine/internal/affiliation"
	"nacombine/internal/envelope"
	"nacombine/internal/namepool"
	"nacombine/internal/tei"
)

// ErrNoSlot reports an envelope without an author insertion point.
var ErrNoSlot = errors.New("envelope has no author element")

// Options tunes record production.
type Options struct {
	// IncludeBare also emits one name-less envelope per distinct affiliation.
	// A document's bare records precede all of its named records.
	IncludeBare bool
}

// Stats counts what Document did with one source document.
type Stats struct {
	Affiliations int
	Rejected     int
	Duplicates   int
	Records      int
	Bare         int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Affiliations += o.Affiliations
	s.Rejected += o.Rejected
	s.Duplicates += o.Duplicates
	s.Records += o.Records
	s.Bare += o.Bare
}

// Splicer combines affiliations with pooled names.
type Splicer struct {
	pool *namepool.Pool
	env  *envelope.Synthesizer
	opts Options
}

// New returns a Splicer drawing from pool. An empty pool is rejected up front.
func New(pool *namepool.Pool, env *envelope.Synthesizer, opts Options) (*Splicer, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, namepool.ErrEmptyPool
	}
	if env == nil {
		env = envelope.Default()
	}
	return &Splicer{pool: pool, env: env, opts: opts}, nil
}

// Document produces the records for one normalized affiliation document in
// affiliation document order, bare records first. On error no records are
// returned and the pool cursor is back where it was before the call.
func (s *Splicer) Document(doc *etree.Document) ([]*etree.Document, Stats, error) {
	mark := s.pool.Cursor()
	records, st, err := s.document(doc)
	if err != nil {
		s.pool.Rewind(mark)
		return nil, Stats{}, err
	}
	return records, st, nil
}

func (s *Splicer) document(doc *etree.Document) ([]*etree.Document, Stats, error) {
	var (
		st    Stats
		bare  []*etree.Document
		named []*etree.Document
		seen  = make(map[string]struct{})
	)
	for _, aff := range affiliation.Fragments(doc) {
		st.Affiliations++

		org := tei.FindFirst(aff, tei.TagOrgName)
		if org == nil {
			st.Rejected++
			continue
		}
		key := DedupKey(org)
		if _, dup := seen[key]; dup {
			st.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if s.opts.IncludeBare {
			record, err := s.bare(aff)
			if err != nil {
				return nil, st, err
			}
			bare = append(bare, record)
			st.Bare++
		}

		record, err := s.record(aff)
		if err != nil {
			return nil, st, err
		}
		named = append(named, record)
		st.Records++
	}
	return append(bare, named...), st, nil
}

// bare wraps a copy of aff with its person names removed, so the record
// carries no name annotation at all.
func (s *Splicer) bare(aff *etree.Element) (*etree.Document, error) {
	stripped := aff.Copy()
	tei.RemoveAll(stripped, tei.TagPersName)
	record, err := s.env.Wrap(stripped)
	if err != nil {
		return nil, fmt.Errorf("wrap bare affiliation: %w", err)
	}
	return record, nil
}

func (s *Splicer) record(aff *etree.Element) (*etree.Document, error) {
	record, err := s.env.Wrap(aff)
	if err != nil {
		return nil, fmt.Errorf("wrap affiliation: %w", err)
	}
	slot := envelope.AuthorSlot(record)
	if slot == nil {
		return nil, ErrNoSlot
	}

	fragment, idx, err := s.pool.Next()
	if err != nil {
		return nil, err
	}
	parts, err := fragment.Parts()
	if err != nil {
		return nil, fmt.Errorf("draw name %d: %w", idx, err)
	}
	for i, part := range parts {
		slot.InsertChildAt(i, part)
	}
	return record, nil
}

// DedupKey is the normalized text of an organisation name: NFC, with runs of
// whitespace collapsed to one space and the ends trimmed.
func DedupKey(org *etree.Element) string {
	text := norm.NFC.String(tei.TextContent(org))
	return strings.Join(strings.Fields(text), " ")
}
