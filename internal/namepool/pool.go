package namepool

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"nacombine/internal/tei"
)

// ErrEmptyPool is returned when a draw is attempted on a pool with no fragments.
var ErrEmptyPool = errors.New("name pool is empty")

// Fragment is an immutable snapshot of one annotated author element.
type Fragment struct {
	// Source is the header document the fragment was extracted from.
	Source   string
	snapshot []byte
}

// NewFragment snapshots author. Later changes to author do not affect the fragment.
func NewFragment(source string, author *etree.Element) (Fragment, error) {
	data, err := tei.Snapshot(author)
	if err != nil {
		return Fragment{}, fmt.Errorf("snapshot author from %s: %w", source, err)
	}
	return Fragment{Source: source, snapshot: data}, nil
}

// ParseFragment builds a fragment from serialized author XML.
func ParseFragment(source, xml string) (Fragment, error) {
	doc, err := tei.ParseString(xml)
	if err != nil {
		return Fragment{}, fmt.Errorf("parse fragment from %s: %w", source, err)
	}
	return NewFragment(source, doc.Root())
}

// XML returns a copy of the serialized snapshot.
func (f Fragment) XML() []byte {
	return bytes.Clone(f.snapshot)
}

// Parts returns fresh, detached copies of the fragment's element children
// (persName and friends) in their original order.
func (f Fragment) Parts() ([]*etree.Element, error) {
	doc, err := tei.ParseBytes(f.snapshot)
	if err != nil {
		return nil, fmt.Errorf("reparse author from %s: %w", f.Source, err)
	}
	children := doc.Root().ChildElements()
	parts := make([]*etree.Element, 0, len(children))
	for _, child := range children {
		parts = append(parts, child.Copy())
	}
	return parts, nil
}

// Pool is an ordered sequence of fragments with a wrapping cursor.
type Pool struct {
	fragments []Fragment
	cursor    int
}

// New returns a pool holding fragments in the given order.
func New(fragments ...Fragment) *Pool {
	return &Pool{fragments: append([]Fragment(nil), fragments...)}
}

// Add appends a fragment to the end of the pool.
func (p *Pool) Add(f Fragment) {
	p.fragments = append(p.fragments, f)
}

// Len is the number of pooled fragments.
func (p *Pool) Len() int {
	return len(p.fragments)
}

// At returns the fragment at index i.
func (p *Pool) At(i int) Fragment {
	return p.fragments[i]
}

// Cursor is the index the next draw will use.
func (p *Pool) Cursor() int {
	return p.cursor
}

// Rewind restores a cursor value previously returned by Cursor.
func (p *Pool) Rewind(cursor int) {
	if len(p.fragments) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = ((cursor % len(p.fragments)) + len(p.fragments)) % len(p.fragments)
}

// Next returns the fragment under the cursor and the index it came from, then
// advances the cursor, wrapping to the start once the pool is exhausted.
func (p *Pool) Next() (Fragment, int, error) {
	if len(p.fragments) == 0 {
		return Fragment{}, 0, ErrEmptyPool
	}
	idx := p.cursor
	p.cursor = (p.cursor + 1) % len(p.fragments)
	return p.fragments[idx], idx, nil
}
