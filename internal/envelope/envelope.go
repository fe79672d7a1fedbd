package envelope

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"

	"nacombine/internal/tei"
)

//go:embed template.xml
var defaultTemplate string

// ErrInvalidTemplate reports an envelope template that cannot host a record.
var ErrInvalidTemplate = errors.New("invalid envelope template")

// DefaultTemplate returns the embedded envelope template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Synthesizer produces fresh envelopes from a validated template.
type Synthesizer struct {
	template *etree.Document
}

// New parses and validates template. The root must be a TEI element holding
// exactly one empty author element.
func New(template string) (*Synthesizer, error) {
	doc, err := tei.ParseString(template)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	root := doc.Root()
	if !strings.EqualFold(root.Tag, tei.TagTEI) || !tei.InNamespace(root) {
		return nil, fmt.Errorf("%w: root element is %q, want %s", ErrInvalidTemplate, root.FullTag(), tei.TagTEI)
	}
	authors := tei.FindAll(root, tei.TagAuthor)
	if len(authors) != 1 {
		return nil, fmt.Errorf("%w: found %d author elements, want exactly one", ErrInvalidTemplate, len(authors))
	}
	if len(authors[0].ChildElements()) != 0 || strings.TrimSpace(authors[0].Text()) != "" {
		return nil, fmt.Errorf("%w: author insertion point is not empty", ErrInvalidTemplate)
	}
	return &Synthesizer{template: doc}, nil
}

// Default returns a synthesizer over the embedded template.
func Default() *Synthesizer {
	s, err := New(defaultTemplate)
	if err != nil {
		panic(fmt.Sprintf("embedded envelope template: %v", err))
	}
	return s
}

// Load reads a template from path. An empty path selects the embedded template.
func Load(path string) (*Synthesizer, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalidTemplate, path, err)
	}
	s, err := New(string(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return s, nil
}

// Wrap returns a new envelope whose author element holds a deep copy of
// fragment. fragment and its document are left untouched. A nil fragment
// yields an envelope with an empty author element.
func (s *Synthesizer) Wrap(fragment *etree.Element) (*etree.Document, error) {
	doc := s.template.Copy()
	slot := AuthorSlot(doc)
	if slot == nil {
		return nil, fmt.Errorf("%w: author insertion point missing", ErrInvalidTemplate)
	}
	if fragment != nil {
		slot.AddChild(fragment.Copy())
	}
	return doc, nil
}

// AuthorSlot returns the author insertion point of an envelope, or nil.
func AuthorSlot(doc *etree.Document) *etree.Element {
	if doc == nil {
		return nil
	}
	return tei.FindFirst(doc.Root(), tei.TagAuthor)
}
