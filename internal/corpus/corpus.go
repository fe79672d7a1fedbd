package corpus

import (
	"github.com/beevik/etree"

	"nacombine/internal/tei"
)

// IndentUnit is the per-level indentation of the written corpus.
const IndentUnit = "  "

// Corpus collects documents for the output file. Headers always precede
// records in the output regardless of the order they were added.
type Corpus struct {
	headers []*etree.Document
	records []*etree.Document
}

// New returns an empty corpus.
func New() *Corpus {
	return &Corpus{}
}

// AddHeader appends a header document.
func (c *Corpus) AddHeader(doc *etree.Document) {
	if doc != nil && doc.Root() != nil {
		c.headers = append(c.headers, doc)
	}
}

// AddRecord appends a combined record.
func (c *Corpus) AddRecord(doc *etree.Document) {
	if doc != nil && doc.Root() != nil {
		c.records = append(c.records, doc)
	}
}

// Headers is the number of header documents collected.
func (c *Corpus) Headers() int { return len(c.headers) }

// Records is the number of combined records collected.
func (c *Corpus) Records() int { return len(c.records) }

// Len is the total number of documents collected.
func (c *Corpus) Len() int { return len(c.headers) + len(c.records) }

// Document builds the teiCorpus document. Collected documents are copied, so
// the corpus can be rendered more than once.
func (c *Corpus) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateText("\n")

	root := doc.CreateElement(tei.TagCorpus)
	root.CreateAttr("xmlns", tei.Namespace)
	for _, group := range [][]*etree.Document{c.headers, c.records} {
		for _, d := range group {
			root.AddChild(d.Root().Copy())
		}
	}
	tei.Indent(root, IndentUnit)
	doc.CreateText("\n")
	return doc
}
