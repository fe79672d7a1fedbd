package tei

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Namespace is the TEI namespace URI declared on every training document.
const Namespace = "http://www.tei-c.org/ns/1.0"

// Element local names the pipeline works with.
const (
	TagTEI         = "TEI"
	TagCorpus      = "teiCorpus"
	TagAuthor      = "author"
	TagAffiliation = "affiliation"
	TagOrgName     = "orgName"
	TagMarker      = "marker"
	TagPersName    = "persName"
)

// ErrNoRoot reports a document that parsed but holds no root element.
var ErrNoRoot = errors.New("document has no root element")

// ParseFile reads and parses one XML document from disk.
func ParseFile(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNoRoot)
	}
	return doc, nil
}

// ParseBytes parses an in-memory XML document.
func ParseBytes(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// ParseString is ParseBytes for string input.
func ParseString(data string) (*etree.Document, error) {
	return ParseBytes([]byte(data))
}

// InNamespace reports whether el belongs to the TEI namespace. Unqualified
// elements with no default namespace in scope are treated as TEI.
func InNamespace(el *etree.Element) bool {
	if el == nil {
		return false
	}
	ns := el.NamespaceURI()
	if ns == Namespace {
		return true
	}
	return ns == "" && el.Space == ""
}

// Is reports whether el is the TEI element with the given local name.
func Is(el *etree.Element, local string) bool {
	return el != nil && el.Tag == local && InNamespace(el)
}

// FindAll returns the TEI descendants of root named local, in document order.
// root itself is never included.
func FindAll(root *etree.Element, local string) []*etree.Element {
	return FindWhere(root, local, nil)
}

// FindWhere is FindAll restricted to elements accepted by match. A nil match
// accepts every element.
func FindWhere(root *etree.Element, local string, match func(*etree.Element) bool) []*etree.Element {
	if root == nil {
		return nil
	}
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if Is(child, local) && (match == nil || match(child)) {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

// FindFirst returns the first TEI descendant of root named local, or nil.
func FindFirst(root *etree.Element, local string) *etree.Element {
	if root == nil {
		return nil
	}
	for _, child := range root.ChildElements() {
		if Is(child, local) {
			return child
		}
		if found := FindFirst(child, local); found != nil {
			return found
		}
	}
	return nil
}

// Detach removes each element from its parent and returns how many were
// removed. Elements already detached (for example because an ancestor in the
// same list was removed first) are still removed from their own parent, which
// keeps the operation independent of list order.
func Detach(elems []*etree.Element) int {
	removed := 0
	for _, el := range elems {
		parent := el.Parent()
		if parent == nil {
			continue
		}
		if parent.RemoveChild(el) != nil {
			removed++
		}
	}
	return removed
}

// RemoveAll detaches every TEI descendant of root named local.
func RemoveAll(root *etree.Element, local string) int {
	return Detach(FindAll(root, local))
}

// HasType reports whether el carries type="value".
func HasType(value string) func(*etree.Element) bool {
	return func(el *etree.Element) bool {
		return el.SelectAttrValue("type", "") == value
	}
}

// TextContent concatenates all character data below el in document order.
func TextContent(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	var collect func(*etree.Element)
	collect = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				collect(t)
			}
		}
	}
	collect(el)
	return b.String()
}

// Snapshot serializes a copy of el as a standalone document. The namespace in
// scope for el is declared on the copy so the bytes re-parse to the same
// qualified names.
func Snapshot(el *etree.Element) ([]byte, error) {
	if el == nil {
		return nil, ErrNoRoot
	}
	cp := el.Copy()
	if cp.Space == "" && cp.SelectAttr("xmlns") == nil {
		if ns := el.NamespaceURI(); ns != "" {
			cp.CreateAttr("xmlns", ns)
		}
	}
	doc := etree.NewDocument()
	doc.SetRoot(cp)
	return doc.WriteToBytes()
}
