package tei

import (
	"strings"

	"github.com/beevik/etree"
)

// Indent re-indents the element-only parts of the tree below el with unit per
// level. Elements holding non-whitespace character data, or inline whitespace
// without a line break, are mixed content and are left byte-for-byte as they
// are along with everything below them, so annotated text never gains or
// loses whitespace.
func Indent(el *etree.Element, unit string) {
	indent(el, 0, unit)
}

func indent(el *etree.Element, depth int, unit string) {
	if el == nil || len(el.ChildElements()) == 0 || isMixed(el) {
		return
	}

	for i := len(el.Child) - 1; i >= 0; i-- {
		if cd, ok := el.Child[i].(*etree.CharData); ok && isBlank(cd) {
			el.RemoveChildAt(i)
		}
	}

	prefix := "\n" + strings.Repeat(unit, depth+1)
	tokens := append([]etree.Token(nil), el.Child...)
	for _, tok := range tokens {
		el.InsertChildAt(tok.Index(), etree.NewText(prefix))
		if child, ok := tok.(*etree.Element); ok {
			indent(child, depth+1, unit)
		}
	}
	el.AddChild(etree.NewText("\n" + strings.Repeat(unit, depth)))
}

func isMixed(el *etree.Element) bool {
	for _, tok := range el.Child {
		cd, ok := tok.(*etree.CharData)
		if !ok {
			continue
		}
		if !isBlank(cd) || (cd.Data != "" && !strings.Contains(cd.Data, "\n")) {
			return true
		}
	}
	return false
}

func isBlank(cd *etree.CharData) bool {
	return strings.TrimSpace(cd.Data) == ""
}
