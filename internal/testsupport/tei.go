package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PersName renders a forename/surname person name.
func PersName(forename, surname string) string {
	return fmt.Sprintf(`<persName><forename type="first">%s</forename><surname>%s</surname></persName>`, forename, surname)
}

// Author wraps inner markup in an author element.
func Author(inner ...string) string {
	return "<author>" + strings.Join(inner, "") + "</author>"
}

// Org renders an orgName of the given type.
func Org(kind, name string) string {
	return fmt.Sprintf(`<orgName type="%s">%s</orgName>`, kind, name)
}

// Address renders a minimal address block.
func Address(settlement, country string) string {
	return fmt.Sprintf(`<address><settlement>%s</settlement><country>%s</country></address>`, settlement, country)
}

// Affiliation wraps inner markup in an affiliation element.
func Affiliation(inner ...string) string {
	return "<affiliation>" + strings.Join(inner, "") + "</affiliation>"
}

// Document renders a TEI training document whose analytic section holds body.
func Document(body ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <sourceDesc>
        <biblStruct>
          <analytic>
            ` + strings.Join(body, "\n            ") + `
          </analytic>
        </biblStruct>
      </sourceDesc>
    </fileDesc>
  </teiHeader>
</TEI>
`
}

// WriteDocument writes content to dir/name, creating parent directories.
func WriteDocument(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
