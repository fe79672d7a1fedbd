package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"nacombine/internal/tei"
	"nacombine/internal/testsupport"
)

func parse(t *testing.T, data string) *etree.Document {
	t.Helper()
	doc, err := tei.ParseString(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func header(t *testing.T, surname string) *etree.Document {
	return parse(t, testsupport.Document(testsupport.Author(testsupport.PersName("X", surname))))
}

func record(t *testing.T, org string) *etree.Document {
	return parse(t, testsupport.Document(testsupport.Author(testsupport.Affiliation(testsupport.Org("institution", org)))))
}

func TestDocumentOrdersHeadersBeforeRecords(t *testing.T) {
	c := New()
	c.AddRecord(record(t, "MIT"))
	c.AddHeader(header(t, "Lovelace"))
	c.AddRecord(record(t, "CNRS"))
	c.AddHeader(header(t, "Hopper"))

	root := c.Document().Root()
	if root.Tag != tei.TagCorpus || root.SelectAttrValue("xmlns", "") != tei.Namespace {
		t.Fatalf("unexpected root <%s xmlns=%q>", root.Tag, root.SelectAttrValue("xmlns", ""))
	}

	var got []string
	for _, child := range root.ChildElements() {
		got = append(got, strings.TrimSpace(tei.TextContent(child)))
	}
	want := []string{"XLovelace", "XHopper", "MIT", "CNRS"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document order mismatch (-want +got):\n%s", diff)
	}
	if c.Headers() != 2 || c.Records() != 2 || c.Len() != 4 {
		t.Fatalf("unexpected counts headers=%d records=%d", c.Headers(), c.Records())
	}
}

func TestDocumentDoesNotConsumeInputs(t *testing.T) {
	h := header(t, "Lovelace")
	c := New()
	c.AddHeader(h)

	first, _ := c.Document().WriteToString()
	second, _ := c.Document().WriteToString()
	if first != second {
		t.Fatal("rendering twice produced different output")
	}
	if h.Root() == nil || len(h.Root().ChildElements()) == 0 {
		t.Fatal("input header lost its root")
	}
}

func TestWriteFileDeclarationAndIndentation(t *testing.T) {
	c := New()
	c.AddHeader(parse(t, `<TEI xmlns="http://www.tei-c.org/ns/1.0"><teiHeader><author><persName>Dr. <surname>Lovelace</surname></persName></author></teiHeader></TEI>`))

	path := filepath.Join(t.TempDir(), "nested", "combined.tei.xml")
	n, err := c.WriteFile(path, WriteOptions{Atomic: true, Lock: true})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if int64(len(data)) != n {
		t.Fatalf("reported %d bytes, file has %d", n, len(data))
	}

	out := string(data)
	if !strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"+`<teiCorpus xmlns="http://www.tei-c.org/ns/1.0">`) {
		t.Fatalf("unexpected prolog:\n%s", out)
	}
	if !strings.Contains(out, "\n  <TEI") || !strings.Contains(out, "\n      <author>") {
		t.Fatalf("output not indented:\n%s", out)
	}
	if !strings.Contains(out, "<persName>Dr. <surname>Lovelace</surname></persName>") {
		t.Fatalf("mixed content reflowed:\n%s", out)
	}
}

func TestWriteFileKeepsLockFileAndReleasesLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.xml")
	c := New()
	c.AddRecord(record(t, "MIT"))

	for i := 0; i < 2; i++ {
		if _, err := c.WriteFile(path, WriteOptions{Atomic: true, Lock: true}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
	}
	if _, err := os.Stat(LockPath(path)); err != nil {
		t.Fatalf("lock file should stay in place: %v", err)
	}
	next := flock.New(LockPath(path))
	ok, err := next.TryLock()
	if err != nil || !ok {
		t.Fatalf("lock not released after write: ok=%v err=%v", ok, err)
	}
	_ = next.Unlock()
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combined.xml")
	c := New()
	c.AddRecord(record(t, "MIT"))

	if _, err := c.WriteFile(path, WriteOptions{Atomic: true}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "combined.xml" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents %v", names)
	}
}

func TestWriteFileReplacesExistingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.xml")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, atomic := range []bool{true, false} {
		if _, err := New().WriteFile(path, WriteOptions{Atomic: atomic}); err != nil {
			t.Fatalf("WriteFile(atomic=%v): %v", atomic, err)
		}
		data, _ := os.ReadFile(path)
		if strings.Contains(string(data), "stale") {
			t.Fatalf("atomic=%v: stale content survived", atomic)
		}
	}
}

func TestWriteFileRespectsHeldLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.xml")
	held := flock.New(LockPath(path))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	if _, err := New().WriteFile(path, WriteOptions{Lock: true}); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("output written despite held lock")
	}
}

func TestWriteFileFailsWhenParentIsFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New().WriteFile(filepath.Join(blocker, "combined.xml"), WriteOptions{Atomic: true}); err == nil {
		t.Fatal("expected write failure")
	}
}
