package tei

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// DocumentExt is the extension that marks a file as a training document.
const DocumentExt = ".xml"

// IsDocument reports whether name carries the training document extension.
func IsDocument(name string) bool {
	return strings.EqualFold(filepath.Ext(name), DocumentExt)
}

// VisitFunc receives each training document path. err is non-nil when an
// entry below the root could not be read; returning nil skips that entry and
// continues the walk, returning an error aborts it.
type VisitFunc func(path string, err error) error

// WalkDocuments visits every training document below root in lexical order.
// Failure to read root itself and context cancellation abort the walk.
func WalkDocuments(ctx context.Context, root string, visit VisitFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			if verr := visit(path, err); verr != nil {
				return verr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsDocument(d.Name()) {
			return nil
		}
		return visit(path, nil)
	})
}
