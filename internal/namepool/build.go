package namepool

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"nacombine/internal/logging"
	"nacombine/internal/tei"
)

// Header is a parsed header document, markers already removed.
type Header struct {
	Path string
	Doc  *etree.Document
}

// Stats counts what a Build pass saw.
type Stats struct {
	Files   int
	Parsed  int
	Skipped int
	Markers int
	Authors int
}

// Result is the output of a Build pass.
type Result struct {
	Headers []Header
	Pool    *Pool
	Stats   Stats
}

// Build scans dir for header documents, removes citation markers from each,
// and pools every remaining author element in walk-then-document order.
// Malformed documents are logged and skipped; only failure to walk dir itself
// (or cancellation) is returned as an error.
func Build(ctx context.Context, dir string, logger *slog.Logger) (*Result, error) {
	logger = logging.NewComponentLogger(logger, "namepool")
	res := &Result{Pool: New()}

	err := tei.WalkDocuments(ctx, dir, func(path string, walkErr error) error {
		if walkErr != nil {
			logging.WarnWithContext(logger, "header corpus entry unreadable",
				"header_walk_failed",
				logging.Path(path),
				logging.Error(walkErr),
				logging.String(logging.FieldErrorHint, "check file permissions below the header corpus"),
				logging.String(logging.FieldImpact, "documents below this entry are not pooled"))
			return nil
		}
		res.Stats.Files++

		doc, err := tei.ParseFile(path)
		if err != nil {
			res.Stats.Skipped++
			logging.WarnWithContext(logger, "skipping unparsable header document",
				"header_parse_failed",
				logging.Path(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix or remove the malformed XML file"),
				logging.String(logging.FieldImpact, "authors from this file are not pooled"))
			return nil
		}
		res.Stats.Parsed++

		markers := tei.RemoveAll(doc.Root(), tei.TagMarker)
		res.Stats.Markers += markers

		authors := tei.FindAll(doc.Root(), tei.TagAuthor)
		for _, author := range authors {
			fragment, err := NewFragment(path, author)
			if err != nil {
				return fmt.Errorf("pool author: %w", err)
			}
			res.Pool.Add(fragment)
		}
		res.Stats.Authors += len(authors)
		res.Headers = append(res.Headers, Header{Path: path, Doc: doc})

		logger.Debug("pooled header document",
			logging.Path(path),
			logging.Int("authors", len(authors)),
			logging.Int("markers_removed", markers))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk header corpus %s: %w", dir, err)
	}

	logger.Info("name pool built",
		logging.Int(logging.FieldCount, res.Pool.Len()),
		logging.Int("files", res.Stats.Files),
		logging.Int("skipped", res.Stats.Skipped),
		logging.Int("markers_removed", res.Stats.Markers))
	return res, nil
}
