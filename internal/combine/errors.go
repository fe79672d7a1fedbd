package combine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrEmptyPool     = errors.New("empty name pool")
	ErrNoRecords     = errors.New("no combined records")
	ErrOutput        = errors.New("output error")
	ErrInput         = errors.New("input error")
)

// Wrap builds an error message that includes stage context while tagging it
// with marker for classification. The marker should be one of the exported
// sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrInput
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Hint returns operator guidance for a run error.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "check flags and config file, then run 'nacombine config validate'"
	case errors.Is(err, ErrEmptyPool):
		return "the header corpus holds no parsable author elements; check --header-corpus"
	case errors.Is(err, ErrNoRecords):
		return "no affiliation had an organisation name; check --affiliation-corpus and department retention"
	case errors.Is(err, ErrOutput):
		return "check that the output directory is writable and no other run holds the lock"
	default:
		return "check the corpus directories are readable"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "combine failure"
	}
	return strings.Join(parts, ": ")
}
