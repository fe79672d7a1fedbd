package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"nacombine/internal/combine"
)

func renderSummary(s combine.Summary, color bool) string {
	rows := summaryRows(s)
	return renderTable([]string{"Stage", "Metric", "Value"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}, color)
}

func summaryRows(s combine.Summary) [][]string {
	seed := "-"
	if s.Seed != 0 {
		seed = strconv.FormatUint(s.Seed, 10)
	}
	size := "-"
	if s.BytesWritten > 0 {
		size = humanize.Bytes(uint64(s.BytesWritten))
	}
	return [][]string{
		{"run", "run id", s.RunID},
		{"run", "seed", seed},
		{"header", "documents parsed", fmt.Sprintf("%d/%d", s.Header.Parsed, s.Header.Files)},
		{"header", "markers removed", strconv.Itoa(s.Header.Markers)},
		{"header", "names pooled", strconv.Itoa(s.PoolSize)},
		{"affiliation", "documents parsed", fmt.Sprintf("%d/%d", s.Affiliation.Parsed, s.Affiliation.Files)},
		{"affiliation", "markers removed", strconv.Itoa(s.Affiliation.Markers)},
		{"affiliation", "laboratories removed", strconv.Itoa(s.Affiliation.Laboratories)},
		{"affiliation", "departments removed", strconv.Itoa(s.Affiliation.DepartmentsRemoved)},
		{"affiliation", "departments kept", strconv.Itoa(s.Affiliation.DepartmentsRetained)},
		{"splice", "affiliations seen", strconv.Itoa(s.Splice.Affiliations)},
		{"splice", "without organisation", strconv.Itoa(s.Splice.Rejected)},
		{"splice", "duplicates", strconv.Itoa(s.Splice.Duplicates)},
		{"splice", "failed documents", strconv.Itoa(s.FailedFiles)},
		{"splice", "bare records", strconv.Itoa(s.Splice.Bare)},
		{"splice", "combined records", strconv.Itoa(s.Splice.Records)},
		{"output", "headers written", strconv.Itoa(s.Headers)},
		{"output", "path", s.OutputPath},
		{"output", "size", size},
		{"output", "written", yesNo(s.BytesWritten > 0)},
		{"run", "duration", s.Duration.Round(time.Millisecond).String()},
	}
}
