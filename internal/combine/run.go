package combine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"nacombine/internal/affiliation"
	"nacombine/internal/config"
	"nacombine/internal/corpus"
	"nacombine/internal/envelope"
	"nacombine/internal/logging"
	"nacombine/internal/namepool"
	"nacombine/internal/splice"
)

// Options describes one synthesis run.
type Options struct {
	HeaderCorpus        string
	AffiliationCorpus   string
	OutputFile          string
	TemplatePath        string
	Seed                uint64
	DepartmentRetention float64
	IncludeBare         bool
	Write               corpus.WriteOptions

	// Random replaces the seeded department filter source when set.
	Random affiliation.Random
}

// OptionsFromConfig maps a validated configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{DepartmentRetention: affiliation.DefaultDepartmentRetention}
	}
	return Options{
		HeaderCorpus:        cfg.Paths.HeaderCorpus,
		AffiliationCorpus:   cfg.Paths.AffiliationCorpus,
		OutputFile:          cfg.Paths.OutputFile,
		TemplatePath:        cfg.Envelope.TemplatePath,
		Seed:                uint64(cfg.Synthesis.Seed),
		DepartmentRetention: cfg.Synthesis.DepartmentRetention,
		IncludeBare:         cfg.Synthesis.IncludeBareAffiliations,
		Write: corpus.WriteOptions{
			Atomic: cfg.Output.Atomic,
			Lock:   cfg.Output.Lock,
		},
	}
}

// Summary reports what a run did. It is filled in as far as the run got, so
// it is meaningful alongside an error.
type Summary struct {
	RunID        string
	Seed         uint64
	Header       namepool.Stats
	PoolSize     int
	Affiliation  affiliation.Stats
	Splice       splice.Stats
	FailedFiles  int
	Headers      int
	Records      int
	OutputPath   string
	BytesWritten int64
	Duration     time.Duration
}

// Run executes the full pipeline. Stages complete in order: template, name
// pool, affiliation splicing, output. A zero-record run still writes the
// headers-only corpus and then reports ErrNoRecords.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString(), OutputPath: opts.OutputFile}
	logger = logging.WithRunID(logger, summary.RunID)
	log := logging.NewComponentLogger(logger, "combine")

	random := opts.Random
	if random == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = affiliation.RandomSeed()
			log.Info("drew random seed; pass --seed to reproduce this run", logging.Uint64("seed", seed))
		}
		summary.Seed = seed
		random = affiliation.NewRandom(seed)
	}

	env, err := envelope.Load(opts.TemplatePath)
	if err != nil {
		return finish(summary, start), Wrap(ErrConfiguration, "envelope", "load template", opts.TemplatePath, err)
	}

	pool, err := namepool.Build(ctx, opts.HeaderCorpus, logger)
	if err != nil {
		return finish(summary, start), Wrap(ErrInput, "namepool", "scan header corpus", "", err)
	}
	summary.Header = pool.Stats
	summary.PoolSize = pool.Pool.Len()

	splicer, err := splice.New(pool.Pool, env, splice.Options{IncludeBare: opts.IncludeBare})
	if err != nil {
		if errors.Is(err, namepool.ErrEmptyPool) {
			logging.ErrorWithContext(log, "header corpus yielded no author fragments", "empty_pool",
				logging.Path(opts.HeaderCorpus),
				logging.Int("files", summary.Header.Files),
				logging.String(logging.FieldErrorHint, Hint(ErrEmptyPool)))
			return finish(summary, start), Wrap(ErrEmptyPool, "namepool", "build", opts.HeaderCorpus, err)
		}
		return finish(summary, start), Wrap(ErrConfiguration, "splice", "init", "", err)
	}

	log.Info("splicing affiliations",
		logging.Path(opts.AffiliationCorpus),
		logging.Int("pool_size", summary.PoolSize),
		logging.Float64("department_retention", opts.DepartmentRetention),
		logging.Bool("include_bare", opts.IncludeBare))

	out := corpus.New()
	for _, h := range pool.Headers {
		out.AddHeader(h.Doc)
	}

	normalizer := affiliation.New(random,
		affiliation.WithDepartmentRetention(opts.DepartmentRetention),
		affiliation.WithLogger(logger))
	for doc := range normalizer.Scan(ctx, opts.AffiliationCorpus) {
		records, st, err := splicer.Document(doc.Doc)
		if err != nil {
			summary.FailedFiles++
			logging.WarnWithContext(log, "affiliation document contributed no records",
				"splice_failed",
				logging.Path(doc.Path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "records from this file are dropped"))
			continue
		}
		for _, r := range records {
			out.AddRecord(r)
		}
		summary.Splice.Add(st)
		log.Debug("spliced affiliation document",
			logging.Path(doc.Path),
			logging.Int("records", st.Records),
			logging.Int("duplicates", st.Duplicates),
			logging.Int("rejected", st.Rejected))
	}
	summary.Affiliation = normalizer.Stats()
	if err := normalizer.Err(); err != nil {
		return finish(summary, start), Wrap(ErrInput, "affiliation", "scan affiliation corpus", "", err)
	}

	summary.Headers = out.Headers()
	summary.Records = out.Records()
	written, err := out.WriteFile(opts.OutputFile, opts.Write)
	if err != nil {
		return finish(summary, start), Wrap(ErrOutput, "corpus", "write", opts.OutputFile, err)
	}
	summary.BytesWritten = written

	log.Info("corpus written",
		logging.Path(opts.OutputFile),
		logging.Int("headers", summary.Headers),
		logging.Int(logging.FieldCount, summary.Records),
		logging.Int64("bytes", written),
		logging.Duration("elapsed", time.Since(start)))

	if summary.Records == 0 {
		return finish(summary, start), Wrap(ErrNoRecords, "splice", "", "no affiliation produced a combined record", nil)
	}
	return finish(summary, start), nil
}

func finish(s Summary, start time.Time) Summary {
	s.Duration = time.Since(start)
	return s
}
