package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"nacombine/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose corpus directories and output path live
// in a per-test temp directory. Both corpus directories exist but are empty.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.HeaderCorpus = filepath.Join(base, "header")
	cfgVal.Paths.AffiliationCorpus = filepath.Join(base, "affiliation")
	cfgVal.Paths.OutputFile = filepath.Join(base, "out", "combined.tei.xml")
	cfgVal.Synthesis.Seed = 1

	for _, dir := range []string{cfgVal.Paths.HeaderCorpus, cfgVal.Paths.AffiliationCorpus} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSeed fixes the department filter seed.
func WithSeed(seed int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Synthesis.Seed = seed
	}
}

// WithDepartmentRetention overrides the department retention probability.
func WithDepartmentRetention(p float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Synthesis.DepartmentRetention = p
	}
}

// WithBareAffiliations enables name-less envelope records.
func WithBareAffiliations() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Synthesis.IncludeBareAffiliations = true
	}
}

// WithTemplate writes body as the envelope template and points the config at it.
func WithTemplate(body string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "template.xml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			b.t.Fatalf("write template: %v", err)
		}
		b.cfg.Envelope.TemplatePath = path
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.HeaderCorpus)
}
