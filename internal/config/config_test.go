package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"nacombine/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "nacombine", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Synthesis.DepartmentRetention != config.DefaultDepartmentRetention {
		t.Fatalf("unexpected retention %v", cfg.Synthesis.DepartmentRetention)
	}
	if !cfg.Output.Atomic || !cfg.Output.Lock {
		t.Fatalf("expected atomic locked output by default, got %+v", cfg.Output)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if cfg.Synthesis.IncludeBareAffiliations {
		t.Fatal("bare affiliations should be off by default")
	}
}

func TestLoadExpandsPathsFromFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nacombine.toml")
	content := `
[paths]
header_corpus = "~/corpora/header"
affiliation_corpus = "~/corpora/affiliation"
output_file = "~/out/combined.tei.xml"

[synthesis]
seed = 42
department_retention = 0.25

[logging]
format = " JSON "
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to be used, got %q exists=%v", resolved, exists)
	}
	if want := filepath.Join(tempHome, "corpora", "header"); cfg.Paths.HeaderCorpus != want {
		t.Fatalf("header corpus = %q, want %q", cfg.Paths.HeaderCorpus, want)
	}
	if want := filepath.Join(tempHome, "out", "combined.tei.xml"); cfg.Paths.OutputFile != want {
		t.Fatalf("output file = %q, want %q", cfg.Paths.OutputFile, want)
	}
	if cfg.Synthesis.Seed != 42 || cfg.Synthesis.DepartmentRetention != 0.25 {
		t.Fatalf("unexpected synthesis section %+v", cfg.Synthesis)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nacombine.toml")
	if err := os.WriteFile(path, []byte("[synthesis]\ndepartment_retension = 0.2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestLoadRejectsRetentionOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nacombine.toml")
	if err := os.WriteFile(path, []byte("[synthesis]\ndepartment_retention = 1.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "department_retention") {
		t.Fatalf("expected retention error, got %v", err)
	}
}

func TestLoadRejectsNegativeSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nacombine.toml")
	if err := os.WriteFile(path, []byte("[synthesis]\nseed = -3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "synthesis.seed") {
		t.Fatalf("expected seed error, got %v", err)
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestApplyOverridesAndValidate(t *testing.T) {
	base := t.TempDir()
	header := filepath.Join(base, "header")
	affiliation := filepath.Join(base, "affiliation")
	for _, dir := range []string{header, affiliation} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	cfg := config.Default()
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "--header-corpus") {
		t.Fatalf("expected missing header corpus error, got %v", err)
	}

	output := filepath.Join(base, "out", "combined.xml")
	seed := int64(7)
	retention := 0.5
	atomic := false
	if err := cfg.Apply(config.Overrides{
		HeaderCorpus:        &header,
		AffiliationCorpus:   &affiliation,
		OutputFile:          &output,
		Seed:                &seed,
		DepartmentRetention: &retention,
		Atomic:              &atomic,
	}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Synthesis.Seed != 7 || cfg.Synthesis.DepartmentRetention != 0.5 || cfg.Output.Atomic {
		t.Fatalf("overrides not applied: %+v %+v", cfg.Synthesis, cfg.Output)
	}
}

func TestValidateRejectsFileAsCorpus(t *testing.T) {
	base := t.TempDir()
	file := filepath.Join(base, "header.xml")
	if err := os.WriteFile(file, []byte("<TEI/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := config.Default()
	cfg.Paths.HeaderCorpus = file
	cfg.Paths.AffiliationCorpus = base
	cfg.Paths.OutputFile = filepath.Join(base, "out.xml")
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("expected not-a-directory error, got %v", err)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.Synthesis.DepartmentRetention != config.DefaultDepartmentRetention {
		t.Fatalf("sample retention = %v", cfg.Synthesis.DepartmentRetention)
	}
	if !cfg.Output.Atomic {
		t.Fatal("sample should enable atomic writes")
	}
}
