package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nacombine/internal/combine"
	"nacombine/internal/config"
	"nacombine/internal/testsupport"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// isolate keeps the user's real config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func corpusArgs(cfg *config.Config) []string {
	return []string{
		"--header-corpus", cfg.Paths.HeaderCorpus,
		"--affiliation-corpus", cfg.Paths.AffiliationCorpus,
		"--output-file", cfg.Paths.OutputFile,
		"--log-level", "error",
	}
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func TestRunWritesCorpusAndSummary(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)
	testsupport.WriteDocument(t, cfg.Paths.HeaderCorpus, "h.xml",
		testsupport.Document(testsupport.Author(testsupport.PersName("Ada", "Lovelace"))))
	testsupport.WriteDocument(t, cfg.Paths.AffiliationCorpus, "a.xml",
		testsupport.Document(testsupport.Affiliation(testsupport.Org("institution", "MIT"))))

	out, err := runCLI(t, append(corpusArgs(cfg), "--seed", "3")...)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "combined records")
	requireContains(t, out, cfg.Paths.OutputFile)

	data, err := os.ReadFile(cfg.Paths.OutputFile)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	requireContains(t, string(data), "<teiCorpus")
	requireContains(t, string(data), "Lovelace")
}

func TestRunZeroRecordsFailsAfterWriting(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)
	testsupport.WriteDocument(t, cfg.Paths.HeaderCorpus, "h.xml",
		testsupport.Document(testsupport.Author(testsupport.PersName("Ada", "Lovelace"))))

	out, err := runCLI(t, corpusArgs(cfg)...)
	if !errors.Is(err, combine.ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
	requireContains(t, out, "combined records")
	if _, statErr := os.Stat(cfg.Paths.OutputFile); statErr != nil {
		t.Fatalf("headers-only output missing: %v", statErr)
	}
}

func TestRunMissingCorpusIsConfigurationError(t *testing.T) {
	isolate(t)
	base := t.TempDir()

	_, err := runCLI(t,
		"--header-corpus", filepath.Join(base, "absent"),
		"--affiliation-corpus", base,
		"--output-file", filepath.Join(base, "out.xml"))
	if !errors.Is(err, combine.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, combine.Hint(err), "config validate")
}

func TestRunRejectsBadRetention(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)

	_, err := runCLI(t, append(corpusArgs(cfg), "--department-retention", "2")...)
	if !errors.Is(err, combine.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunRejectsNegativeSeed(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)

	_, err := runCLI(t, append(corpusArgs(cfg), "--seed=-3")...)
	if !errors.Is(err, combine.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputFile); !os.IsNotExist(statErr) {
		t.Fatal("output written despite rejected seed")
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	isolate(t)
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(t.TempDir(), "nacombine.toml")
	content := "[synthesis]\nseed = 11\ndepartment_retention = 0.3\n\n[output]\natomic = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	args := append([]string{"config", "validate"}, corpusArgs(cfg)...)
	out, err := runCLI(t, append(args, "--config", path, "--seed", "5", "--no-atomic")...)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+path)
	requireContains(t, out, "Seed: 5\n")
	requireContains(t, out, "Department retention: 0.3\n")
	requireContains(t, out, "Atomic write: no\n")
}

func TestConfigInitAndValidate(t *testing.T) {
	isolate(t)
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}

	cfg := testsupport.NewConfig(t)
	out, err = runCLI(t, append([]string{"config", "validate"}, corpusArgs(cfg)...)...)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "defaults and flags were used")
}
