package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths locates the two input corpora and the combined output.
type Paths struct {
	HeaderCorpus      string `toml:"header_corpus"`
	AffiliationCorpus string `toml:"affiliation_corpus"`
	OutputFile        string `toml:"output_file"`
}

// Synthesis controls the randomized and optional parts of the algorithm.
type Synthesis struct {
	// Seed fixes the department filter's generator. Zero means "draw one".
	Seed                    int64   `toml:"seed"`
	DepartmentRetention     float64 `toml:"department_retention"`
	IncludeBareAffiliations bool    `toml:"include_bare_affiliations"`
}

// Envelope overrides the built-in record template.
type Envelope struct {
	TemplatePath string `toml:"template_path"`
}

// Output controls how the combined corpus reaches disk.
type Output struct {
	Atomic bool `toml:"atomic"`
	Lock   bool `toml:"lock"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for nacombine.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Synthesis Synthesis `toml:"synthesis"`
	Envelope  Envelope  `toml:"envelope"`
	Output    Output    `toml:"output"`
	Logging   Logging   `toml:"logging"`
}

// Overrides carries command line values. Nil fields leave the loaded value alone.
type Overrides struct {
	HeaderCorpus            *string
	AffiliationCorpus       *string
	OutputFile              *string
	Seed                    *int64
	DepartmentRetention     *float64
	IncludeBareAffiliations *bool
	TemplatePath            *string
	Atomic                  *bool
	LogFormat               *string
	LogLevel                *string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(filepath.Join(defaultConfigDir, "config.toml"))
}

// Load locates, parses, and normalizes a configuration file. Settings that do
// not depend on paths are validated here; call Validate once overrides have
// been applied to check the complete configuration.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.validateSettings(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Apply merges command line overrides and re-normalizes the result.
func (c *Config) Apply(o Overrides) error {
	if o.HeaderCorpus != nil {
		c.Paths.HeaderCorpus = *o.HeaderCorpus
	}
	if o.AffiliationCorpus != nil {
		c.Paths.AffiliationCorpus = *o.AffiliationCorpus
	}
	if o.OutputFile != nil {
		c.Paths.OutputFile = *o.OutputFile
	}
	if o.Seed != nil {
		c.Synthesis.Seed = *o.Seed
	}
	if o.DepartmentRetention != nil {
		c.Synthesis.DepartmentRetention = *o.DepartmentRetention
	}
	if o.IncludeBareAffiliations != nil {
		c.Synthesis.IncludeBareAffiliations = *o.IncludeBareAffiliations
	}
	if o.TemplatePath != nil {
		c.Envelope.TemplatePath = *o.TemplatePath
	}
	if o.Atomic != nil {
		c.Output.Atomic = *o.Atomic
	}
	if o.LogFormat != nil {
		c.Logging.Format = *o.LogFormat
	}
	if o.LogLevel != nil {
		c.Logging.Level = *o.LogLevel
	}
	return c.normalize()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			return "", false, fmt.Errorf("config %s: %w", expanded, err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfig)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
