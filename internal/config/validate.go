package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Validate ensures the configuration is usable for a synthesis run.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	return c.validateSettings()
}

func (c *Config) validateSettings() error {
	if err := c.validateSynthesis(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if err := requireDir("paths.header_corpus", c.Paths.HeaderCorpus, "--header-corpus"); err != nil {
		return err
	}
	if err := requireDir("paths.affiliation_corpus", c.Paths.AffiliationCorpus, "--affiliation-corpus"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.OutputFile) == "" {
		return errors.New("paths.output_file is required (set it in the config file or pass --output-file)")
	}
	if info, err := os.Stat(c.Paths.OutputFile); err == nil && info.IsDir() {
		return fmt.Errorf("paths.output_file %q is a directory", c.Paths.OutputFile)
	}
	if c.Envelope.TemplatePath != "" {
		info, err := os.Stat(c.Envelope.TemplatePath)
		if err != nil {
			return fmt.Errorf("envelope.template_path: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("envelope.template_path %q is a directory", c.Envelope.TemplatePath)
		}
	}
	return nil
}

func (c *Config) validateSynthesis() error {
	if c.Synthesis.Seed < 0 {
		return fmt.Errorf("synthesis.seed must not be negative, got %d", c.Synthesis.Seed)
	}
	r := c.Synthesis.DepartmentRetention
	if r < 0 || r > 1 {
		return fmt.Errorf("synthesis.department_retention must be between 0 and 1, got %v", r)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func requireDir(key, path, flag string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%s is required (set it in the config file or pass %s)", key, flag)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q is not a directory", key, path)
	}
	return nil
}
