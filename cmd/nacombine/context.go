package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"nacombine/internal/combine"
	"nacombine/internal/config"
)

// runFlags holds the raw flag values; only flags the user changed become
// overrides.
type runFlags struct {
	configPath          string
	headerCorpus        string
	affiliationCorpus   string
	outputFile          string
	templatePath        string
	seed                int64
	departmentRetention float64
	includeBare         bool
	noAtomic            bool
	logLevel            string
	logFormat           string
}

type commandContext struct {
	flags *runFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(flags *runFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the config file, applies changed flags, and validates the
// result once per process.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = combine.Wrap(combine.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.Apply(c.overrides(cmd)); err != nil {
			c.configErr = combine.Wrap(combine.ErrConfiguration, "config", "apply flags", "", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = combine.Wrap(combine.ErrConfiguration, "config", "validate", "", err)
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("header-corpus") {
		o.HeaderCorpus = &c.flags.headerCorpus
	}
	if changed("affiliation-corpus") {
		o.AffiliationCorpus = &c.flags.affiliationCorpus
	}
	if changed("output-file") {
		o.OutputFile = &c.flags.outputFile
	}
	if changed("template") {
		o.TemplatePath = &c.flags.templatePath
	}
	if changed("seed") {
		o.Seed = &c.flags.seed
	}
	if changed("department-retention") {
		o.DepartmentRetention = &c.flags.departmentRetention
	}
	if changed("include-bare-affiliations") {
		o.IncludeBareAffiliations = &c.flags.includeBare
	}
	if changed("no-atomic") {
		atomic := !c.flags.noAtomic
		o.Atomic = &atomic
	}
	if changed("log-level") {
		o.LogLevel = &c.flags.logLevel
	}
	if changed("log-format") {
		o.LogFormat = &c.flags.logFormat
	}
	return o
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
