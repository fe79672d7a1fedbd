package main

import (
	"github.com/spf13/cobra"

	"nacombine/internal/config"
)

func newRootCommand() *cobra.Command {
	flags := &runFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:   "nacombine",
		Short: "Synthesize name-address training data from header and affiliation corpora",
		Long: "nacombine pools annotated author names from the header corpus, injects them into\n" +
			"normalized affiliations from the affiliation corpus, and writes one combined\n" +
			"teiCorpus file for training the name-address sequence model.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig(cmd)
			if err != nil {
				return err
			}
			return runCombine(cmd, cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	pf.StringVar(&flags.headerCorpus, "header-corpus", "", "Directory of header/author TEI training documents")
	pf.StringVar(&flags.affiliationCorpus, "affiliation-corpus", "", "Directory of affiliation/address TEI training documents")
	pf.StringVarP(&flags.outputFile, "output-file", "o", "", "Path of the combined TEI corpus to write")
	pf.StringVar(&flags.templatePath, "template", "", "Envelope template replacing the built-in one")
	pf.Int64Var(&flags.seed, "seed", 0, "Department filter seed (0 draws one and logs it)")
	pf.Float64Var(&flags.departmentRetention, "department-retention", config.DefaultDepartmentRetention, "Probability that a department orgName is kept")
	pf.BoolVar(&flags.includeBare, "include-bare-affiliations", false, "Also emit a name-less record per distinct affiliation")
	pf.BoolVar(&flags.noAtomic, "no-atomic", false, "Write the output in place instead of via temp file and rename")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (console, json)")

	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
