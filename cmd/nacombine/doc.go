// Package main hosts the nacombine CLI.
//
// The root command runs one synthesis pass over the header and affiliation
// corpora and prints a summary table; the config subcommands scaffold and
// check the TOML configuration. Flags override values from the config file.
package main
