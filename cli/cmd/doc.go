// Package cmd implements the caption subcommands: render, check, fmt,
// fields and init. The interactive preview lives in package repl.
//
// Commands read their environment from the [context.Context] kong passes to
// Run: the parsed [kong.Context], the record sources, the search path and
// the output writer. Package cli stores each with the matching With function.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the YAML configuration file written by init.
	ConfigIdentifier = "config"
)
