// Package cli contains the command line interface for caption.
//
// # Usage
//
// A template is rendered once per record. Records come from YAML or JSON
// files given with --source, or from --set assignments:
//
//	caption -s shots.yaml '${camera} ${round(exposure,2)}s'
//	caption -D iso=400 -D lens=35mm '${lens}${exists(iso)? ISO ${iso}:}'
//
// The remaining subcommands inspect templates without rendering them:
//
//	caption check '${a' 'round(b,1)'
//	caption fmt -o yaml 'match(kind,raw)?RAW:${kind}'
//	caption fields -m -s shots.yaml -t caption.tmpl
//	caption repl -s shots.yaml
//
// # Search Path
//
// Relative record and template file names not found in the working directory
// are looked up in each --path directory (also $CAPTION_PATH), then in the
// configuration directory.
//
// # Configuration
//
// Flag defaults may be set in config.yaml or config.json under the user
// configuration directory (for example ~/.config/caption). The init
// subcommand writes the current settings to config.yaml:
//
//	caption --log-level=debug init
//
// Nested YAML mappings are joined with hyphens, so "log: {level: debug}" is
// the same as "log-level: debug".
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp layout (rfc3339, timeonly, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o caption .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/caption/pprof)
package cli
