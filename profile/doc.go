// Package profile provides optional runtime profiling for caption.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof -o caption .
//
// Without the tag every [Profiler] is a no-op and [Modes] is empty.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// # Command-Line Usage
//
//	# Profile rendering a large record file
//	caption --pprof-mode cpu -s sites.yaml render 'Site ${site}'
//
//	# Analyze the result
//	go tool pprof -http=: ~/.cache/caption/pprof/cpu.pprof
//
// The default output directory is the "pprof" directory under the caption
// cache directory.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
