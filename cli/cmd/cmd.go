package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/caption/log"
	"github.com/ardnew/caption/record"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	outputKey     struct{}
	stdinKey      struct{}
	searchPathKey struct{}
)

// WithOutput returns a context whose commands write their results to w
// instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithStdin returns a context whose commands read "-" sources from r
// instead of os.Stdin.
func WithStdin(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, stdinKey{}, r)
}

func stdinFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(stdinKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithSearchPath returns a context carrying the directories searched for
// relative record and template files that do not exist in the working
// directory.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// resolvePath returns name unchanged if it is stdin, absolute or present in
// the working directory. Otherwise it returns the first match found under
// the search path, or name itself when nothing matches.
func resolvePath(ctx context.Context, name string) string {
	if name == stdinSource || name == "" || filepath.IsAbs(name) {
		return name
	}

	if _, err := os.Stat(name); err == nil {
		return name
	}

	for _, dir := range searchPathFrom(ctx) {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			log.TraceContext(ctx, "resolved from search path",
				slog.String("name", name),
				slog.String("path", candidate),
			)

			return candidate
		}
	}

	return name
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		paths    []string
		hasStdin bool
	}

	// SourceFiles is the set of record files named on the command line.
	SourceFiles interface {
		IsZero() bool
		Names() []string
		Records(ctx context.Context) ([]record.Record, error)
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.paths) == 0 && !s.hasStdin }

// Names returns the resolved source paths in read order, with "-" standing
// for stdin.
func (s *sourceFiles) Names() []string {
	names := append([]string(nil), s.paths...)
	if s.hasStdin {
		names = append(names, stdinSource)
	}

	return names
}

// Records loads every source in order and concatenates their records.
// Stdin, if present, is read last.
func (s *sourceFiles) Records(ctx context.Context) ([]record.Record, error) {
	var all []record.Record

	for _, name := range s.Names() {
		recs, err := loadSource(ctx, name)
		if err != nil {
			return nil, err
		}

		all = append(all, recs...)
	}

	return all, nil
}

func loadSource(ctx context.Context, name string) ([]record.Record, error) {
	if name == stdinSource {
		return record.Load(ctx, stdinFrom(ctx))
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("file", name))
	}
	defer file.Close()

	recs, err := record.Load(ctx, file)
	if err != nil {
		return nil, ErrReadSource.Wrap(err).With(slog.String("file", name))
	}

	return recs, nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the record files
// named by sources.
//
// Relative names are resolved against the search path stored by
// [WithSearchPath]. Duplicates are removed by resolving symlinks and
// comparing device/inode pairs. All occurrences of "-" collapse into a
// single stdin source placed last so it reads after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(ctx, sources))
}

// buildSourceFiles constructs a SourceFiles from the given source paths.
func buildSourceFiles(ctx context.Context, sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.paths = make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		path, ok := uniquePath(resolvePath(ctx, src), seen)
		if !ok {
			log.WarnContext(ctx, "skipping source",
				slog.String("file", src))

			continue
		}

		srcs.paths = append(srcs.paths, path)
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// uniquePath returns the resolved form of path if it names a file not seen
// before. It returns false if the file is a duplicate or cannot be stat'd.
func uniquePath(path string, seen map[fileKey]struct{}) (string, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || info.IsDir() {
		return "", false
	}

	key, ok := makeFileKey(info)
	if ok {
		if _, exists := seen[key]; exists {
			return "", false
		}

		seen[key] = struct{}{}
	}

	return resolved, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// sourceFilesFrom retrieves the sources stored in ctx by WithSourceFiles.
// Returns nil if none were stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}
