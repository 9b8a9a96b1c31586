package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// Cache shares parsed templates between callers. Each distinct source and
// option set is parsed once, even when requested from many goroutines at
// the same time; the resulting immutable [Template] (or [SyntaxError]) is
// returned to every caller. The zero Cache is ready to use.
type Cache struct {
	entries sync.Map // key → *cacheEntry
}

// cacheEntry tracks the parse of a single source.
type cacheEntry struct {
	once sync.Once
	tmpl *Template
	err  error
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// hashOptions encodes options using gob and hashes with xxh3.
// Returns a hash that uniquely identifies the options configuration.
func hashOptions(opts optionsKey) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)

	_ = enc.Encode(opts.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// cacheKey combines the source hash with the options hash.
func cacheKey(source string, opts optionsKey) (key string, sourceHash, optsHash uint64) {
	sourceHash = xxh3.HashString(source)
	optsHash = hashOptions(opts)

	return strconv.FormatUint(sourceHash^optsHash, 36), sourceHash, optsHash
}

// Parse returns the template for source, parsing it on first use.
func (c *Cache) Parse(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Template, error) {
	// Build a temporary template to get effective options
	var temp Template

	applyDefaults(&temp)
	applyOptions(&temp, opts...)

	key, sourceHash, optsHash := cacheKey(source, temp.opts)

	value, cacheHit := c.entries.LoadOrStore(key, new(cacheEntry))

	entry, ok := value.(*cacheEntry)
	if !ok {
		return nil, NewError("invalid cache entry").
			With(slog.String("key", key))
	}

	temp.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.String("opts_hash", strconv.FormatUint(optsHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.tmpl, entry.err = ParseString(ctx, source, opts...)
	})

	return entry.tmpl, entry.err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Clear removes all cached templates.
func (c *Cache) Clear() {
	c.entries.Clear()
}
