package lang

import (
	"maps"
	"slices"
	"strings"
)

// Lookup resolves a field name to its current value. Implementations must
// not fail for unknown fields; they return [Absent] instead.
type Lookup interface {
	Lookup(name string) Value
}

// LookupFunc adapts a function to the [Lookup] interface.
type LookupFunc func(name string) Value

// Lookup calls f(name).
func (f LookupFunc) Lookup(name string) Value {
	if f == nil {
		return Absent()
	}

	return f(name)
}

// Map is a [Lookup] over loosely typed record data, such as decoded JSON or
// YAML. Values convert with [ValueOf].
//
// A name missing from the map is retried as a dotted path through nested
// maps, so "site.name" resolves m["site"]["name"].
type Map map[string]any

// Lookup implements [Lookup].
func (m Map) Lookup(name string) Value {
	if v, ok := m[name]; ok {
		return ValueOf(v)
	}

	if !strings.Contains(name, ".") {
		return Absent()
	}

	var cur any = map[string]any(m)

	for part := range strings.SplitSeq(name, ".") {
		next, ok := child(cur, part)
		if !ok {
			return Absent()
		}

		cur = next
	}

	return ValueOf(cur)
}

func child(v any, key string) (any, bool) {
	switch v := v.(type) {
	case map[string]any:
		c, ok := v[key]

		return c, ok

	case Map:
		c, ok := v[key]

		return c, ok

	case map[any]any:
		c, ok := v[key]

		return c, ok

	default:
		return nil, false
	}
}

// Keys returns the names m can resolve, including dotted paths to nested
// scalar values.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))

	var visit func(prefix string, v any)

	visit = func(prefix string, v any) {
		switch v := v.(type) {
		case map[string]any:
			for _, k := range sortedKeys(v) {
				visit(prefix+"."+k, v[k])
			}

		case Map:
			for _, k := range sortedKeys(v) {
				visit(prefix+"."+k, v[k])
			}

		default:
			keys = append(keys, prefix)
		}
	}

	for _, k := range sortedKeys(m) {
		visit(k, m[k])
	}

	return keys
}

func sortedKeys[T any](m map[string]T) []string {
	return slices.Sorted(maps.Keys(m))
}
