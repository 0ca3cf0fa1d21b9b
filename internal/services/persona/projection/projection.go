// Package projection trims an encoded record down to a set of dotted field
// paths.
package projection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// ToMap converts v into its generic JSON form keyed by the json tags of its
// fields. Numbers keep their exact textual value.
func ToMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// Project returns the nested subset of v selected by paths. Each path is a
// dot-separated list of keys; camelCase segments are accepted and matched
// against snake_case keys. Paths that do not resolve are dropped. An empty
// path list selects the whole record.
func Project(v any, paths []string) (map[string]any, error) {
	src, err := ToMap(v)
	if err != nil {
		return nil, err
	}
	return Select(src, paths), nil
}

// Select applies paths to an already generic record.
func Select(src map[string]any, paths []string) map[string]any {
	if len(paths) == 0 {
		return src
	}
	out := make(map[string]any)
	for _, path := range paths {
		keys := Split(path)
		if len(keys) == 0 {
			continue
		}
		leaf, ok := lookup(src, keys)
		if !ok {
			continue
		}
		assign(out, keys, leaf)
	}
	return out
}

// Split breaks a dotted path into normalised keys, ignoring empty segments.
func Split(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	keys := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		keys = append(keys, SnakeCase(p))
	}
	return keys
}

// SnakeCase lowers a camelCase key into snake_case. Keys that are already
// snake_case pass through.
func SnakeCase(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lookup(src map[string]any, keys []string) (any, bool) {
	var cur any = src
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func assign(dst map[string]any, keys []string, leaf any) {
	cur := dst
	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[k] = next
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = leaf
}
