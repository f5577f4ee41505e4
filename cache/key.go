// api/cache/key.go

// Package cache implements the cache-aside layer: deterministic keys,
// a best-effort store over Redis or an in-process LRU, and pattern based
// invalidation.
//
// Keys are not escaped: a parameter value containing "|" or ":" can make two
// different parameter sets render to the same key.
package cache

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// BuildKey renders prefix and params as "prefix:a:1|b:2" with parameter
// names sorted. Parameters whose value is nil or a nil pointer are omitted.
func BuildKey(prefix string, params map[string]any) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if _, ok := renderValue(value); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		rendered, _ := renderValue(params[name])
		parts = append(parts, name+":"+rendered)
	}
	return prefix + ":" + strings.Join(parts, "|")
}

// EntityKey is the detail key of a single record.
func EntityKey(entity, id string) string {
	return entity + ":" + id
}

// ListPattern matches every list key of entity.
func ListPattern(entity string) string {
	return entity + "_list:*"
}

// ListPrefix is the key prefix for list queries of entity.
func ListPrefix(entity string) string {
	return entity + "_list"
}

func renderValue(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	switch t := v.Interface().(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return t.String(), true
	}
	return fmt.Sprintf("%v", v.Interface()), true
}
