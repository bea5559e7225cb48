// Package jsonutil provides optional-chaining lookups over documents
// decoded into map[string]any. Every accessor treats an absent or
// wrongly-typed link as empty and keeps descending on an empty value, so
// missing sub-structure can never panic a caller.
package jsonutil

import "strconv"

// Obj walks path through nested objects and returns the object at the
// end, or an empty map if any link is absent or not an object.
func Obj(m map[string]any, path ...string) map[string]any {
	cur := m
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return map[string]any{}
		}
		cur = next
	}
	if cur == nil {
		return map[string]any{}
	}
	return cur
}

// Arr walks path and returns the array at the end, or nil.
func Arr(m map[string]any, path ...string) []any {
	if len(path) == 0 {
		return nil
	}
	parent := Obj(m, path[:len(path)-1]...)
	arr, _ := parent[path[len(path)-1]].([]any)
	return arr
}

// Objects walks path and returns the array at the end filtered down to
// its object elements.
func Objects(m map[string]any, path ...string) []map[string]any {
	arr := Arr(m, path...)
	out := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Str walks path and returns the string at the end, or nil when the
// value is absent or not a string.
func Str(m map[string]any, path ...string) *string {
	if len(path) == 0 {
		return nil
	}
	parent := Obj(m, path[:len(path)-1]...)
	s, ok := parent[path[len(path)-1]].(string)
	if !ok {
		return nil
	}
	return &s
}

// Num walks path and returns the number at the end, or nil. JSON numbers
// decode as float64; nothing else is coerced.
func Num(m map[string]any, path ...string) *float64 {
	if len(path) == 0 {
		return nil
	}
	parent := Obj(m, path[:len(path)-1]...)
	f, ok := parent[path[len(path)-1]].(float64)
	if !ok {
		return nil
	}
	return &f
}

// Bool walks path and returns the boolean at the end, or nil.
func Bool(m map[string]any, path ...string) *bool {
	if len(path) == 0 {
		return nil
	}
	parent := Obj(m, path[:len(path)-1]...)
	b, ok := parent[path[len(path)-1]].(bool)
	if !ok {
		return nil
	}
	return &b
}

// Strings filters an array down to its string elements.
func Strings(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Collect gathers the named field across a list of objects, rendering
// scalars to their string form and skipping absent values. Order is the
// object order, so positional joins line up with document order.
func Collect(items []map[string]any, key string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item[key].(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		}
	}
	return out
}

// CollectNested gathers objPath's nested field across a list of objects.
func CollectNested(items []map[string]any, objKey, field string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		nested := Obj(item, objKey)
		if s, ok := nested[field].(string); ok {
			out = append(out, s)
		}
	}
	return out
}
