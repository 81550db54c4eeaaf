package parsing

import (
	"encoding/json"
	"strconv"
)

// Record is a decoded JSON object. Accessors never panic and return zero
// values for missing keys or mismatched types.
type Record map[string]any

// String returns the value at key as text. Non-string scalars are formatted.
func (r Record) String(key string) string {
	return Stringify(r[key])
}

// StringOr returns the value at key as text, or def when the key is absent or
// renders as the empty string.
func (r Record) StringOr(key, def string) string {
	if s := r.String(key); s != "" {
		return s
	}
	return def
}

// Strings returns the list at key with each element stringified. A non-list
// value yields nil.
func (r Record) Strings(key string) []string {
	items := r.Slice(key)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, Stringify(item))
	}
	return out
}

// Map returns the object at key, or nil.
func (r Record) Map(key string) Record {
	switch v := r[key].(type) {
	case map[string]any:
		return Record(v)
	case Record:
		return v
	}
	return nil
}

// Slice returns the list at key, or nil.
func (r Record) Slice(key string) []any {
	if v, ok := r[key].([]any); ok {
		return v
	}
	return nil
}

// Records returns the objects in the list at key, skipping other elements.
func (r Record) Records(key string) []Record {
	items := r.Slice(key)
	if items == nil {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Pop removes key and returns its value.
func (r Record) Pop(key string) any {
	v := r[key]
	delete(r, key)
	return v
}

// JSON returns the record as indented JSON.
func (r Record) JSON() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Stringify renders a decoded JSON value as text. nil becomes "", numbers use
// their shortest form, and composite values are re-encoded as JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
