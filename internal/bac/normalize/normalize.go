// Package normalize flattens the loosely shaped trees decoded from the
// upstream catalogs into stable records.
//
// Both upstreams encode "one" and "many" differently: a lone child decodes to
// a mapping, repeated children to a sequence, a missing child to nothing.
// Every ingestion point goes through AsList so that consumers always see a
// sequence. Missing or oddly shaped fields never produce errors; they default
// to nil or empty.
package normalize

import (
	"strconv"
	"strings"
)

// AsList coerces a node into a sequence of mappings: nil gives an empty
// sequence, a single mapping gives a singleton, a sequence is returned with
// its mapping elements in order.
func AsList(v any) []map[string]any {
	switch t := v.(type) {
	case nil:
		return []map[string]any{}
	case []map[string]any:
		return t
	case map[string]any:
		return []map[string]any{t}
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return []map[string]any{}
	}
}

// Map returns v as a mapping, or an empty one.
func Map(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Child walks nested mappings by key and returns nil as soon as a step is missing.
func Child(v any, keys ...string) any {
	cur := v
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[k]
		if !ok {
			return nil
		}
	}
	return cur
}

// Attr reads an attribute that arrives with the XML "-" prefix or as a plain
// key when the upstream answered in JSON.
func Attr(m map[string]any, name string) any {
	if v, ok := m["-"+name]; ok {
		return v
	}
	return m[name]
}

// Scalar renders a leaf value as a string. Element nodes that carry
// attributes contribute their "#text" content.
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case map[string]any:
		if text, ok := t["#text"]; ok {
			return Scalar(text)
		}
	}
	return "", false
}

// Text is Scalar as a nullable string.
func Text(v any) *string {
	s, ok := Scalar(v)
	if !ok {
		return nil
	}
	return &s
}

// Strings returns the string members of a scalar-or-sequence node.
func Strings(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := Scalar(item); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, t...)
	default:
		if s, ok := Scalar(t); ok {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first string of a scalar-or-sequence node.
func First(v any) *string {
	s := Strings(v)
	if len(s) == 0 {
		return nil
	}
	return &s[0]
}

// IsPreferred reports whether an entry carries preferred == true, either as
// a JSON boolean or an XML attribute string.
func IsPreferred(entry map[string]any) bool {
	switch p := Attr(entry, "preferred").(type) {
	case bool:
		return p
	case string:
		return strings.EqualFold(strings.TrimSpace(p), "true")
	}
	return false
}

// Preferred picks the payload of the first entry flagged preferred. Without
// a flagged entry it falls back to the first entry in upstream order, and an
// empty sequence yields nil.
func Preferred(entries []map[string]any, payload func(map[string]any) *string) *string {
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if IsPreferred(e) {
			return payload(e)
		}
	}
	return payload(entries[0])
}

// Field builds a payload extractor reading one scalar key.
func Field(key string) func(map[string]any) *string {
	return func(m map[string]any) *string {
		return nonEmpty(Text(m[key]))
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func ptr(s string) *string { return &s }
