// Package normalize turns loosely encoded list fields from stored weekly
// records into clean string sequences.
//
// Upstream storage has written list fields (meals, cocktails, desserts,
// genres) as real arrays, as bare strings and as JSON arrays serialized into
// a string. Everything downstream of this package only ever sees []string.
package normalize

import (
	"strings"

	"github.com/goccy/go-json"
)

// Placeholder is returned when a bracketed value could neither be parsed nor
// recovered into a meaningful item.
const Placeholder = "None"

// recoverCutset is trimmed from the inside of an unparseable bracketed value.
const recoverCutset = " \t\r\n\"',"

// ListField converts raw into an ordered sequence of trimmed, non-empty
// strings. It never fails: unknown shapes degrade to an empty sequence and the
// result is never nil.
//
// Accepted inputs:
//   - []string or []any: string elements trimmed, empties and non-strings dropped
//   - a string shaped like a JSON array: parsed, falling back to Recover
//   - any other non-empty string: wrapped as a single element
//   - nil, empty string, anything else: empty sequence
func ListField(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		return clean(v)
	case []any:
		return cleanAny(v)
	case string:
		return fromString(v)
	case *string:
		if v == nil {
			return []string{}
		}
		return fromString(*v)
	case json.RawMessage:
		return JSON(v)
	default:
		return []string{}
	}
}

// JSON decodes a raw JSON value and normalizes the result. Invalid JSON
// yields an empty sequence.
func JSON(data []byte) []string {
	if len(data) == 0 {
		return []string{}
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return []string{}
	}
	return ListField(v)
}

func fromString(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	if !looksLikeArray(s) {
		return []string{s}
	}
	var parsed []any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return Recover(s)
	}
	return cleanAny(parsed)
}

// Recover is the best-effort reading of a bracketed value that failed to
// parse as JSON: the outer brackets and any surrounding quotes are stripped
// and what remains becomes a single item. When nothing remains the result is
// []string{Placeholder}.
func Recover(s string) []string {
	s = strings.TrimSpace(s)
	if looksLikeArray(s) {
		s = s[1 : len(s)-1]
	}
	item := strings.TrimSpace(strings.Trim(s, recoverCutset))
	if item == "" {
		return []string{Placeholder}
	}
	return []string{item}
}

func looksLikeArray(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cleanAny(in []any) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		s, ok := e.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
