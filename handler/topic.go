package handler

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// blogTopic returns the topic and whether it is present and truthy.
// Non-string values are rendered as True, 1.0 or ['a'] so keys match the
// objects already in the bucket.
func blogTopic(body map[string]any) (string, bool) {
	v, ok := body["blogtopic"]
	if !ok || !truthy(v) {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return reprValue(v), true
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func reprValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return reprString(t)
	case json.Number:
		return reprNumber(t)
	case []any:
		items := make([]string, len(t))
		for i, item := range t {
			items[i] = reprValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		// Go maps do not keep document order; keys are sorted instead.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = reprString(k) + ": " + reprValue(t[k])
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return ""
}

func reprNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return s
	}
	f, err := n.Float64()
	if err != nil {
		return s
	}
	if abs := math.Abs(f); abs >= 1e16 || (abs != 0 && abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

func reprString(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	r := strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`, quote, `\`+quote)
	return quote + r.Replace(s) + quote
}
