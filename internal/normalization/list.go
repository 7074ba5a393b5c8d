package normalization

import (
	"fmt"
	"regexp"
	"strings"
)

var listDelimRe = regexp.MustCompile(`[,、\n]+`)

// SplitList normalizes either a native list or a delimited string (comma,
// full-width comma, newline) into trimmed non-empty strings. Any other value
// is stringified first. Never fails.
func SplitList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(stringify(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		s := strings.TrimSpace(stringify(v))
		if s == "" {
			return nil
		}
		items := listDelimRe.Split(s, -1)
		out := make([]string, 0, len(items))
		for _, item := range items {
			if t := strings.TrimSpace(item); t != "" {
				out = append(out, t)
			}
		}
		return out
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
