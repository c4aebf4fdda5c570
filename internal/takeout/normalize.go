package takeout

import (
	"regexp"
	"strings"
)

// Takeout stores the comment body as JSON inside a CSV cell, and the export
// quotes it twice, so a cell looks like ""text"":""hello"". The pattern below
// runs against the cell after the doubled quotes are collapsed and captures
// each "text" run, allowing escaped characters inside the value.
var textRunPattern = regexp.MustCompile(`"text":"((?:[^"\\]|\\.)*)"`)

// CleanText recovers the plain comment text from a raw Takeout cell. It is
// best-effort: if the cell carries no recognizable embedded JSON it is
// returned unchanged, and an empty cell maps to an empty string. It never
// fails.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	normalized := strings.ReplaceAll(raw, `""`, `"`)

	matches := textRunPattern.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return raw
	}

	// A comment with formatting runs yields several "text" fragments; join
	// them with a single space, as the original rendering did.
	fragments := make([]string, 0, len(matches))
	for _, m := range matches {
		fragments = append(fragments, unescape(m[1]))
	}
	return strings.Join(fragments, " ")
}

// unescape resolves the JSON escape sequences that show up in Takeout
// comment text. Unknown sequences are left as-is rather than rejected.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
