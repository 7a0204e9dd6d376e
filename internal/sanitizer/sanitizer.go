// Package sanitizer turns provider HTML into plain article text.
package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// entities are tried in this order at every '&'.
var entities = []struct {
	name  string
	value string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// Sanitize decodes the common entities, drops markup, collapses whitespace
// and trims the result.
//
// Decoded characters are literal text: "&amp;lt;" becomes "&lt;" and
// "&lt;b&gt;" becomes "<b>" instead of being stripped as a tag. Markup is
// any '<' ... '>' run in the source, matched naively without regard to
// nesting or quoting; a '<' with no closing '>' is kept.
func Sanitize(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	pendingSpace := false
	write := func(s string) {
		for len(s) > 0 {
			r, size := utf8.DecodeRuneInString(s)
			chunk := s[:size]
			s = s[size:]
			if isSpace(r) {
				pendingSpace = b.Len() > 0
				continue
			}
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			// Invalid UTF-8 bytes are copied as they are.
			b.WriteString(chunk)
		}
	}

	for i := 0; i < len(html); {
		switch html[i] {
		case '<':
			if end := strings.IndexByte(html[i+1:], '>'); end >= 0 {
				i += end + 2
				continue
			}
		case '&':
			if value, n := decodeEntity(html[i:]); n > 0 {
				write(value)
				i += n
				continue
			}
		}

		j := i + 1
		for j < len(html) && html[j] != '<' && html[j] != '&' {
			j++
		}
		write(html[i:j])
		i = j
	}

	return b.String()
}

func decodeEntity(s string) (string, int) {
	for _, e := range entities {
		if strings.HasPrefix(s, e.name) {
			return e.value, len(e.name)
		}
	}
	return "", 0
}

// isSpace is unicode.IsSpace plus the byte order mark, minus NEL (U+0085).
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
