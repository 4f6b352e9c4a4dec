package textutil

import (
	"regexp"
	"strings"
)

// CollapseText normalizes catalogue cell text the same way the site's own
// frontend renders it: ideographic spaces (U+3000) become ASCII spaces while
// ASCII spaces, tabs and newlines are dropped entirely. Japanese cell values
// like "月曜3限" carry no meaningful ASCII whitespace.
func CollapseText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '　':
			b.WriteRune(' ')
		case ' ', '\n', '\r', '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TrimDescription cleans free-form syllabus text, which unlike cell text may
// legitimately contain inner whitespace.
func TrimDescription(s string) string {
	return strings.TrimSpace(s)
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}
