package recent

import (
	"strings"
	"unicode/utf8"
)

const (
	delimiter = ','
	escape    = '\\'
)

// encode joins codes with the delimiter, newest first. A delimiter or
// escape byte inside a code is prefixed with the escape byte. Both are
// ASCII, so they never occur inside a multi-byte UTF-8 sequence.
func encode(codes []string) string {
	var b strings.Builder
	for i, code := range codes {
		if i > 0 {
			b.WriteByte(delimiter)
		}
		for j := 0; j < len(code); j++ {
			c := code[j]
			if c == delimiter || c == escape {
				b.WriteByte(escape)
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

// decode splits s on unescaped delimiters. Empty tokens, tokens with an
// unknown or dangling escape, and tokens that are not valid UTF-8 are
// skipped and counted in skipped.
func decode(s string) (codes []string, skipped int) {
	var cur strings.Builder
	bad := false

	if s == "" {
		return nil, 0
	}

	flush := func() {
		if bad || cur.Len() == 0 || !utf8.ValidString(cur.String()) {
			skipped++
		} else {
			codes = append(codes, cur.String())
		}
		cur.Reset()
		bad = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case escape:
			if i+1 < len(s) && (s[i+1] == delimiter || s[i+1] == escape) {
				i++
				cur.WriteByte(s[i])
			} else {
				bad = true
			}
		case delimiter:
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return codes, skipped
}
