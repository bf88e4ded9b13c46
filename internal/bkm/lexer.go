package bkm

import "strings"

// parseQuoted decodes the quoted string at the start of s and returns it
// together with the text following the closing quote.
//
// Only \\ and \" are escapes. Any other backslash is kept as is and the
// character after it is read as an ordinary character.
func parseQuoted(s string) (string, string, error) {
	// Shortest valid input is "".
	if len(s) < 2 || s[0] != '"' {
		return "", s, ErrMalformedTitle
	}

	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			return b.String(), s[i+1:], nil
		}
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		c2 := s[i]
		if c2 != '\\' && c2 != '"' {
			// c2 is not consumed here.
			b.WriteByte(c)
			continue
		}
		b.WriteByte(c2)
		i++
	}
	return "", s, ErrMalformedTitle
}

// appendQuoted writes s to b wrapped in double quotes, escaping \ and ".
func appendQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
}
