package bkm

import "strings"

// parseKV returns the value of a "key: value" header line. ok is false when
// the line does not start with key followed by ':' or the value is empty.
func parseKV(line, key string) (string, bool) {
	rest, found := strings.CutPrefix(line, key)
	if !found {
		return "", false
	}
	rest, found = strings.CutPrefix(rest, ":")
	if !found {
		return "", false
	}
	val := strings.TrimSpace(rest)
	return val, val != ""
}

// nextToken splits s at the first space. The space itself is dropped, so
// runs of spaces produce empty tokens.
func nextToken(s string) (tok, rest string) {
	tok, rest, _ = strings.Cut(s, " ")
	return tok, rest
}

// splitKV splits a metadata token such as "font:bold" at its first colon.
// A token without a colon is returned as a bare key.
func splitKV(tok string) (key, val string, hasVal bool) {
	return strings.Cut(tok, ":")
}

// skipSpaces drops leading spaces and reports how many were removed.
func skipSpaces(s string) (string, int) {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return s[n:], n
}
