package bkm

import (
	"strconv"
	"strings"
)

// parseLine parses one node line:
//
//	indentation "quoted title" metadata*
//
// It returns the node and its depth (two spaces per level).
func parseLine(line string) (*Node, int, error) {
	line, indent := skipSpaces(line)
	if indent%2 != 0 {
		return nil, 0, ErrMalformedIndentation
	}
	depth := indent / 2

	title, rest, err := parseQuoted(line)
	if err != nil {
		return nil, 0, err
	}

	n := &Node{Title: title}
	for rest != "" {
		var tok string
		tok, rest = nextToken(rest)
		if tok == "" {
			continue
		}
		applyToken(n, tok)
	}
	return n, depth, nil
}

// applyToken sets the node attribute described by tok. Unknown tokens are
// ignored so that newer files still load.
func applyToken(n *Node, tok string) {
	switch {
	case tok == "font:bold":
		n.Style |= StyleBold
		return
	case tok == "font:italic":
		n.Style |= StyleItalic
		return
	}

	if c, ok := ParseColor(tok); ok {
		n.Color = &c
		return
	}

	switch {
	case strings.EqualFold(tok, "open-default"):
		n.IsOpenDefault = true
	case strings.EqualFold(tok, "open-toggled"):
		n.IsOpenToggled = true
	case tok == "unchecked":
		n.IsUnchecked = true
	default:
		key, val, _ := splitKV(tok)
		if key == "page" {
			n.Dest = parseDestination(val)
			if p, err := strconv.Atoi(val); err == nil && p > 0 {
				n.PageNo = p
			}
		}
	}
}

// parseDestination returns the destination for a page: token.
// TODO: decode destkind/destname/destvalue/destpage/destrect instead of
// returning a fixed first-page destination.
func parseDestination(string) *Destination {
	return &Destination{Kind: DestKindScrollTo, PageNo: 1}
}
