package bkm

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIndentation is returned for a node line indented by an odd
	// number of spaces.
	ErrMalformedIndentation = errors.New("malformed indentation")
	// ErrMissingHeader is returned when the file: or title: header is absent
	// or empty.
	ErrMissingHeader = errors.New("missing header")
	// ErrMalformedTitle is returned when a node line has no valid quoted title.
	ErrMalformedTitle = errors.New("malformed title")
	// ErrEmptyDocument is returned when the headers are followed by no nodes.
	ErrEmptyDocument = errors.New("empty document")
)

// ParseError records the line a parse failed on.
type ParseError struct {
	Line int // 1-based.
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
