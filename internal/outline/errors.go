package outline

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// PatternError reports a structural query that does not compile against the
// grammar. It indicates a build defect, not bad input.
type PatternError struct {
	Pattern string
	Row     uint
	Column  uint
	Message string
}

func newPatternError(pattern string, qerr *tree_sitter.QueryError) *PatternError {
	return &PatternError{
		Pattern: pattern,
		Row:     qerr.Row,
		Column:  qerr.Column,
		Message: qerr.Message,
	}
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("compile query %q: %d:%d: %s", e.Pattern, e.Row, e.Column, e.Message)
}

// DecodeError reports a byte span that does not cover valid UTF-8 text or
// does not fall on character boundaries of the source.
type DecodeError struct {
	Start uint
	End   uint
	Len   int
}

func (e *DecodeError) Error() string {
	if e.End > uint(e.Len) || e.Start > e.End {
		return fmt.Sprintf("byte span [%d, %d) out of bounds for %d-byte source", e.Start, e.End, e.Len)
	}
	return fmt.Sprintf("byte span [%d, %d) is not valid UTF-8 text", e.Start, e.End)
}

// ReadError reports a document that could not be read from disk.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports that the grammar produced no tree for a document.
type ParseError struct {
	Path string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tree-sitter returned nil tree for %s", e.Path)
}
