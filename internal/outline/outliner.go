// Package outline extracts the document outline of houlang sources: it parses
// a document with tree-sitter, runs the week pattern over the tree and
// assembles one protocol symbol per week block.
package outline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.lsp.dev/protocol"

	"github.com/dusk-indust/houls/internal/grammar/houlang"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Outliner runs the symbol pipeline. The week query is compiled once in New
// and shared by every call. A new tree-sitter parser is created per call, so
// an Outliner is safe for concurrent use.
type Outliner struct {
	lang   *tree_sitter.Language
	query  *Query
	mapper Mapper
}

// Option configures an Outliner.
type Option func(*Outliner)

// WithEncoding sets the column unit of produced positions.
func WithEncoding(enc Encoding) Option {
	return func(o *Outliner) {
		o.mapper = NewMapper(enc)
	}
}

// New builds an Outliner for the houlang grammar. A *PatternError means the
// week pattern does not fit the grammar and should be treated as fatal.
func New(opts ...Option) (*Outliner, error) {
	lang := tree_sitter.NewLanguage(houlang.Language())
	q, err := CompileQuery(lang, WeekPattern)
	if err != nil {
		return nil, err
	}

	o := &Outliner{
		lang:   lang,
		query:  q,
		mapper: NewMapper(EncodingUTF8),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Encoding returns the column unit of produced positions.
func (o *Outliner) Encoding() Encoding { return o.mapper.Encoding() }

// Outline parses source and returns its week symbols in source order.
func (o *Outliner) Outline(_ context.Context, path string, source []byte) ([]protocol.DocumentSymbol, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(o.lang); err != nil {
		return nil, fmt.Errorf("set language houlang: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &ParseError{Path: path}
	}
	defer tree.Close()

	matches := o.query.Matches(tree.RootNode(), source)
	symbols, err := Assemble(matches, source, o.mapper)
	if err != nil {
		return nil, fmt.Errorf("outline %s: %w", path, err)
	}
	return symbols, nil
}

// OutlineFile reads path in full and outlines it. Unreadable or non UTF-8
// files fail with *ReadError.
func (o *Outliner) OutlineFile(ctx context.Context, path string) ([]protocol.DocumentSymbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &ReadError{Path: path, Err: errInvalidUTF8}
	}
	return o.Outline(ctx, path, data)
}

// Close releases the compiled query.
func (o *Outliner) Close() error {
	o.query.Close()
	return nil
}
