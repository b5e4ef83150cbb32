package mcptools

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.lsp.dev/protocol"

	"github.com/dusk-indust/houls/internal/batch"
)

// OutlineService holds the outline pipeline used by MCP tool handlers.
type OutlineService struct {
	outliner batch.Outliner
	root     string
}

// NewOutlineService creates an OutlineService backed by outliner.
func NewOutlineService(outliner batch.Outliner) *OutlineService {
	return &OutlineService{outliner: outliner}
}

// SetRoot sets the directory relative paths are resolved against.
func (s *OutlineService) SetRoot(root string) {
	s.root = root
}

func (s *OutlineService) resolve(path string) string {
	if filepath.IsAbs(path) || s.root == "" {
		return path
	}
	return filepath.Join(s.root, path)
}

// DocumentSymbols outlines one houlang file and returns its weeks in
// document order.
func (s *OutlineService) DocumentSymbols(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentSymbolsInput,
) (*mcp.CallToolResult, DocumentSymbolsOutput, error) {
	if input.Path == "" {
		return nil, DocumentSymbolsOutput{}, fmt.Errorf("path is required")
	}

	path := s.resolve(input.Path)
	symbols, err := s.outliner.OutlineFile(ctx, path)
	if err != nil {
		return nil, DocumentSymbolsOutput{}, err
	}

	out := toSymbols(symbols)
	return nil, DocumentSymbolsOutput{
		Path:    path,
		Symbols: out,
		Total:   len(out),
	}, nil
}

// OutlineFiles expands the patterns and outlines every matching file. A file
// that fails is reported in its own entry.
func (s *OutlineService) OutlineFiles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineFilesInput,
) (*mcp.CallToolResult, OutlineFilesOutput, error) {
	if len(input.Patterns) == 0 {
		return nil, OutlineFilesOutput{}, fmt.Errorf("patterns is required")
	}

	root := input.Root
	if root == "" {
		root = s.root
	}
	paths, err := batch.Expand(root, input.Patterns)
	if err != nil {
		return nil, OutlineFilesOutput{}, err
	}

	results := batch.OutlineAll(ctx, s.outliner, paths, input.Concurrency)
	files := make([]FileOutline, 0, len(results))
	for _, r := range results {
		f := FileOutline{Path: r.Path, Symbols: toSymbols(r.Symbols)}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		files = append(files, f)
	}

	return nil, OutlineFilesOutput{
		Files:  files,
		Total:  len(files),
		Failed: batch.Failed(results),
	}, nil
}

func toSymbols(in []protocol.DocumentSymbol) []Symbol {
	out := make([]Symbol, 0, len(in))
	for _, sym := range in {
		out = append(out, Symbol{
			Name:           sym.Name,
			Kind:           sym.Kind.String(),
			Range:          sym.Range,
			SelectionRange: sym.SelectionRange,
		})
	}
	return out
}
