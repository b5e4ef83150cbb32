package outline

import (
	"fmt"

	"go.lsp.dev/protocol"
)

// Assemble turns week matches into document symbols, preserving match order.
// Each symbol is named after the date text and spans the whole week block.
// The result is never nil; a document without weeks yields an empty slice.
// A span that cannot be decoded aborts assembly.
func Assemble(matches []Match, source []byte, mapper Mapper) ([]protocol.DocumentSymbol, error) {
	symbols := make([]protocol.DocumentSymbol, 0, len(matches))
	for i := range matches {
		date := matches[i].Date()
		name, err := Text(source, date.StartByte(), date.EndByte())
		if err != nil {
			return nil, fmt.Errorf("symbol %d: %w", i, err)
		}

		rng := mapper.Range(source, matches[i].Week())
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           name,
			Kind:           protocol.SymbolKindVariable,
			Range:          rng,
			SelectionRange: rng,
		})
	}
	return symbols, nil
}
