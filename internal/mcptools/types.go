package mcptools

import "go.lsp.dev/protocol"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// Symbol is one week block of a houlang document.
type Symbol struct {
	Name           string         `json:"name" jsonschema:"the week's date text"`
	Kind           string         `json:"kind" jsonschema:"symbol kind, always variable"`
	Range          protocol.Range `json:"range" jsonschema:"the whole week block, zero-based lines and columns"`
	SelectionRange protocol.Range `json:"selectionRange" jsonschema:"equal to range"`
}

// DocumentSymbolsInput is the input for the document_symbols MCP tool.
type DocumentSymbolsInput struct {
	Path string `json:"path" jsonschema:"path of the houlang file to outline"`
}

// DocumentSymbolsOutput is the result of the document_symbols MCP tool.
type DocumentSymbolsOutput struct {
	Path    string   `json:"path"`
	Symbols []Symbol `json:"symbols"`
	Total   int      `json:"total"`
}

// OutlineFilesInput is the input for the outline_files MCP tool.
type OutlineFilesInput struct {
	Root        string   `json:"root,omitempty" jsonschema:"directory the patterns are relative to (default: server working directory)"`
	Patterns    []string `json:"patterns" jsonschema:"file paths or doublestar globs, e.g. weeks/**/*.hou"`
	Concurrency int      `json:"concurrency,omitempty" jsonschema:"maximum files outlined at once (default: number of CPUs)"`
}

// FileOutline is the outline of one file matched by outline_files.
type FileOutline struct {
	Path    string   `json:"path"`
	Symbols []Symbol `json:"symbols"`
	Error   string   `json:"error,omitempty"`
}

// OutlineFilesOutput is the result of the outline_files MCP tool.
type OutlineFilesOutput struct {
	Files  []FileOutline `json:"files"`
	Total  int           `json:"total"`
	Failed int           `json:"failed"`
}
