package lsp

import (
	"slices"

	"go.lsp.dev/protocol"
)

// Capabilities lists the features the server declares during initialize.
// Values are built once and never mutated; accessors return copies.
type Capabilities struct {
	documentSymbols bool
	commands        []string
}

// DefaultCapabilities declares document symbols and the custom notification
// command.
func DefaultCapabilities() Capabilities {
	return Capabilities{
		documentSymbols: true,
		commands:        []string{CommandCustomNotification},
	}
}

// DocumentSymbols reports whether textDocument/documentSymbol is served.
func (c Capabilities) DocumentSymbols() bool { return c.documentSymbols }

// Commands returns the executable command names.
func (c Capabilities) Commands() []string { return slices.Clone(c.commands) }

// HasCommand reports whether name is an executable command. Matching is
// exact.
func (c Capabilities) HasCommand(name string) bool {
	return slices.Contains(c.commands, name)
}

// Server renders the capabilities in protocol form.
func (c Capabilities) Server() protocol.ServerCapabilities {
	caps := protocol.ServerCapabilities{}
	if c.documentSymbols {
		caps.DocumentSymbolProvider = true
	}
	if len(c.commands) > 0 {
		caps.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
			Commands: c.Commands(),
		}
	}
	return caps
}
