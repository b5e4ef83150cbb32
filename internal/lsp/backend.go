package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// Outliner produces the week symbols of a file on disk.
type Outliner interface {
	OutlineFile(ctx context.Context, path string) ([]protocol.DocumentSymbol, error)
}

// Backend implements the language features of houls. It holds no per-document
// state; every request reads and parses its document afresh.
type Backend struct {
	client   Client
	outliner Outliner
	caps     Capabilities
	info     protocol.ServerInfo
	logger   *zap.Logger
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithServerInfo sets the name and version reported by initialize.
func WithServerInfo(name, version string) BackendOption {
	return func(b *Backend) {
		b.info = protocol.ServerInfo{Name: name, Version: version}
	}
}

// NewBackend returns a Backend that talks to the editor through client.
func NewBackend(client Client, outliner Outliner, logger *zap.Logger, opts ...BackendOption) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{
		client:   client,
		outliner: outliner,
		caps:     DefaultCapabilities(),
		info:     protocol.ServerInfo{Name: "houls", Version: "dev"},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Initialize declares the server capabilities.
func (b *Backend) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	client := ""
	if params != nil && params.ClientInfo != nil {
		client = params.ClientInfo.Name
	}
	b.logger.Info("initialize", zap.String("client", client))

	info := b.info
	return &protocol.InitializeResult{
		Capabilities: b.caps.Server(),
		ServerInfo:   &info,
	}, nil
}

// Initialized acknowledges the end of the handshake.
func (b *Backend) Initialized(ctx context.Context, _ *protocol.InitializedParams) error {
	b.logger.Info("server initialized")
	return b.client.LogMessage(ctx, protocol.MessageTypeInfo, "server initialized!")
}

// Shutdown has nothing to release.
func (b *Backend) Shutdown(_ context.Context) error {
	b.logger.Info("shutdown")
	return nil
}

// DidOpen logs the opened document. Content is not retained.
func (b *Backend) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	b.logger.Info("file opened", zap.String("uri", string(params.TextDocument.URI)))
	return b.client.LogMessage(ctx, protocol.MessageTypeInfo, "file opened!")
}

// DocumentSymbol returns one symbol per week block of a file: URI document.
// The list is empty, never nil, when the document has no weeks.
func (b *Backend) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error) {
	docURI := string(params.TextDocument.URI)
	u, err := url.Parse(docURI)
	if err != nil {
		return nil, invalidParams("Could not parse document URI %q: %v", docURI, err)
	}
	if u.Scheme != uri.FileScheme {
		return nil, invalidParams("Could not parse document for symbols. URI scheme is: %q, only scheme:file is accepted.", u.Scheme)
	}

	path := filepath.FromSlash(u.Path)
	symbols, err := b.outliner.OutlineFile(ctx, path)
	if err != nil {
		b.logger.Warn("document symbols failed", zap.String("uri", docURI), zap.Error(err))
		return nil, internalError(err)
	}

	b.logger.Debug("document symbols", zap.String("uri", docURI), zap.Int("count", len(symbols)))
	return symbols, nil
}

// ExecuteCommand runs custom.notification: it shows a warning, logs the
// arguments, sends the custom notification and logs the arguments again.
// Any other command is rejected before anything is sent.
func (b *Backend) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (any, error) {
	if !b.caps.HasCommand(params.Command) {
		return nil, invalidRequest("unknown command %q", params.Command)
	}

	args := describeParams(params)
	b.logger.Info("execute command", zap.String("command", params.Command), zap.String("params", args))

	steps := []func() error{
		func() error {
			return b.client.ShowMessage(ctx, protocol.MessageTypeWarning, "Wababalia")
		},
		func() error {
			return b.client.LogMessage(ctx, protocol.MessageTypeWarning, "Command executed with params: "+args)
		},
		func() error {
			return b.client.Notify(ctx, MethodCustomNotification, NewCustomNotification("Hello", "Message"))
		},
		func() error {
			return b.client.LogMessage(ctx, protocol.MessageTypeInfo, "Command executed with params: "+args)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, internalError(fmt.Errorf("notify client: %w", err))
		}
	}
	return nil, nil
}

func describeParams(params *protocol.ExecuteCommandParams) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%+v", *params)
	}
	return string(data)
}
