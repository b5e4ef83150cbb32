package lsp

import (
	"context"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
)

// Client is the channel from the server back to the editor. Implementations
// must tolerate concurrent sends.
type Client interface {
	ShowMessage(ctx context.Context, typ protocol.MessageType, message string) error
	LogMessage(ctx context.Context, typ protocol.MessageType, message string) error
	Notify(ctx context.Context, method string, params any) error
}

// connClient sends client notifications over a JSON-RPC connection. Conn
// serializes writes, so concurrent use is safe.
type connClient struct {
	conn *jsonrpc2.Conn
}

// NewConnClient returns a Client backed by conn.
func NewConnClient(conn *jsonrpc2.Conn) Client {
	return &connClient{conn: conn}
}

func (c *connClient) ShowMessage(ctx context.Context, typ protocol.MessageType, message string) error {
	return c.conn.Notify(ctx, protocol.MethodWindowShowMessage, &protocol.ShowMessageParams{
		Type:    typ,
		Message: message,
	})
}

func (c *connClient) LogMessage(ctx context.Context, typ protocol.MessageType, message string) error {
	return c.conn.Notify(ctx, protocol.MethodWindowLogMessage, &protocol.LogMessageParams{
		Type:    typ,
		Message: message,
	})
}

func (c *connClient) Notify(ctx context.Context, method string, params any) error {
	return c.conn.Notify(ctx, method, params)
}
