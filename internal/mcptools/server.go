package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewOutlineMCPServer creates an MCP server with the outline tools registered.
func NewOutlineMCPServer(svc *OutlineService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "houls",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "document_symbols",
		Description: "Outline a houlang schedule file. Returns one symbol per week block, named by the week's date, with the block's range.",
	}, svc.DocumentSymbols)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "outline_files",
		Description: "Outline every houlang file matching the given paths or doublestar globs. Per-file failures are reported without failing the call.",
	}, svc.OutlineFiles)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServer starts an HTTP server exposing the outline MCP tools.
func RunMCPServer(ctx context.Context, svc *OutlineService, addr string) error {
	server := NewOutlineMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
