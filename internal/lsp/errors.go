package lsp

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/dusk-indust/houls/internal/outline"
)

// CodeServerNotInitialized is returned for requests received before
// initialize.
const CodeServerNotInitialized = -32002

func invalidParams(format string, args ...any) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: fmt.Sprintf(format, args...)}
}

func invalidRequest(format string, args ...any) *jsonrpc2.Error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// internalError converts a pipeline failure into an internal protocol error,
// keeping the message of the typed cause.
func internalError(err error) *jsonrpc2.Error {
	var (
		rerr *outline.ReadError
		perr *outline.ParseError
		derr *outline.DecodeError
		rpc  *jsonrpc2.Error
	)
	switch {
	case errors.As(err, &rpc):
		return rpc
	case errors.As(err, &rerr):
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "could not read document: " + rerr.Error()}
	case errors.As(err, &perr):
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "could not parse document: " + perr.Error()}
	case errors.As(err, &derr):
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: "could not decode symbol name: " + err.Error()}
	default:
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
}
