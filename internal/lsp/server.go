package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// ErrExitWithoutShutdown is returned by Serve when the client sent exit
// without a preceding shutdown request.
var ErrExitWithoutShutdown = errors.New("lsp: exit received before shutdown")

// Server runs the houls language server over JSON-RPC connections.
type Server struct {
	outliner Outliner
	logger   *zap.Logger
	opts     []BackendOption
}

// NewServer returns a Server answering requests with outliner.
func NewServer(outliner Outliner, logger *zap.Logger, opts ...BackendOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{outliner: outliner, logger: logger, opts: opts}
}

// Serve speaks the protocol over rwc until the client exits, the stream
// closes or ctx is cancelled. Each call has its own session state.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	sess := &session{server: s, logger: s.logger.With(zap.String("component", "lsp"))}

	stdLog, err := zap.NewStdLogAt(sess.logger, zap.DebugLevel)
	if err != nil {
		return err
	}

	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	handler := jsonrpc2.HandlerWithError(sess.handle).SuppressErrClosed()
	conn := jsonrpc2.NewConn(ctx, stream, handler, jsonrpc2.SetLogger(stdLog))

	select {
	case <-ctx.Done():
		_ = conn.Close()
		<-conn.DisconnectNotify()
		return ctx.Err()
	case <-conn.DisconnectNotify():
	}

	if sess.state.Load() == stateExitEarly {
		return ErrExitWithoutShutdown
	}
	return nil
}

const (
	stateUninitialized int32 = iota
	stateInitialized
	stateShutdown
	stateExited
	stateExitEarly
)

// session is the per-connection lifecycle. Requests are handled in arrival
// order on the connection's read goroutine.
type session struct {
	server *Server
	logger *zap.Logger
	state  atomic.Int32

	once    sync.Once
	backend *Backend
}

func (s *session) backendFor(conn *jsonrpc2.Conn) *Backend {
	s.once.Do(func() {
		s.backend = NewBackend(NewConnClient(conn), s.server.outliner, s.logger, s.server.opts...)
	})
	return s.backend
}

func (s *session) handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	b := s.backendFor(conn)
	s.logger.Debug("request", zap.String("method", req.Method), zap.Bool("notification", req.Notif))

	if req.Method == protocol.MethodExit {
		if s.state.Load() == stateShutdown {
			s.state.Store(stateExited)
		} else {
			s.state.Store(stateExitEarly)
		}
		return nil, conn.Close()
	}

	switch s.state.Load() {
	case stateUninitialized:
		if req.Method != protocol.MethodInitialize {
			if req.Notif {
				return nil, nil
			}
			return nil, &jsonrpc2.Error{Code: CodeServerNotInitialized, Message: "server not initialized"}
		}
	case stateInitialized:
		if req.Method == protocol.MethodInitialize {
			return nil, invalidRequest("server already initialized")
		}
	default:
		if req.Notif {
			return nil, nil
		}
		return nil, invalidRequest("server is shutting down")
	}

	switch req.Method {
	case protocol.MethodInitialize:
		var params protocol.InitializeParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		result, err := b.Initialize(ctx, &params)
		if err != nil {
			return nil, internalError(err)
		}
		s.state.Store(stateInitialized)
		return result, nil

	case protocol.MethodInitialized:
		return nil, b.Initialized(ctx, &protocol.InitializedParams{})

	case protocol.MethodShutdown:
		if err := b.Shutdown(ctx); err != nil {
			return nil, internalError(err)
		}
		s.state.Store(stateShutdown)
		return nil, nil

	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return nil, b.DidOpen(ctx, &params)

	case protocol.MethodTextDocumentDocumentSymbol:
		var params protocol.DocumentSymbolParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return b.DocumentSymbol(ctx, &params)

	case protocol.MethodWorkspaceExecuteCommand:
		var params protocol.ExecuteCommandParams
		if err := decodeParams(req, &params); err != nil {
			return nil, err
		}
		return b.ExecuteCommand(ctx, &params)
	}

	if req.Notif {
		return nil, nil
	}
	return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method}
}

func decodeParams(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return invalidParams("%s: missing params", req.Method)
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return invalidParams("%s: %v", req.Method, err)
	}
	return nil
}
