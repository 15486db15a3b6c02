package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/exp/jsonrpc2"

	"github.com/meridian-data/catalogd/internal/events"
)

// Server exposes the JSON-RPC handler and the event stream over HTTP, on
// TCP or a Unix socket.
type Server struct {
	handler    *Handler
	events     *events.Hub
	httpServer *http.Server
	listener   net.Listener
	socketPath string
}

// JSONRPCRequest represents a JSON-RPC 2.0 request (for HTTP compatibility)
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response (for HTTP compatibility)
type JSONRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

// RPCError represents a JSON-RPC 2.0 error
type RPCError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// NewServer creates a server listening on the given TCP port.
func NewServer(ctx context.Context, handler *Handler, eventsHub *events.Hub, port int) (*Server, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	return serve(handler, eventsHub, ln, "")
}

// NewUnixServer creates a server listening on a Unix domain socket.
func NewUnixServer(ctx context.Context, handler *Handler, eventsHub *events.Hub, socketPath string) (*Server, error) {
	// Remove stale socket if exists
	_ = os.Remove(socketPath)

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on unix socket %s: %w", socketPath, err)
	}
	return serve(handler, eventsHub, ln, socketPath)
}

func serve(handler *Handler, eventsHub *events.Hub, ln net.Listener, socketPath string) (*Server, error) {
	s := &Server{
		handler:    handler,
		events:     eventsHub,
		listener:   ln,
		socketPath: socketPath,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rpc", s.handleHTTPRequest)
	mux.HandleFunc("/healthcheck", s.handleHealthRequest)
	mux.HandleFunc("GET /events", s.handleEventsRequest)

	s.httpServer = &http.Server{
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait briefly to surface immediate startup failures.
	select {
	case err := <-errChan:
		return nil, fmt.Errorf("failed to start server: %w", err)
	case <-time.After(100 * time.Millisecond):
		return s, nil
	}
}

func (s *Server) handleHTTPRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, nil, -32700, "Parse error")
		return
	}

	if req.JSONRPC != "2.0" {
		s.sendError(w, req.ID, -32600, "Invalid Request")
		return
	}

	var id jsonrpc2.ID
	switch v := req.ID.(type) {
	case float64:
		id = jsonrpc2.Int64ID(int64(v))
	case string:
		id = jsonrpc2.StringID(v)
	case nil:
		// Notification - no ID
	default:
		s.sendError(w, req.ID, -32600, "Invalid Request ID")
		return
	}

	jsonReq := &jsonrpc2.Request{
		ID:     id,
		Method: req.Method,
		Params: req.Params,
	}

	result, err := s.handler.Handle(r.Context(), jsonReq)
	if err != nil {
		s.sendError(w, req.ID, errorCode(err), err.Error())
		return
	}

	s.sendResult(w, req.ID, result)
}

// handleEventsRequest streams hub events to the client as Server-Sent
// Events until the client disconnects.
func (s *Server) handleEventsRequest(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		http.Error(w, "event stream unavailable", http.StatusServiceUnavailable)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	// The stream outlives the server's write timeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.WarnContext(ctx, "failed to disable write deadline for event stream", slog.Any("err", err))
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	eventCh, unsubscribe := s.events.Subscribe()
	defer unsubscribe()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	if _, err := w.Write([]byte(": connected\n\n")); err == nil {
		flusher.Flush()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				slog.DebugContext(ctx, "event stream heartbeat write failed", slog.Any("err", err))
				return
			}
			flusher.Flush()
		case evt, ok := <-eventCh:
			if !ok {
				return
			}
			payload, err := json.Marshal(evt.Payload)
			if err != nil {
				slog.ErrorContext(ctx, "failed to marshal event payload", slog.Any("err", err))
				continue
			}
			if !evt.Timestamp.IsZero() {
				if _, err := fmt.Fprintf(w, "id: %d\n", evt.Timestamp.UnixNano()); err != nil {
					slog.DebugContext(ctx, "failed to write event id", slog.Any("err", err))
					return
				}
			}
			if evt.Name != "" {
				if _, err := fmt.Fprintf(w, "event: %s\n", evt.Name); err != nil {
					slog.DebugContext(ctx, "failed to write event name", slog.Any("err", err))
					return
				}
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				slog.DebugContext(ctx, "failed to write event data", slog.Any("err", err))
				return
			}
			flusher.Flush()
		}
	}
}

// handleHealthRequest is a plain liveness endpoint for clients and monitors.
func (s *Server) handleHealthRequest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) sendResult(w http.ResponseWriter, id any, result any) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		Result:  result,
		ID:      id,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) sendError(w http.ResponseWriter, id any, code int64, message string) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &RPCError{
			Code:    code,
			Message: message,
		},
		ID: id,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Addr returns the listen address, or the socket path for Unix servers.
func (s *Server) Addr() string {
	if s.socketPath != "" {
		return s.socketPath
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully stops the server and removes the unix socket if used.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.httpServer.Shutdown(ctx)
	if s.socketPath != "" {
		_ = os.Remove(s.socketPath)
	}
	return err
}
