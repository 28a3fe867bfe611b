// Package server is the chat transport for explbot: a JSON webhook for
// request/response clients and a WebSocket endpoint for interactive chat
// sessions. The transport carries messages; all command semantics live in
// the bot package.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"explbot/bot"
	"explbot/db"
	"explbot/errors"
	"explbot/version"
)

// HTTP server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server serves glossary commands over HTTP and WebSocket.
type Server struct {
	handler        *bot.Handler
	allowedOrigins []string
	logger         *zap.SugaredLogger

	httpServer *http.Server

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	clients map[*Client]bool
}

// New creates a server for the given command handler.
func New(handler *bot.Handler, listenAddr string, allowedOrigins []string, logger *zap.SugaredLogger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		handler:        handler,
		allowedOrigins: allowedOrigins,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		clients:        make(map[*Client]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/command", s.handleCommand)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

// Start runs the HTTP server until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Infow("Server starting",
		"addr", s.httpServer.Addr,
		"version", version.Get().Short(),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Stop shuts the server down gracefully: stop accepting connections, close
// WebSocket clients, wait for in-flight requests.
func (s *Server) Stop() error {
	s.logger.Infow("Server stopping")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)

	// Unblock client read loops and wait for their pumps to exit
	s.cancel()
	s.mu.Lock()
	for client := range s.clients {
		client.close()
	}
	s.mu.Unlock()
	s.wg.Wait()

	if err != nil {
		return errors.Wrap(err, "http shutdown")
	}
	return nil
}

// CommandRequest is the webhook and WebSocket inbound frame: free-form
// message text plus the submitting user's identifier.
type CommandRequest struct {
	User string `json:"user"`
	Text string `json:"text"`
}

// handleCommand is the request/response webhook: one command in, one
// response out.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req CommandRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if req.User == "" {
		writeError(w, http.StatusBadRequest, "user is required")
		return
	}

	resp, err := s.handler.Handle(r.Context(), req.User, req.Text)
	if err != nil {
		if errors.IsInvalidRequestError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Requests racing a graceful shutdown hit the closed pool; that is
		// expected, not a server fault
		if db.IsDatabaseClosed(err) {
			writeError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}
		s.logger.Errorw("Command failed",
			"user", req.User,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "command failed")
		return
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		s.logger.Errorw("Failed to write response", "error", err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
	})
}

// registerClient tracks a connected WebSocket client.
func (s *Server) registerClient(c *Client) {
	s.mu.Lock()
	s.clients[c] = true
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Infow("Client connected",
		"client_id", c.id,
		"total_clients", total,
	)
}

// unregisterClient forgets a disconnected WebSocket client.
func (s *Server) unregisterClient(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	total := len(s.clients)
	s.mu.Unlock()

	s.logger.Infow("Client disconnected",
		"client_id", c.id,
		"total_clients", total,
	)
}
