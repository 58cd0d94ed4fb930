// Package diagnostics serves a debug HTTP surface for a running component
// tree: health, the component and widget trees, Prometheus metrics and a
// websocket stream of engine records.
package diagnostics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/toolkit"
)

// Invoker runs fn on the UI thread and waits for it.
// *uithread.Executor implements it.
type Invoker interface {
	Invoke(ctx context.Context, fn func()) error
}

// Config configures a Server.
type Config struct {
	// Addr is the listen address (default ":0", an ephemeral port).
	Addr string
	// UI runs tree snapshots on the UI thread. Required.
	UI Invoker
	// Gatherer backs /metrics (default prometheus.DefaultGatherer).
	Gatherer prometheus.Gatherer
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the debug server.
type Server struct {
	cfg    Config
	logger *slog.Logger
	router chi.Router
	stream *stream

	mu       sync.Mutex
	roots    []core.Component
	server   *http.Server
	listener net.Listener
}

// TreeNode is a component with its widget snapshot.
type TreeNode struct {
	core.NodeInfo
	Widget *toolkit.Info `json:"widget,omitempty"`
}

// New creates a server. Register Observer with the runtime to feed /events.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":0"
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger.With("component", "diagnostics"),
		stream: newStream(cfg.Logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", s.stream.serve)
	s.router = r
	return s
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler { return s.router }

// Observer returns the engine observer that feeds /events.
func (s *Server) Observer() core.Observer { return s.stream }

// SetRoots sets the root components /tree reports.
func (s *Server) SetRoots(roots ...core.Component) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roots = append([]core.Component(nil), roots...)
}

// Start listens on the configured address and serves in the background.
// It returns the bound address.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().String(), nil
	}

	// Bind first to fail fast on port conflicts
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}
	server := &http.Server{Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			s.server = nil
			s.listener = nil
			s.mu.Unlock()
			s.logger.Error("debug server stopped", "error", err)
		}
	}()

	addr := listener.Addr().String()
	s.logger.Info("debug server listening", "addr", addr)
	return addr, nil
}

// Shutdown stops the server and closes event streams.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	s.stream.close()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) snapshotRoots() []core.Component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Component(nil), s.roots...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"components": len(s.snapshotRoots()),
		"streams":    s.stream.count(),
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	if s.cfg.UI == nil {
		http.Error(w, "no UI thread configured", http.StatusServiceUnavailable)
		return
	}
	roots := s.snapshotRoots()
	tree := make([]TreeNode, 0, len(roots))

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	err := s.cfg.UI.Invoke(ctx, func() {
		for _, c := range roots {
			node := TreeNode{NodeInfo: core.Describe(c)}
			if tw, ok := c.Widget().(toolkit.Widget); ok {
				info := toolkit.Describe(tw)
				node.Widget = &info
			}
			tree = append(tree, node)
		}
	})
	if err != nil {
		http.Error(w, fmt.Sprintf("tree snapshot: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
