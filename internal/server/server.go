package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/calcpad/calcpad/internal/calculator"
	"github.com/calcpad/calcpad/internal/discovery"
	"github.com/calcpad/calcpad/internal/logging"
	"github.com/calcpad/calcpad/internal/version"
)

// Config holds the server configuration
type Config struct {
	Host         string
	Port         int                     // 0 picks a free port
	CertPath     string                  // Serve wss:// when both CertPath and KeyPath are set
	KeyPath      string
	LogLevel     string                  // Re-initializes logging when non-empty
	RepeatPolicy calculator.RepeatPolicy // Repeated "=" behaviour for every session
	Advertise    bool                    // Register the server via mDNS
	Instance     string                  // mDNS instance name
}

// Server is the remote keypad server
type Server struct {
	config     *Config
	tlsConfig  *tls.Config
	upgrader   websocket.Upgrader
	httpServer *http.Server
	listener   net.Listener
	advert     *discovery.Advertisement

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions map[*Session]struct{}
	closing  bool

	shutdownOnce sync.Once
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if config.LogLevel != "" {
		if err := logging.Initialize(config.LogLevel); err != nil {
			return nil, fmt.Errorf("failed to initialize logging: %w", err)
		}
	}

	if (config.CertPath == "") != (config.KeyPath == "") {
		return nil, fmt.Errorf("both cert and key must be provided together, or neither")
	}

	var tlsConfig *tls.Config
	if config.CertPath != "" {
		var err error
		tlsConfig, err = NewTLSConfig(config.CertPath, config.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	s := &Server{
		config:    config,
		tlsConfig: tlsConfig,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Keypads are driven by CLI tools and LAN clients, not browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[*Session]struct{}),
	}
	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler serving /ws and /healthz
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(discovery.DefaultPath, s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Listen binds the TCP listener. Start calls it when needed; calling it first
// lets callers learn the port chosen for Port 0.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	if s.tlsConfig != nil {
		ln = tls.NewListener(ln, s.tlsConfig)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start serves until ctx is done, SIGINT/SIGTERM arrives or serving fails
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	addr := s.listener.Addr().String()
	logging.Info("Starting calcpad keypad server",
		zap.String("addr", addr),
		zap.String("repeat_equals", s.config.RepeatPolicy.String()),
		zap.Any("tls_info", GetTLSInfo(s.tlsConfig)),
	)

	if s.config.Advertise {
		port := s.listener.Addr().(*net.TCPAddr).Port
		ad, err := discovery.Advertise(s.config.Instance, port, s.txtRecords())
		if err != nil {
			// The server is still reachable by address.
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.advert = ad
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	logging.Info("Server listening for connections", zap.String("addr", addr))

	select {
	case <-sigChan:
		logging.Info("Shutdown signal received, stopping server...")
	case <-ctx.Done():
		logging.Info("Context cancelled, stopping server...")
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = s.Shutdown(context.Background())
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) txtRecords() []string {
	return []string{
		"path=" + discovery.DefaultPath,
		"version=" + version.Version,
		"repeat=" + s.config.RepeatPolicy.String(),
	}
}

// handleWebSocket upgrades the request and serves a session on it
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote an HTTP error response.
		logging.Warn("WebSocket upgrade failed",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		return
	}

	sess := newSession(conn, r.RemoteAddr, s.config.RepeatPolicy)
	if !s.track(sess) {
		sess.Close()
		return
	}
	defer s.untrack(sess)

	if err := sess.run(); err != nil {
		logging.Error("WebSocket session error",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
	}
}

func (s *Server) track(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[sess] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess)
	s.mu.Unlock()
	s.wg.Done()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.shutdown(ctx)
	})
	return err
}

func (s *Server) shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	s.advert.Shutdown()

	var shutdownErr error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("http shutdown: %w", err)
	}

	// Hijacked websocket connections are not closed by http.Server.
	s.mu.Lock()
	s.closing = true
	for sess := range s.sessions {
		logging.Info("Closing active session", zap.String("remote_addr", sess.remoteAddr))
		sess.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return shutdownErr
}

// ActiveSessions returns the number of connected keypad clients
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
