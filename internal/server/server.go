package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/janpfeifer/MathMatch/internal/frontend"
	"github.com/janpfeifer/MathMatch/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// ServerState holds the live sessions of a running server.
type ServerState struct {
	// Address the server is listening to, available once Run reports it started.
	Address string

	cfg      Config
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewServerState creates the state of a server with the given configuration.
func NewServerState(cfg Config) *ServerState {
	return &ServerState{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// NumSessions returns the number of connected browsers.
func (s *ServerState) NumSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// HandleWS upgrades the request to a websocket and plays a game over it until
// the browser goes away.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: accept failed: %v", err)
		return
	}
	session := NewSession(conn, s.cfg.GameConfig())

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	klog.Infof("Session %s: connected from %s", session.ID, r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, session.ID)
		s.mu.Unlock()
		klog.Infof("Session %s: disconnected", session.ID)
	}()

	if err := session.Run(r.Context()); err != nil {
		klog.Warningf("Session %s: %v", session.ID, err)
	}
}

// closeAll ends every live session.
func (s *ServerState) closeAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}

// Handler returns the HTTP handler of the server: the go-app shell, the static
// files under /web/ and the websocket endpoint /ws.
func (s *ServerState) Handler() http.Handler {
	// Initialize global frontend state for server-side prerendering without panic
	frontend.InitState()

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Game{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "Math Match",
		ShortName:   "MathMatch",
		Description: "Match fractions, decimals, percentages and ratios of the same value",
		Version:     game.Version,
		Styles: []string{
			"https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.min.css",
			"/web/css/main.css",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(s.cfg.WebDir))))
	mux.Handle("/", h)
	return mux
}

// Run starts the server and blocks until the context is canceled.
// If started is not nil, the server state is sent to it once it is listening.
func Run(ctx context.Context, cfg Config, started chan<- *ServerState) error {
	state := NewServerState(cfg)

	addr := cfg.Addr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", addr, err)
	}
	state.Address = listener.Addr().String()

	srv := &http.Server{Handler: state.Handler()}
	serveErr := make(chan error, 1)
	go func() {
		klog.Infof("Server started on %s", state.Address)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	if started != nil {
		started <- state
	}

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	// Hijacked websocket connections are not closed by Shutdown.
	state.closeAll()
	return srv.Shutdown(shutdownCtx)
}
