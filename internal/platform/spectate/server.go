package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Handler returns the HTTP routes: /ws for the stream and /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if h.full() {
			http.Error(w, "too many spectators", http.StatusServiceUnavailable)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}

		client := newClient(h, conn, r.RemoteAddr)
		if !h.join(client) {
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok spectators=%d\n", h.ClientCount())
	})

	return mux
}

// Server serves a hub over HTTP.
type Server struct {
	hub    *Hub
	http   *http.Server
	ln     net.Listener
	cancel context.CancelFunc
}

// Listen starts the hub and an HTTP server on addr (":0" picks a port).
// It returns once the listener is bound.
func Listen(ctx context.Context, addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectate: cannot listen on %s: %w", addr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Server{
		hub:    hub,
		ln:     ln,
		cancel: cancel,
		http: &http.Server{
			Handler:           hub.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	go hub.Run(ctx)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hub.logger.Error("spectator server stopped", "err", err)
		}
	}()

	hub.logger.Info("spectator stream listening", "url", s.URL())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// URL returns the websocket URL spectators connect to.
func (s *Server) URL() string {
	return "ws://" + s.Addr() + "/ws"
}

// Shutdown stops accepting spectators and disconnects the rest.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.http.Shutdown(ctx)
}
