// Package spectate streams read-only game views to websocket spectators.
// Views are msgpack-encoded and sent as binary messages.
package spectate

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	maxClients    = 64
	broadcastSize = 8
)

// Frame is one message on the wire.
type Frame struct {
	Seq    uint64 `msgpack:"seq"`
	SentMS int64  `msgpack:"sent_ms"`
	View   any    `msgpack:"view"`
}

// Hub fans published views out to every connected spectator.
// Newcomers receive the latest frame immediately.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	last    []byte

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	seq     atomic.Uint64
	dropped atomic.Uint64
	logger  *log.Logger
}

// NewHub creates a hub. Call Run to start delivering.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, broadcastSize),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is done,
// then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			last := h.last
			h.mu.Unlock()
			if last != nil {
				c.trySend(last)
			}
			h.logger.Info("spectator joined", "remote", c.remote, "spectators", h.ClientCount())

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.logger.Info("spectator left", "remote", c.remote)

		case msg := <-h.broadcast:
			h.mu.Lock()
			h.last = msg
			for c := range h.clients {
				if !c.trySend(msg) {
					h.dropped.Add(1)
				}
			}
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Publish encodes a view and queues it for every spectator.
// It never blocks; when the hub is behind the frame is dropped.
func (h *Hub) Publish(view any) {
	data, err := msgpack.Marshal(Frame{
		Seq:    h.seq.Add(1),
		SentMS: time.Now().UnixMilli(),
		View:   view,
	})
	if err != nil {
		h.logger.Error("cannot encode view", "err", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// ClientCount returns the number of connected spectators.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many frames were not delivered.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) full() bool {
	return h.ClientCount() >= maxClients
}

// join registers a client; it reports false once the hub has stopped.
func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
