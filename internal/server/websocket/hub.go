// Package websocket streams library updates to browser clients.
package websocket

import (
	"context"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/agentstation/bookshelf/pkg/constants"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is the JSON frame sent to clients.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub tracks connected clients and fans frames out to them. The client set
// is owned by the Run goroutine; everything else talks to it over channels.
type Hub struct {
	join     chan *Client
	leave    chan *Client
	outbound chan []byte
	stopped  chan struct{}
	clients  atomic.Int64
	logger   *zerolog.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		join:     make(chan *Client),
		leave:    make(chan *Client),
		outbound: make(chan []byte, constants.ChannelBufferSize),
		stopped:  make(chan struct{}),
		logger:   logger,
	}
}

// Run serves joins, leaves and broadcasts until ctx is done, then closes
// every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[*Client]struct{})
	drop := func(c *Client) {
		delete(clients, c)
		close(c.send)
	}
	defer func() {
		close(h.stopped)
		for c := range clients {
			drop(c)
		}
		h.clients.Store(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.join:
			clients[c] = struct{}{}
			h.clients.Store(int64(len(clients)))
			h.logger.Info().Str("client_id", c.id).Int("clients", len(clients)).Msg("WebSocket client connected")

		case c := <-h.leave:
			if _, ok := clients[c]; ok {
				drop(c)
			}
			h.clients.Store(int64(len(clients)))
			h.logger.Info().Str("client_id", c.id).Int("clients", len(clients)).Msg("WebSocket client disconnected")

		case frame := <-h.outbound:
			for c := range clients {
				select {
				case c.send <- frame:
				default:
					h.logger.Warn().Str("client_id", c.id).Msg("WebSocket client too slow, disconnecting")
					drop(c)
				}
			}
			h.clients.Store(int64(len(clients)))
		}
	}
}

// Register adds c. After the hub stops, c's send channel is closed instead.
func (h *Hub) Register(c *Client) {
	select {
	case h.join <- c:
	case <-h.stopped:
		close(c.send)
	}
}

// Unregister removes c. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.leave <- c:
	case <-h.stopped:
	}
}

// Broadcast encodes msg once and queues it for every client. The frame is
// dropped when the queue is full.
func (h *Hub) Broadcast(msg Message) {
	frame, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Str("type", msg.Type).Msg("Failed to encode WebSocket message")
		return
	}
	select {
	case h.outbound <- frame:
	default:
		h.logger.Warn().Str("type", msg.Type).Msg("Broadcast queue full, message dropped")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.clients.Load())
}
