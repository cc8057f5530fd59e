package stream

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"chainkit/internal/domain/entity"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// Hub fans rate-table install events out to websocket subscribers.
type Hub struct {
	upgrader websocket.FastHTTPUpgrader
	logger   *zap.Logger

	mu      sync.Mutex
	clients map[*subscriber]struct{}
	closed  bool
}

type subscriber struct {
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.FastHTTPUpgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*fasthttp.RequestCtx) bool {
				return true
			},
		},
		logger:  logger.Named("RateStream"),
		clients: make(map[*subscriber]struct{}),
	}
}

// Publish sends an event for table to every subscriber. Subscribers whose
// buffer is full are disconnected.
func (h *Hub) Publish(table *entity.RateTable) {
	msg, err := json.Marshal(NewEvent(table))
	if err != nil {
		h.logger.Error("Failed to encode rate event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.clients {
		select {
		case s.send <- msg:
		default:
			h.logger.Warn("Dropping slow stream subscriber")
			delete(h.clients, s)
			close(s.send)
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and streams events until the peer leaves.
func (h *Hub) ServeWS(ctx *fasthttp.RequestCtx) {
	err := h.upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		defer conn.Close()

		s, ok := h.register()
		if !ok {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return
		}
		defer h.unregister(s)
		h.logger.Debug("Stream subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

		peerGone := make(chan struct{})
		go func() {
			defer close(peerGone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-s.send:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(writeWait))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.logger.Debug("Stream write failed", zap.Error(err))
					return
				}
			case <-peerGone:
				h.logger.Debug("Stream subscriber disconnected")
				return
			}
		}
	})
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.clients {
		delete(h.clients, s)
		close(s.send)
	}
}

func (h *Hub) register() (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, false
	}
	s := &subscriber{send: make(chan []byte, sendBuffer)}
	h.clients[s] = struct{}{}
	return s, true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[s]; ok {
		delete(h.clients, s)
		close(s.send)
	}
}
