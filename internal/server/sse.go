package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// sseKeepaliveInterval is how often keepalive comments are sent to prevent
// connection timeouts.
const sseKeepaliveInterval = 15 * time.Second

// sseEvent is a single event sent to SSE clients.
type sseEvent struct {
	ID    uint64 // monotonically increasing sequence number
	Topic string
	Data  []byte // JSON-encoded payload
}

// sseHub fans out applied-scan events to connected SSE clients.
type sseHub struct {
	mu      sync.RWMutex
	clients map[*sseClient]struct{}
	nextID  atomic.Uint64
}

// sseClient represents a single connected SSE consumer.
type sseClient struct {
	ch chan *sseEvent // buffered channel for event delivery
}

func newSSEHub() *sseHub {
	return &sseHub{
		clients: make(map[*sseClient]struct{}),
	}
}

// broadcast sends an event to all connected clients.
func (h *sseHub) broadcast(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	evt := &sseEvent{
		ID:    h.nextID.Add(1),
		Topic: topic,
		Data:  data,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.ch <- evt:
		default:
			// Drop if client is slow — prevents blocking the dispatcher.
		}
	}
}

// subscribe registers a new SSE client. Call unsubscribe when done.
func (h *sseHub) subscribe() *sseClient {
	c := &sseClient{ch: make(chan *sseEvent, 64)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *sseHub) unsubscribe(c *sseClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// handleEventStream handles GET /v1/events/stream: a Server-Sent Events
// stream of applied scans for dashboards.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	client := s.sseHub.subscribe()
	defer s.sseHub.unsubscribe(client)

	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case evt := <-client.ch:
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", evt.ID, evt.Topic, evt.Data)
			flusher.Flush()
		}
	}
}
