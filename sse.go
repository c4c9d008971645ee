package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// event marshals an SSE payload of the given type. Extra fields are
// merged beside the "type" key.
func event(typ string, fields map[string]any) string {
	payload := map[string]any{"type": typ}
	for k, v := range fields {
		payload[k] = v
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

// client represents a single SSE connection.
type client struct {
	ch     chan string
	gameID string
}

// Broadcaster fans events out to the SSE clients of each game session.
type Broadcaster struct {
	mu    sync.RWMutex
	games map[string]map[*client]struct{}
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		games: make(map[string]map[*client]struct{}),
	}
}

// Register adds a client for a game session and returns it.
func (b *Broadcaster) Register(gameID string) *client {
	c := &client{
		ch:     make(chan string, sseChannelBuffer),
		gameID: gameID,
	}
	b.mu.Lock()
	if b.games[gameID] == nil {
		b.games[gameID] = make(map[*client]struct{})
	}
	b.games[gameID][c] = struct{}{}
	b.mu.Unlock()
	return c
}

// Unregister removes a client and closes its channel.
func (b *Broadcaster) Unregister(c *client) {
	b.mu.Lock()
	if clients, ok := b.games[c.gameID]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.ch)
		}
		if len(clients) == 0 {
			delete(b.games, c.gameID)
		}
	}
	b.mu.Unlock()
}

// Broadcast sends a message to all clients of a game session.
func (b *Broadcaster) Broadcast(gameID, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for c := range b.games[gameID] {
		select {
		case c.ch <- data:
		default:
			// Channel full, skip slow client.
		}
	}
}

// ClientCount returns the number of connected clients for a game.
func (b *Broadcaster) ClientCount(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.games[gameID])
}

// ServeSSE handles an SSE connection for a game session.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, gameID string, onConnect func(c *client), onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming non supporté", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := b.Register(gameID)
	defer func() {
		b.Unregister(c)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()

	if onConnect != nil {
		onConnect(c)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-c.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
