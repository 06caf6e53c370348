package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"storefront/internal/events"
	"storefront/pkg/logger"
)

const (
	CollectionProduct = "product" // Product listing changes
	CollectionSEO     = "seo"     // Site metadata changes
)

// WSMessage is the frame pushed to subscribers, e.g.
// {"type":"product.created","collection":"product","payload":{...}}.
type WSMessage struct {
	Type       string          `json:"type"`
	Collection string          `json:"collection"`
	Payload    json.RawMessage `json:"payload"`
}

// Hub fans change events out to the websocket subscribers of each collection.
type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	mu         sync.Mutex
	done       chan struct{}
}

var _ events.Publisher = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan WSMessage, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// ValidCollection reports whether name is a room subscribers may join.
func ValidCollection(name string) bool {
	return name == CollectionProduct || name == CollectionSEO
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for collection, clients := range h.Rooms {
				for client := range clients {
					close(client.Send)
				}
				delete(h.Rooms, collection)
			}
			h.mu.Unlock()
			logger.Sugar.Info("Change feed hub stopped")
			return

		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.Collection] == nil {
				h.Rooms[client.Collection] = make(map[*Client]bool)
			}
			h.Rooms[client.Collection][client] = true
			h.mu.Unlock()
			logger.Sugar.Debugf("Subscriber joined %s feed", client.Collection)

		case client := <-h.Unregister:
			h.removeClient(client)

		case msg := <-h.Broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}

			// Copy recipients so socket writes happen outside the lock.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[msg.Collection]))
			for client := range h.Rooms[msg.Collection] {
				clientsToSend = append(clientsToSend, client)
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					logger.Sugar.Warnf("Subscriber on %s feed is lagging. Disconnecting.", client.Collection)
					h.removeClient(client)
				}
			}
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.Rooms[client.Collection][client]; ok {
		delete(h.Rooms[client.Collection], client)
		close(client.Send)
		if len(h.Rooms[client.Collection]) == 0 {
			delete(h.Rooms, client.Collection)
		}
	}
}

// Publish implements events.Publisher. Topics outside the
// "storefront.<collection>.<action>" form are rejected.
func (h *Hub) Publish(ctx context.Context, topic string, event any) error {
	collection, action, ok := events.SplitTopic(topic)
	if !ok {
		return fmt.Errorf("unroutable topic %q", topic)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	msg := WSMessage{Type: collection + "." + action, Collection: collection, Payload: payload}
	select {
	case h.Broadcast <- msg:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close is a no-op; the hub stops when the context passed to Run is cancelled.
func (h *Hub) Close() error {
	return nil
}

// ClientCount returns the number of subscribers on a collection feed.
func (h *Hub) ClientCount(collection string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Rooms[collection])
}
