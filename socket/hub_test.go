package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/events"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to read messages from a WebSocket connection with a timeout.
func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	var msg WSMessage
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read message from WebSocket")
	err = json.Unmarshal(p, &msg)
	require.NoError(t, err, "Failed to unmarshal WSMessage JSON")
	return msg
}

func startHub(t *testing.T) (*Hub, string, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http"), cancel
}

func dial(t *testing.T, url, collection string, hub *Hub, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"/ws?collection="+collection, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientCount(collection) == want }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHubRoutesEventsByCollection(t *testing.T) {
	hub, url, _ := startHub(t)

	productConn := dial(t, url, CollectionProduct, hub, 1)
	seoConn := dial(t, url, CollectionSEO, hub, 1)

	product := map[string]any{"_id": "65a1f0c2e4b0a1b2c3d4e5f6", "title": "Lamp", "__v": 0}
	require.NoError(t, hub.Publish(context.Background(), events.TopicProductCreated, product))
	require.NoError(t, hub.Publish(context.Background(), events.TopicSEOUpdated, map[string]string{"title": "Shop"}))

	msg := readMessage(t, productConn)
	assert.Equal(t, "product.created", msg.Type)
	assert.Equal(t, CollectionProduct, msg.Collection)
	assert.JSONEq(t, `{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","title":"Lamp","__v":0}`, string(msg.Payload))

	// The SEO subscriber never sees product events; its first frame is the SEO update.
	msg = readMessage(t, seoConn)
	assert.Equal(t, "seo.updated", msg.Type)
	assert.JSONEq(t, `{"title":"Shop"}`, string(msg.Payload))
}

func TestHubBroadcastsToEverySubscriber(t *testing.T) {
	hub, url, _ := startHub(t)

	conn1 := dial(t, url, CollectionProduct, hub, 1)
	conn2 := dial(t, url, CollectionProduct, hub, 2)

	require.NoError(t, hub.Publish(context.Background(), events.TopicProductDeleted, events.ProductDeleted{ID: "abc"}))

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		msg := readMessage(t, conn)
		assert.Equal(t, "product.deleted", msg.Type)
		assert.JSONEq(t, `{"_id":"abc"}`, string(msg.Payload))
	}
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, url, _ := startHub(t)

	conn := dial(t, url, CollectionProduct, hub, 1)
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount(CollectionProduct) == 0 }, time.Second, 10*time.Millisecond)
}

func TestServeWsRejectsUnknownCollection(t *testing.T) {
	_, url, _ := startHub(t)

	_, resp, err := websocket.DefaultDialer.Dial(url+"/ws?collection=orders", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPublishRejectsUnroutableTopic(t *testing.T) {
	hub := NewHub()
	assert.Error(t, hub.Publish(context.Background(), "product", nil))
}

func TestPublishAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// Fill the buffer, then one more publish must return instead of blocking.
	for i := 0; i < cap(hub.Broadcast)+1; i++ {
		require.NoError(t, hub.Publish(context.Background(), events.TopicSEOUpdated, nil))
	}
}
