package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, userID uint) *Client {
	return &Client{
		Hub:    h,
		UserID: userID,
		Send:   make(chan []byte, 16),
	}
}

func receiveEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for push event")
		return Event{}
	}
}

func waitForClientCount(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d (got %d)", want, h.ClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, 1)
	second := newTestClient(hub, 2)
	hub.Register(first)
	hub.Register(second)
	waitForClientCount(t, hub, 2)

	err := hub.Broadcast(Event{Type: "INVENTORY", Message: "Low stock: Fudge Brownie (Box of 6)"})
	require.NoError(t, err)

	for _, client := range []*Client{first, second} {
		event := receiveEvent(t, client)
		assert.Equal(t, "INVENTORY", event.Type)
		assert.Equal(t, "Low stock: Fudge Brownie (Box of 6)", event.Message)
		assert.False(t, event.CreatedAt.IsZero())
	}
}

func TestHub_BroadcastWithNoClientsIsNoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	err := hub.Broadcast(Event{Type: "ORDER", Message: "New order placed"})
	assert.NoError(t, err)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 7)
	hub.Register(client)
	waitForClientCount(t, hub, 1)

	hub.Unregister(client)
	waitForClientCount(t, hub, 0)

	// Send channel is closed on unregister
	_, open := <-client.Send
	assert.False(t, open)

	require.NoError(t, hub.Broadcast(Event{Type: "FEEDBACK", Message: "New feedback"}))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_EventDataRoundTrips(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, 3)
	hub.Register(client)
	waitForClientCount(t, hub, 1)

	payload := map[string]interface{}{
		"product_id":   float64(12),
		"variant_name": "Box of 12",
		"new_quantity": float64(15),
		"threshold":    float64(20),
	}
	require.NoError(t, hub.Broadcast(Event{Type: "INVENTORY", Message: "Low stock", Data: payload}))

	event := receiveEvent(t, client)
	assert.Equal(t, payload, event.Data)
}
