package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(testLogger())
	go h.Run()
	return h
}

func registerTestClient(t *testing.T, h *Hub, sessionID string, buffer int) *WSClient {
	t.Helper()
	client := &WSClient{
		SessionID: sessionID,
		Send:      make(chan []byte, buffer),
		Hub:       h,
	}
	before := h.GetConnectionCount()
	h.register <- client
	require.Eventually(t, func() bool {
		return h.GetConnectionCount() == before+1
	}, time.Second, time.Millisecond)
	return client
}

func TestHubDropsStalledClientUnderConcurrentBroadcasts(t *testing.T) {
	h := newTestHub(t)

	healthy := registerTestClient(t, h, "session-1", 64)
	// Unbuffered with no reader: every send hits the default branch.
	stalled := registerTestClient(t, h, "session-1", 0)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.BroadcastToSession("session-1", "draft_pick", map[string]int{"pick": 1})
		}()
	}
	wg.Wait()

	// The stalled client is gone; dropping it twice must not double-close.
	assert.Equal(t, 1, h.GetConnectionCount())
	h.dropClient(stalled)
	assert.Equal(t, 1, h.GetConnectionCount())

	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "draft_pick")
	case <-time.After(time.Second):
		t.Fatal("healthy client received nothing")
	}
}

func TestHubSurvivesUnregisterOfDroppedClient(t *testing.T) {
	h := newTestHub(t)

	healthy := registerTestClient(t, h, "session-1", 64)
	stalled := registerTestClient(t, h, "session-1", 0)

	h.BroadcastToSession("session-1", "draft_pick", map[string]int{"pick": 1})
	require.Eventually(t, func() bool {
		return h.GetConnectionCount() == 1
	}, time.Second, time.Millisecond)

	// readPump unregisters on disconnect even after a broadcast already
	// dropped the client; the hub must treat that as a no-op.
	h.unregister <- stalled

	h.BroadcastEvent("valuations_refreshed", map[string]int{"players": 3})
	select {
	case msg := <-healthy.Send:
		assert.Contains(t, string(msg), "valuations_refreshed")
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after duplicate unregister")
	}
}
