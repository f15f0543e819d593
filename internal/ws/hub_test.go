package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestHubBroadcastsTeamEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := &Client{hub: hub, send: make(chan []byte, 4)}
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	n := NewNotifier(hub)
	n.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	n.TeamMatched(9, 3)

	var evt TeamEvent
	select {
	case msg := <-c.send:
		require.NoError(t, json.Unmarshal(msg, &evt))
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
	assert.Equal(t, TeamEvent{Type: EventTeamMatched, ProjectID: 9, Count: 3, Timestamp: "2026-01-02T03:04:05Z"}, evt)

	n.TeamSaved(9, 2)
	msg := <-c.send
	require.NoError(t, json.Unmarshal(msg, &evt))
	assert.Equal(t, EventTeamSaved, evt.Type)

	cancel()
	<-stopped
	_, open := <-c.send
	assert.False(t, open, "stopping the hub closes client queues")
}

func TestHubDropsSlowClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := &Client{hub: hub, send: make(chan []byte)}
	hub.Register(slow)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Broadcast([]byte("x"))
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	cancel()
}

func TestNilNotifierAndHub(t *testing.T) {
	var n *Notifier
	n.TeamMatched(1, 1)
	NewNotifier(nil).TeamSaved(1, 1)

	var h *Hub
	h.Broadcast([]byte("x"))
	assert.Zero(t, h.ClientCount())
}
