package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub()
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case data := <-c.Send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestPublishReachesAllClients(t *testing.T) {
	hub := startHub(t)
	a := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	require.True(t, hub.Attach(a))
	require.True(t, hub.Attach(b))

	hub.Publish("freet.created", map[string]string{"_id": "1"})

	assert.Equal(t, "freet.created", receive(t, a).Type)
	assert.Equal(t, "freet.created", receive(t, b).Type)
}

func TestNotifyTargetsOneUser(t *testing.T) {
	hub := startHub(t)
	owner := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	require.True(t, hub.Attach(owner))
	require.True(t, hub.Attach(other))

	hub.Notify(owner.UserID, "like.received", nil)

	assert.Equal(t, "like.received", receive(t, owner).Type)
	select {
	case <-other.Send:
		t.Fatal("unexpected event for other user")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDetachClosesSend(t *testing.T) {
	hub := startHub(t)
	c := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	require.True(t, hub.Attach(c))
	hub.Detach(c)

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectionCount(c.UserID))
}

func TestPublishOnNilHub(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish("freet.created", nil) })
}
