package websocket

import (
	"context"
	"testing"
	"time"

	"milk-platform-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func join(hub *Hub, room string) *Client {
	c := &Client{Hub: hub, Room: room, Send: make(chan []byte, 4)}
	hub.join(c)
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestDeliverToRoom(t *testing.T) {
	hub := startHub(t)
	seller := join(hub, "seller_1")
	sellerTab := join(hub, "seller_1")
	customer := join(hub, "customer_2")
	waitFor(t, func() bool { return hub.ConnectedClients("seller_1") == 2 })
	waitFor(t, func() bool { return hub.ConnectedClients("customer_2") == 1 })

	hub.Deliver("seller_1", []byte(`{"event":"NEW_ORDER"}`))

	assert.Equal(t, `{"event":"NEW_ORDER"}`, string(<-seller.Send))
	assert.Equal(t, `{"event":"NEW_ORDER"}`, string(<-sellerTab.Send))
	assert.Len(t, customer.Send, 0)
}

func TestBroadcastReachesEveryone(t *testing.T) {
	hub := startHub(t)
	a := join(hub, "seller_1")
	b := join(hub, "customer_2")
	waitFor(t, func() bool { return hub.ConnectedClients("seller_1") == 1 && hub.ConnectedClients("customer_2") == 1 })

	hub.Deliver(BroadcastRoom, []byte(`{"event":"MILK_UPDATED"}`))

	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := startHub(t)
	c := join(hub, "customer_9")
	waitFor(t, func() bool { return hub.ConnectedClients("customer_9") == 1 })

	hub.leave(c)
	waitFor(t, func() bool { return hub.ConnectedClients("customer_9") == 0 })

	_, open := <-c.Send
	assert.False(t, open)
}

func TestFullBufferDropsFrame(t *testing.T) {
	hub := startHub(t)
	c := join(hub, "seller_5")
	waitFor(t, func() bool { return hub.ConnectedClients("seller_5") == 1 })

	for i := 0; i < cap(c.Send)+3; i++ {
		hub.Deliver("seller_5", []byte("x"))
	}
	assert.Len(t, c.Send, cap(c.Send))
	assert.Equal(t, 1, hub.ConnectedClients("seller_5"))
}

func TestStoppedHubReleasesClients(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := join(hub, "seller_3")
	waitFor(t, func() bool { return hub.ConnectedClients("seller_3") == 1 })

	cancel()
	<-stopped

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectedClients("seller_3"))

	returned := make(chan struct{})
	go func() {
		assert.False(t, hub.join(&Client{Hub: hub, Room: "seller_3", Send: make(chan []byte, 1)}))
		hub.leave(c)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("join or leave blocked after the hub stopped")
	}
}
