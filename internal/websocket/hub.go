package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"milk-platform-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// BroadcastRoom addresses every connected client.
	BroadcastRoom = "*"
	clusterTopic  = "cluster_events"
)

type clusterMessage struct {
	Origin     string          `json:"origin"`
	TargetRoom string          `json:"target_room"`
	Message    json.RawMessage `json:"message"`
}

type Hub struct {
	// room -> clients (one user may hold several connections)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client
	// closed when Run returns so late joins and leaves never block.
	done chan struct{}

	mu sync.RWMutex

	// Redis relays frames to other instances; nil runs single-instance.
	rdb *redis.Client
	// instanceId lets an instance ignore its own relayed frames.
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer h.stop()
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Room] = append(h.clients[client.Room], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"room": client.Room})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// stop closes every local connection's send channel; each writePump then
// sends a close frame and the connection shuts down.
func (h *Hub) stop() {
	close(h.done)

	h.mu.Lock()
	defer h.mu.Unlock()
	for room, clients := range h.clients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.clients, room)
	}
}

// join hands client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.Room]
	for i, c := range clients {
		if c == client {
			h.clients[client.Room] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.Room]) == 0 {
		delete(h.clients, client.Room)
	}
}

// Deliver sends frame to the room on this instance and relays it to the others.
func (h *Hub) Deliver(room string, frame []byte) {
	h.deliverLocal(room, frame)

	if h.rdb == nil {
		return
	}
	payload, err := json.Marshal(clusterMessage{Origin: h.instanceId, TargetRoom: room, Message: frame})
	if err != nil {
		return
	}
	if err := h.rdb.Publish(context.Background(), clusterTopic, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis relay failed", map[string]interface{}{"room": room, "error": err.Error()})
	}
}

// ConnectedClients counts local connections in room.
func (h *Hub) ConnectedClients(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[room])
}

func (h *Hub) deliverLocal(room string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room == BroadcastRoom {
		for _, clients := range h.clients {
			h.push(clients, frame)
		}
		return
	}
	h.push(h.clients[room], frame)
}

// push never blocks; a slow client loses the frame rather than stalling the hub.
func (h *Hub) push(clients []*Client, frame []byte) {
	for _, client := range clients {
		select {
		case client.Send <- frame:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping frame", map[string]interface{}{"room": client.Room})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterTopic)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis message parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliverLocal(payload.TargetRoom, payload.Message)
		}
	}
}
