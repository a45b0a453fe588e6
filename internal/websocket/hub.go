package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"adorder-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	clusterChannel = "cluster_events"
	targetAdmins   = "admins"
)

// Envelope is the frame pushed to websocket clients.
type Envelope struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub tracks connected clients per user. Frames are also published on Redis
// so that other instances can deliver to their own clients.
type Hub struct {
	id      string
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb    *redis.Client
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID, "admin": client.IsAdmin})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
	}
}

// Connected reports how many sockets a user currently holds on this instance.
func (h *Hub) Connected(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// SendToUser delivers to every connection of one user.
func (h *Hub) SendToUser(userID uuid.UUID, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.deliverLocal(data, func(c *Client) bool { return c.UserID == userID })
	h.fanOut(userID.String(), data)
}

// SendToAdmins delivers to every connected admin.
func (h *Hub) SendToAdmins(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	h.deliverLocal(data, func(c *Client) bool { return c.IsAdmin })
	h.fanOut(targetAdmins, data)
}

func (h *Hub) deliverLocal(data []byte, match func(*Client) bool) {
	var stale []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if !match(client) {
				continue
			}
			select {
			case client.Send <- data:
			default:
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": client.UserID})
		h.remove(client)
	}
}

func (h *Hub) fanOut(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterMessage{Origin: h.id, TargetUserID: target, Message: data})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.id {
			continue
		}

		if payload.TargetUserID == targetAdmins {
			h.deliverLocal(payload.Message, func(c *Client) bool { return c.IsAdmin })
			continue
		}
		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliverLocal(payload.Message, func(c *Client) bool { return c.UserID == uid })
	}
}
