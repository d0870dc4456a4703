package ws

import (
	"context"
	"encoding/json"
	"sync"

	pkglogger "github.com/angple/arena-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "arena:notifications"

// Event represents a real-time event sent via WebSocket
type Event struct {
	Type    string      `json:"type"`    // "notification", "unread_count"
	Payload interface{} `json:"payload"` // event-specific data
}

// Hub manages WebSocket clients and fans events out to them.
// With redis every event goes through pub/sub, so each instance delivers it exactly once locally.
type Hub struct {
	// Registered clients grouped by user ID
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
}

type targetedEvent struct {
	UserID string `json:"user_id"`
	Event  *Event `json:"event"`
}

// NewHub creates a new Hub. redisClient may be nil for single-instance delivery.
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}
}

// Register adds a client to the hub. It returns false once the hub is stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.ctx.Done():
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Run starts the hub's main loop; it returns after Stop
func (h *Hub) Run() {
	defer close(h.done)

	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.drop(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) deliver(msg *targetedEvent) {
	data, err := json.Marshal(msg.Event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients[msg.UserID] {
		select {
		case client.send <- data:
		default:
			// slow consumer
			h.drop(client)
		}
	}
}

// drop must be called with mu held
func (h *Hub) drop(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
}

// SendToUser delivers an event to every connection of userID on every instance
func (h *Hub) SendToUser(userID string, event *Event) {
	msg := &targetedEvent{UserID: userID, Event: event}

	if h.redisClient != nil {
		data, err := json.Marshal(msg)
		if err == nil {
			if err := h.redisClient.Publish(h.ctx, redisPubSubChannel, data).Err(); err == nil {
				return
			}
			pkglogger.GetLogger().Warn().Err(err).Msg("ws publish failed, delivering locally")
		}
	}

	select {
	case h.broadcast <- msg:
	case <-h.ctx.Done():
	}
}

// ClientCount returns the number of open connections of userID on this instance
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// subscribeRedis listens for events published by any instance
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var te targetedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &te); err != nil {
				continue
			}
			select {
			case h.broadcast <- &te:
			case <-h.ctx.Done():
				return
			}
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop shuts the hub down and closes every client
func (h *Hub) Stop() {
	h.cancel()
	<-h.done
}
