package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans collection-progress events out to websocket subscribers,
// and through redis pub/sub to subscribers on other instances.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	RegionKey string
	Send      chan []byte
}

// progressPattern matches every region's progress channel.
const progressPattern = "collect:*:progress"

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		pubsub := redisClient.PSubscribe(context.Background(), progressPattern)
		go h.forward(pubsub)
	}
	return h
}

func (h *Hub) Register(regionKey string) *Client {
	client := &Client{
		RegionKey: regionKey,
		Send:      make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[regionKey] == nil {
		h.clients[regionKey] = map[*Client]struct{}{}
	}
	h.clients[regionKey][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if regionClients, ok := h.clients[client.RegionKey]; ok {
		delete(regionClients, client)
		if len(regionClients) == 0 {
			delete(h.clients, client.RegionKey)
		}
	}
	close(client.Send)
}

// Broadcast routes a progress event through redis when available, so
// subscribers on every instance see it exactly once. Without redis, or
// when the publish fails, the event is delivered to local subscribers
// directly.
func (h *Hub) Broadcast(regionKey string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(regionKey), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error, delivering locally: %v", err)
	}

	h.deliver(regionKey, payload)
}

func (h *Hub) deliver(regionKey string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[regionKey]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

// forward pumps pattern-subscribed redis messages to local websocket
// subscribers. The concrete region key comes from the message channel.
func (h *Hub) forward(pubsub *redis.PubSub) {
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(regionKeyFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(regionKey string) string {
	return "collect:" + regionKey + ":progress"
}

func regionKeyFromChannel(ch string) string {
	// collect:{region}:progress
	const prefix = "collect:"
	const suffix = ":progress"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
