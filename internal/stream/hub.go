// Package stream fans route analysis events out to websocket subscribers.
package stream

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix  = "routes:"
	channelSuffix  = ":analysis"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// Hub delivers events to the subscribers of a route. With Redis configured,
// events are mirrored to the other instances sharing it.
type Hub struct {
	id      string
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	RouteID string
	Send    chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPattern)
		// Wait for the subscription so nothing published right after is missed.
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Printf("redis subscribe error: %v", err)
			_ = pubsub.Close()
		} else {
			h.pubsub = pubsub
			go h.forward(pubsub.Channel())
		}
	}
	return h
}

func (h *Hub) Register(routeID string) *Client {
	client := &Client{
		RouteID: routeID,
		Send:    make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[routeID] == nil {
		h.clients[routeID] = map[*Client]struct{}{}
	}
	h.clients[routeID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if routeClients, ok := h.clients[client.RouteID]; ok {
		delete(routeClients, client)
		if len(routeClients) == 0 {
			delete(h.clients, client.RouteID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(routeID string, payload []byte) {
	h.deliver(routeID, payload)

	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(routeID), h.envelope(payload)).Err()
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// Subscribers reports how many local clients follow a route.
func (h *Hub) Subscribers(routeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[routeID])
}

// Close stops mirroring events from Redis.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(routeID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[routeID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) forward(messages <-chan *redis.Message) {
	for msg := range messages {
		origin, payload, ok := openEnvelope(msg.Payload)
		if !ok || origin == h.id {
			continue
		}
		h.deliver(routeIDFromChannel(msg.Channel), payload)
	}
}

// envelope tags a payload with the publishing hub so it skips its own echo.
func (h *Hub) envelope(payload []byte) []byte {
	out := make([]byte, 0, len(h.id)+1+len(payload))
	out = append(out, h.id...)
	out = append(out, '\n')
	return append(out, payload...)
}

func openEnvelope(msg string) (origin string, payload []byte, ok bool) {
	i := strings.IndexByte(msg, '\n')
	if i <= 0 {
		return "", nil, false
	}
	return msg[:i], []byte(msg[i+1:]), true
}

func redisChannel(routeID string) string {
	return channelPrefix + routeID + channelSuffix
}

func routeIDFromChannel(ch string) string {
	// routes:{id}:analysis
	if len(ch) <= len(channelPrefix)+len(channelSuffix) ||
		!strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
