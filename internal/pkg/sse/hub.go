package sse

import (
	"sync"
)

// Well-known topics. Dashboard counters and announcements are broadcast
// topics; per-user notification topics are derived with UserTopic.
const (
	TopicDashboardCounters = "dashboard:counters"
	TopicAnnouncements     = "announcements"
)

// UserTopic returns the private notification topic for a user.
func UserTopic(userID string) string {
	return "user:" + userID
}

// Event is one message published to a topic.
type Event struct {
	Topic string
	Event string
	Data  interface{}
}

// Hub is an in-process topic-based publish/subscribe fan-out. It replaces an
// external realtime store: live dashboard counters, announcements and user
// notifications all flow through here to SSE connections.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber on a topic and returns the event channel
// and an unsubscribe function. The channel is buffered; slow consumers drop
// events rather than block publishers.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[topic][ch]; !ok {
			return
		}
		delete(h.subscribers[topic], ch)
		close(ch)
		if len(h.subscribers[topic]) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, unsubscribe
}

// Publish sends an event to all subscribers of a topic.
func (h *Hub) Publish(topic string, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[topic] {
		select {
		case ch <- Event{Topic: topic, Event: event, Data: data}:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}

// PublishToUsers sends an event to the private topics of multiple users.
func (h *Hub) PublishToUsers(userIDs []string, event string, data interface{}) {
	for _, userID := range userIDs {
		h.Publish(UserTopic(userID), event, data)
	}
}

// SubscriberCount returns the number of active subscribers on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of active subscribers across all topics.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
