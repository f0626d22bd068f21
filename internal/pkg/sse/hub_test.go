package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllTopicSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, unsub1 := hub.Subscribe(TopicDashboardCounters)
	ch2, unsub2 := hub.Subscribe(TopicDashboardCounters)
	defer unsub1()
	defer unsub2()

	hub.Publish(TopicDashboardCounters, "counters_updated", map[string]int{"present": 12})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "counters_updated", ev.Event)
			assert.Equal(t, TopicDashboardCounters, ev.Topic)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_TopicsAreIsolated(t *testing.T) {
	hub := NewHub()

	counters, unsubCounters := hub.Subscribe(TopicDashboardCounters)
	defer unsubCounters()

	hub.Publish(TopicAnnouncements, "announcement", "all hands at 5")

	select {
	case ev := <-counters:
		t.Fatalf("counters subscriber received foreign event %q", ev.Event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(TopicAnnouncements)
	require.Equal(t, 1, hub.SubscriberCount(TopicAnnouncements))

	unsubscribe()
	assert.Equal(t, 0, hub.SubscriberCount(TopicAnnouncements))

	_, open := <-ch
	assert.False(t, open, "channel should be closed after unsubscribe")

	// Unsubscribing twice must not panic.
	unsubscribe()
}

func TestHub_PublishToUsers(t *testing.T) {
	hub := NewHub()

	alice, unsubAlice := hub.Subscribe(UserTopic("u-1"))
	defer unsubAlice()
	bob, unsubBob := hub.Subscribe(UserTopic("u-2"))
	defer unsubBob()

	hub.PublishToUsers([]string{"u-1", "u-2"}, "notification", "leave approved")

	for _, ch := range []chan Event{alice, bob} {
		select {
		case ev := <-ch:
			assert.Equal(t, "notification", ev.Event)
		case <-time.After(time.Second):
			t.Fatal("user did not receive notification")
		}
	}
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()

	_, unsubscribe := hub.Subscribe(TopicDashboardCounters)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		// More events than the channel buffer holds; extra events drop.
		for i := 0; i < 100; i++ {
			hub.Publish(TopicDashboardCounters, "counters_updated", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
