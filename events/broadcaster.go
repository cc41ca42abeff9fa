// Package events fans out store change notifications to subscribers such
// as the websocket endpoint.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shamanec/GADS-emulator-manager/models"
)

const subscriberBuffer = 32

type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]chan models.Event
	now         func() time.Time
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan models.Event),
		now:         time.Now,
	}
}

// Subscribe returns the event channel and a function that unsubscribes and closes it
func (b *Broadcaster) Subscribe() (<-chan models.Event, func()) {
	id := uuid.New().String()
	ch := make(chan models.Event, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks, a subscriber with a full buffer misses the event
func (b *Broadcaster) Publish(source, kind, detail string) {
	event := models.Event{
		Source: source,
		Kind:   kind,
		Detail: detail,
		Time:   b.now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
