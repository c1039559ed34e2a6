package services

import (
	"log"
	"sync"

	"ember_server/models"
)

// EventBus is the in-process publication point for match-created and
// message-sent events. Subscribers run synchronously in publication order;
// a panicking subscriber is recovered so it cannot take down the caller.
type EventBus struct {
	mu           sync.RWMutex
	matchCreated []func(models.MatchCreatedEvent)
	messageSent  []func(models.MessageSentEvent)
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (b *EventBus) SubscribeMatchCreated(fn func(models.MatchCreatedEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.matchCreated = append(b.matchCreated, fn)
}

func (b *EventBus) SubscribeMessageSent(fn func(models.MessageSentEvent)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messageSent = append(b.messageSent, fn)
}

func (b *EventBus) PublishMatchCreated(event models.MatchCreatedEvent) {
	b.mu.RLock()
	subscribers := b.matchCreated
	b.mu.RUnlock()

	for _, fn := range subscribers {
		safeInvoke(func() { fn(event) })
	}
}

func (b *EventBus) PublishMessageSent(event models.MessageSentEvent) {
	b.mu.RLock()
	subscribers := b.messageSent
	b.mu.RUnlock()

	for _, fn := range subscribers {
		safeInvoke(func() { fn(event) })
	}
}

func safeInvoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Event subscriber panicked: %v", r)
		}
	}()
	fn()
}
