// Copyright (c) 2026 Himanshu Singh
// License: MIT
// Project: Network Inventory Manager - Reactive Event Broadcaster

package reactive

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reactivex/rxgo/v2"
)

// EventType represents different types of events
type EventType string

const (
	EventHeadendCreated   EventType = "HEADEND_CREATED"
	EventFDHCreated       EventType = "FDH_CREATED"
	EventSplitterCreated  EventType = "SPLITTER_CREATED"
	EventSplitterMoved    EventType = "SPLITTER_MOVED"
	EventCustomerCreated  EventType = "CUSTOMER_CREATED"
	EventCustomerAssigned EventType = "CUSTOMER_ASSIGNED"
	EventPortReleased     EventType = "PORT_RELEASED"
	EventAssetCreated     EventType = "ASSET_CREATED"
	EventAssetAssigned    EventType = "ASSET_ASSIGNED"
	EventAssetFault       EventType = "ASSET_FAULT"
	EventAssetRetired     EventType = "ASSET_RETIRED"
	EventTaskCreated      EventType = "TASK_CREATED"
	EventTaskUpdated      EventType = "TASK_UPDATED"
)

// Event represents a system event
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	UserID    *uint       `json:"user_id,omitempty"`
}

// EventStats holds aggregated event statistics
type EventStats struct {
	Timestamp   time.Time           `json:"timestamp"`
	Total       int64               `json:"total"`
	ByType      map[EventType]int64 `json:"by_type"`
	Subscribers int                 `json:"subscribers"`
}

// EventBroadcaster manages fan-out event broadcasting to multiple SSE subscribers.
// Each subscriber gets its own channel so events are delivered to ALL clients.
type EventBroadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}

	// Stats tracking (lock-free)
	totalEvents int64
	statsByType sync.Map // EventType -> *int64
}

// NewEventBroadcaster creates a new event broadcaster
func NewEventBroadcaster() *EventBroadcaster {
	return &EventBroadcaster{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new SSE client and returns its dedicated event channel.
func (b *EventBroadcaster) Subscribe() chan Event {
	ch := make(chan Event, 256)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	count := len(b.subscribers)
	b.mu.Unlock()
	log.Printf("[EventBroadcaster] Subscriber added (total: %d)", count)
	return ch
}

// Unsubscribe removes an SSE client channel.
func (b *EventBroadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	delete(b.subscribers, ch)
	count := len(b.subscribers)
	b.mu.Unlock()
	close(ch)
	log.Printf("[EventBroadcaster] Subscriber removed (total: %d)", count)
}

// Emit sends an event to ALL subscribed clients (fan-out).
func (b *EventBroadcaster) Emit(eventType EventType, data interface{}, userID *uint) {
	event := Event{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		UserID:    userID,
	}

	// Update stats
	atomic.AddInt64(&b.totalEvents, 1)
	if ptr, ok := b.statsByType.Load(eventType); ok {
		atomic.AddInt64(ptr.(*int64), 1)
	} else {
		var n int64 = 1
		b.statsByType.Store(eventType, &n)
	}

	log.Printf("[Event] %s: %s", event.Type, event.ID)

	// Fan-out to all subscribers
	b.mu.RLock()
	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			log.Printf("[EventBroadcaster] Warning: subscriber channel full, dropping event %s", eventType)
		}
	}
	b.mu.RUnlock()
}

// GetStats returns current aggregated event statistics.
func (b *EventBroadcaster) GetStats() EventStats {
	byType := make(map[EventType]int64)
	b.statsByType.Range(func(key, value interface{}) bool {
		byType[key.(EventType)] = atomic.LoadInt64(value.(*int64))
		return true
	})

	b.mu.RLock()
	subs := len(b.subscribers)
	b.mu.RUnlock()

	return EventStats{
		Timestamp:   time.Now(),
		Total:       atomic.LoadInt64(&b.totalEvents),
		ByType:      byType,
		Subscribers: subs,
	}
}

// ToSSE subscribes to the broadcaster and returns a stream of JSON-encoded
// events ready to write to an SSE body. Optional transforms (filters, maps)
// are applied before encoding.
func (b *EventBroadcaster) ToSSE(ctx context.Context, transforms ...func(*Stream) *Stream) *Stream {
	ch := make(chan rxgo.Item, 256)
	sub := b.Subscribe()

	go func() {
		defer close(ch)
		defer b.Unsubscribe(sub)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-sub:
				if !ok {
					return
				}
				select {
				case ch <- rxgo.Of(event):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	stream := NewStream(ctx, ch, DefaultStreamConfig())
	for _, transform := range transforms {
		stream = transform(stream)
	}

	return stream.Map(func(item interface{}) interface{} {
		data, err := json.Marshal(item)
		if err != nil {
			log.Printf("[EventBroadcaster] Marshal error: %v", err)
			return []byte("{}")
		}
		return data
	})
}

// AggregateStats emits an EventStats snapshot every interval.
func (b *EventBroadcaster) AggregateStats(ctx context.Context, interval time.Duration) *Stream {
	ch := make(chan rxgo.Item)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// Emit one snapshot immediately so callers never block a full
		// interval for the first value.
		select {
		case ch <- rxgo.Of(b.GetStats()):
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- rxgo.Of(b.GetStats()):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return NewStream(ctx, ch, DefaultStreamConfig())
}

// LogEvents consumes the broadcaster and logs every event until ctx is done.
func (b *EventBroadcaster) LogEvents(ctx context.Context) {
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sub:
			if !ok {
				return
			}
			log.Printf("[EventLog] %s %s data=%v", event.Type, event.ID, event.Data)
		}
	}
}

var eventIDCounter uint64

func generateEventID() string {
	id := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%s-%d", time.Now().Format("20060102150405"), id)
}
