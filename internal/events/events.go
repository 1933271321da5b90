package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"shiftwatch/config"
	"shiftwatch/internal/database"
	"shiftwatch/internal/logger"

	"github.com/google/uuid"
)

const (
	ChannelSuggestions = "suggestions"
	ChannelRoster      = "roster"
	ChannelTimeOff     = "timeoff"
)

// Channels lists every channel the service publishes on.
var Channels = []string{ChannelSuggestions, ChannelRoster, ChannelTimeOff}

const (
	TypeSuggestionsGenerated = "suggestions.generated"
	TypeSuggestionStatus     = "suggestion.status"
	TypeScheduleUpdated      = "schedule.updated"
	TypeTimeOffChanged       = "timeoff.changed"
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type Handler func(Event)

// EventBus delivers events to in-process subscribers synchronously and
// mirrors them to valkey pub/sub when a cache client is configured.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[int]Handler
	nextID      int
	cache       database.CacheClient
	prefix      string
	log         logger.Logger
	closed      bool
}

func New(cache database.CacheClient, config config.Config) *EventBus {
	return &EventBus{
		subscribers: make(map[string]map[int]Handler),
		cache:       cache,
		prefix:      config.EventsChannelPrefix,
		log:         logger.New("EventBus"),
	}
}

// Subscribe registers handler for channel and returns a func removing it.
func (b *EventBus) Subscribe(channel string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subscribers[channel][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[channel], id)
	}
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Channel = channel

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return log.ErrMsg("event bus is closed")
	}
	handlers := make([]Handler, 0, len(b.subscribers[channel]))
	for _, h := range b.subscribers[channel] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	if b.cache == nil {
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "type", event.Type)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cmd := b.cache.B().Publish().Channel(b.prefix + channel).Message(string(payload)).Build()
	if err := b.cache.Do(ctx, cmd).Error(); err != nil {
		return log.Err("failed to publish event to cache", err, "channel", channel, "type", event.Type)
	}
	return nil
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.subscribers = make(map[string]map[int]Handler)
	return nil
}
