package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"estufa-bridge/internal/classifier"
	"estufa-bridge/internal/db"
)

var ErrHydrate = errors.New("cache hydration failed")

type Key struct {
	Kind     classifier.Kind
	DeviceID string
	Name     string
}

// Entry is the most recent record seen for a Key. Value is set for
// readings, Payload for events.
type Entry struct {
	Kind      classifier.Kind `json:"kind"`
	DeviceID  string          `json:"device_id"`
	Name      string          `json:"name"`
	Topic     string          `json:"topic"`
	Value     *float64        `json:"value,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"ts"`
}

func (e Entry) Key() Key {
	return Key{Kind: e.Kind, DeviceID: e.DeviceID, Name: e.Name}
}

type Loader interface {
	LoadLatestReadings(ctx context.Context) ([]db.Reading, error)
	LoadLatestEvents(ctx context.Context) ([]db.Event, error)
}

type LatestCache struct {
	mu    sync.RWMutex
	store map[Key]Entry
}

func New() *LatestCache {
	return &LatestCache{
		store: make(map[Key]Entry),
	}
}

// Set keeps the entry unless a newer one is already stored.
func (c *LatestCache) Set(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if current, exists := c.store[entry.Key()]; exists && current.Timestamp.After(entry.Timestamp) {
		return
	}
	c.store[entry.Key()] = entry
}

// Snapshot returns all entries ordered by kind, device and name.
func (c *LatestCache) Snapshot() []Entry {
	c.mu.RLock()
	entries := make([]Entry, 0, len(c.store))
	for _, entry := range c.store {
		entries = append(entries, entry)
	}
	c.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.DeviceID != b.DeviceID {
			return a.DeviceID < b.DeviceID
		}
		return a.Name < b.Name
	})
	return entries
}

func (c *LatestCache) Dump() {
	for _, entry := range c.Snapshot() {
		slog.Info("Cache Dump", "kind", entry.Kind, "device_id", entry.DeviceID, "name", entry.Name, "ts", entry.Timestamp)
	}
}

// Hydrate seeds the cache with the latest stored rows. Blocking.
func (c *LatestCache) Hydrate(ctx context.Context, loader Loader) error {
	const fn = "Cache:Hydrate"
	slog.InfoContext(ctx, "Starting cache hydration...")

	readings, err := loader.LoadLatestReadings(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrHydrate, err)
	}
	events, err := loader.LoadLatestEvents(ctx)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrHydrate, err)
	}

	for _, r := range readings {
		c.Set(FromReading(r))
	}
	for _, e := range events {
		c.Set(FromEvent(e))
	}
	slog.InfoContext(ctx, "Cache hydration complete", "readings", len(readings), "events", len(events))
	return nil
}

func FromReading(r db.Reading) Entry {
	value := r.Value
	return Entry{
		Kind:      classifier.KindReading,
		DeviceID:  r.DeviceID,
		Name:      r.Sensor,
		Topic:     r.Topic,
		Value:     &value,
		Timestamp: r.Timestamp,
	}
}

func FromEvent(e db.Event) Entry {
	return Entry{
		Kind:      classifier.KindEvent,
		DeviceID:  e.DeviceID,
		Name:      e.EventType,
		Topic:     e.Topic,
		Payload:   e.Payload,
		Timestamp: e.Timestamp,
	}
}
