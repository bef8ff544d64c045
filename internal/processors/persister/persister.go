// Package persister classifies inbound broker messages and stores each
// one as a reading or an event row.
package persister

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"estufa-bridge/internal/cache"
	"estufa-bridge/internal/classifier"
	"estufa-bridge/internal/db"
	"estufa-bridge/internal/metrics"
)

var (
	ErrDecodePayload = errors.New("error decoding payload")
	ErrStore         = errors.New("error storing record")
)

type repository interface {
	InsertReading(ctx context.Context, r db.Reading) error
	InsertEvent(ctx context.Context, e db.Event) error
}

type latestCache interface {
	Set(entry cache.Entry)
}

type mirror interface {
	Publish(ctx context.Context, rec classifier.Record) error
}

type Config struct {
	Repository repository
	Devices    classifier.DeviceResolver
	// WriteTimeout bounds a single insert. Zero means no bound beyond
	// the caller's context.
	WriteTimeout time.Duration
	Metrics      *metrics.Metrics
	// Cache and Mirror are optional.
	Cache  latestCache
	Mirror mirror
	Now    func() time.Time
}

type Persister struct {
	repo         repository
	devices      classifier.DeviceResolver
	writeTimeout time.Duration
	metrics      *metrics.Metrics
	cache        latestCache
	mirror       mirror
	now          func() time.Time
}

func New(cfg Config) *Persister {
	p := &Persister{
		repo:         cfg.Repository,
		devices:      cfg.Devices,
		writeTimeout: cfg.WriteTimeout,
		metrics:      cfg.Metrics,
		cache:        cfg.Cache,
		mirror:       cfg.Mirror,
		now:          cfg.Now,
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Handle persists one message and logs any failure. A failure drops the
// message; it never stops the caller from handling the next one.
func (p *Persister) Handle(ctx context.Context, topic string, payload []byte) {
	if err := p.ProcessMessage(ctx, topic, payload); err != nil {
		slog.ErrorContext(ctx, "Error persisting message", "topic", topic, "payload", string(payload), "error", err)
	}
}

// ProcessMessage classifies the message and inserts exactly one row for it.
func (p *Persister) ProcessMessage(ctx context.Context, topic string, payload []byte) error {
	const fn = "Persister:ProcessMessage"
	rec, err := classifier.Classify(classifier.Message{Topic: topic, Payload: payload}, p.devices, p.now())
	if err != nil {
		p.countFailure(metrics.StageDecode)
		return fmt.Errorf("%s:%w:%w", fn, ErrDecodePayload, err)
	}

	entry, err := p.store(ctx, rec)
	if err != nil {
		p.countFailure(metrics.StageStore)
		return fmt.Errorf("%s:%w:%w", fn, ErrStore, err)
	}
	if p.metrics != nil {
		p.metrics.Messages.WithLabelValues(string(rec.Kind())).Inc()
	}

	// Only cache what made it to the database
	if p.cache != nil {
		p.cache.Set(entry)
	}
	slog.InfoContext(ctx, "Stored record", "kind", rec.Kind(), "device_id", rec.Device(), "name", entry.Name, "topic", topic)

	if p.mirror != nil {
		if err := p.mirror.Publish(ctx, rec); err != nil {
			slog.WarnContext(ctx, "Error mirroring record", "topic", topic, "error", err)
			if p.metrics != nil {
				p.metrics.MirrorFailures.Inc()
			}
		}
	}
	return nil
}

func (p *Persister) store(ctx context.Context, rec classifier.Record) (cache.Entry, error) {
	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.WriteDuration.Observe(time.Since(start).Seconds())
		}
	}()

	switch r := rec.(type) {
	case classifier.Reading:
		row := ReadingRow(r)
		return cache.FromReading(row), p.repo.InsertReading(ctx, row)
	case classifier.Event:
		row := EventRow(r)
		return cache.FromEvent(row), p.repo.InsertEvent(ctx, row)
	default:
		return cache.Entry{}, fmt.Errorf("unknown record kind %q", rec.Kind())
	}
}

func (p *Persister) countFailure(stage string) {
	if p.metrics != nil {
		p.metrics.Failures.WithLabelValues(stage).Inc()
	}
}

func ReadingRow(r classifier.Reading) db.Reading {
	return db.Reading{
		DeviceID:  r.DeviceID,
		Sensor:    r.Sensor,
		Value:     r.Value,
		Timestamp: r.Timestamp,
		Topic:     r.Topic,
		Raw:       r.Raw,
	}
}

func EventRow(e classifier.Event) db.Event {
	return db.Event{
		DeviceID:  e.DeviceID,
		EventType: e.EventType,
		Payload:   e.Payload,
		Topic:     e.Topic,
		Timestamp: e.Timestamp,
	}
}
