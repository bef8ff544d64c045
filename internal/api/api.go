package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"estufa-bridge/internal/cache"
	"estufa-bridge/internal/db"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultWindow = 24 * time.Hour
	pingTimeout   = 2 * time.Second
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusUp       = "up"
	statusDown     = "down"
)

type repository interface {
	LoadReadingsBetween(ctx context.Context, sensor string, start, end time.Time) ([]db.Reading, error)
	LoadEventsBetween(ctx context.Context, eventType string, start, end time.Time) ([]db.Event, error)
	Ping(ctx context.Context) error
}

type latestCache interface {
	Snapshot() []cache.Entry
}

type connectionState interface {
	IsConnected() bool
}

type API struct {
	db       repository
	cache    latestCache
	broker   connectionState
	gatherer prometheus.Gatherer
	now      func() time.Time
}

type Config struct {
	DB     repository
	Cache  latestCache
	Broker connectionState
	// Gatherer backs /metrics. Defaults to the global registry.
	Gatherer prometheus.Gatherer
}

func New(cfg Config) *API {
	a := &API{
		db:       cfg.DB,
		cache:    cfg.Cache,
		broker:   cfg.Broker,
		gatherer: cfg.Gatherer,
		now:      time.Now,
	}
	if a.gatherer == nil {
		a.gatherer = prometheus.DefaultGatherer
	}
	return a
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", a.GetHealth)
	r.Get("/readings/{sensor}", a.GetReadings)
	r.Get("/events/{event_type}", a.GetEvents)
	r.Get("/latest", a.GetLatest)
	r.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	return r
}

func (a *API) GetReadings(w http.ResponseWriter, r *http.Request) {
	sensor := chi.URLParam(r, "sensor")
	start, end, ok := a.parseWindow(w, r)
	if !ok {
		return
	}

	readings, err := a.db.LoadReadingsBetween(r.Context(), sensor, start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error loading readings", "sensor", sensor, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := GetReadingsResponse{Readings: make([]Reading, 0, len(readings))}
	for _, reading := range readings {
		resp.Readings = append(resp.Readings, Reading{
			DeviceID:  reading.DeviceID,
			Sensor:    reading.Sensor,
			Value:     reading.Value,
			Topic:     reading.Topic,
			Raw:       reading.Raw,
			Timestamp: formatTime(reading.Timestamp),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) GetEvents(w http.ResponseWriter, r *http.Request) {
	eventType := chi.URLParam(r, "event_type")
	start, end, ok := a.parseWindow(w, r)
	if !ok {
		return
	}

	events, err := a.db.LoadEventsBetween(r.Context(), eventType, start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "Error loading events", "event_type", eventType, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := GetEventsResponse{Events: make([]Event, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, Event{
			DeviceID:  event.DeviceID,
			EventType: event.EventType,
			Topic:     event.Topic,
			Payload:   event.Payload,
			Timestamp: formatTime(event.Timestamp),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) GetLatest(w http.ResponseWriter, r *http.Request) {
	entries := a.cache.Snapshot()
	resp := GetLatestResponse{Entries: make([]LatestEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, LatestEntry{
			Kind:      string(e.Kind),
			DeviceID:  e.DeviceID,
			Name:      e.Name,
			Topic:     e.Topic,
			Value:     e.Value,
			Payload:   e.Payload,
			Timestamp: formatTime(e.Timestamp),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetHealth answers 200 only when both the database and the broker
// session are up.
func (a *API) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := HealthResponse{Status: statusOK, Database: statusUp, Broker: statusUp}
	if err := a.db.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "Health check: database unreachable", "error", err)
		resp.Database = statusDown
		resp.Status = statusDegraded
	}
	if !a.broker.IsConnected() {
		resp.Broker = statusDown
		resp.Status = statusDegraded
	}

	code := http.StatusOK
	if resp.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// parseWindow reads the start and end query bounds. A missing end means
// now, a missing start means one day before end.
func (a *API) parseWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	end := a.now().UTC()
	if endStr != "" {
		parsed, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			http.Error(w, "invalid end timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}
	start := end.Add(-defaultWindow)
	if startStr != "" {
		parsed, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			http.Error(w, "invalid start timestamp", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}
	if end.Before(start) {
		http.Error(w, "end is before start", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
