// Package probe checks end-to-end broker connectivity: it connects,
// subscribes to a test topic, publishes a batch of messages and reports
// what came back.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"estufa-bridge/internal/broker"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrConnect   = errors.New("probe connection failed")
	ErrSubscribe = errors.New("probe subscription failed")
	ErrPublish   = errors.New("probe publish failed")
)

var DefaultPayloads = []string{"teste", "hello world"}

type Config struct {
	Broker   broker.Config
	Topic    string
	QoS      byte
	Count    int
	Interval time.Duration
	// Payloads are published in turn. Defaults to DefaultPayloads.
	Payloads []string
	// JSON wraps each payload as {"message","timestamp"}.
	JSON bool
	// Linger keeps the subscription open after the last publish.
	Linger time.Duration

	NewClient func(*mqtt.ClientOptions) mqtt.Client
	Now       func() time.Time
}

type Received struct {
	Topic   string
	Payload string
	At      time.Time
}

type Report struct {
	URL       string
	Connected bool
	// Reason and Hint describe a failed connection.
	Reason    string
	Hint      string
	Published int
	Received  []Received
}

// Run performs one probe. The report is filled in as far as the probe
// got, even when an error is returned.
func Run(ctx context.Context, cfg Config) (Report, error) {
	const fn = "Probe:Run"
	cfg = withDefaults(cfg)
	report := Report{URL: cfg.Broker.URL()}

	opts, err := cfg.Broker.ClientOptions()
	if err != nil {
		report.Reason = err.Error()
		return report, fmt.Errorf("%s:%w:%w", fn, ErrConnect, err)
	}
	client := cfg.NewClient(opts)

	slog.InfoContext(ctx, "Connecting to MQTT broker...", "url", report.URL, "client_id", cfg.Broker.ClientID)
	if err := waitToken(ctx, client.Connect()); err != nil {
		report.Reason = err.Error()
		report.Hint = broker.Describe(err)
		return report, fmt.Errorf("%s:%w:%w", fn, ErrConnect, err)
	}
	report.Connected = true
	defer client.Disconnect(250)

	var mu sync.Mutex
	var received []Received
	onMessage := func(_ mqtt.Client, m mqtt.Message) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, Received{Topic: m.Topic(), Payload: string(m.Payload()), At: cfg.Now()})
	}
	snapshot := func() []Received {
		mu.Lock()
		defer mu.Unlock()
		return append([]Received(nil), received...)
	}

	if err := waitToken(ctx, client.Subscribe(cfg.Topic, cfg.QoS, onMessage)); err != nil {
		return report, fmt.Errorf("%s:%w:%w", fn, ErrSubscribe, err)
	}
	slog.InfoContext(ctx, "Subscribed", "topic", cfg.Topic, "qos", cfg.QoS)

	for i := 0; i < cfg.Count; i++ {
		payload, err := cfg.payload(i)
		if err != nil {
			return report, fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
		}
		if err := waitToken(ctx, client.Publish(cfg.Topic, cfg.QoS, false, payload)); err != nil {
			report.Received = snapshot()
			return report, fmt.Errorf("%s:%w:%w", fn, ErrPublish, err)
		}
		report.Published++
		slog.InfoContext(ctx, "Published", "n", i+1, "topic", cfg.Topic, "payload", string(payload))

		if i < cfg.Count-1 && !sleep(ctx, cfg.Interval) {
			report.Received = snapshot()
			return report, ctx.Err()
		}
	}

	sleep(ctx, cfg.Linger)
	report.Received = snapshot()
	return report, nil
}

func withDefaults(cfg Config) Config {
	if len(cfg.Payloads) == 0 {
		cfg.Payloads = DefaultPayloads
	}
	if cfg.NewClient == nil {
		cfg.NewClient = mqtt.NewClient
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return cfg
}

type jsonPayload struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

func (cfg Config) payload(i int) ([]byte, error) {
	msg := cfg.Payloads[i%len(cfg.Payloads)]
	if !cfg.JSON {
		return []byte(msg), nil
	}
	return json.Marshal(jsonPayload{Message: msg, Timestamp: cfg.Now().Unix()})
}

func (r Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Broker: %s\n", r.URL)
	if !r.Connected {
		fmt.Fprintf(w, "Connection failed: %s\n", r.Reason)
		if r.Hint != "" {
			fmt.Fprintf(w, "Hint: %s\n", r.Hint)
		}
		return
	}
	fmt.Fprintf(w, "Published: %d\n", r.Published)
	fmt.Fprintf(w, "Received:  %d\n", len(r.Received))
	for _, m := range r.Received {
		fmt.Fprintf(w, "  [%s] %s: %s\n", m.At.Format(time.RFC3339), m.Topic, m.Payload)
	}
}

// sleep reports false when ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func waitToken(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
