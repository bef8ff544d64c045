// Package listener keeps a subscription to a topic filter on an MQTT
// broker and hands every delivered message to a Handler, one at a time.
package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"estufa-bridge/internal/broker"
	"estufa-bridge/internal/worker"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var (
	ErrConnect        = errors.New("broker connection failed")
	ErrSubscribe      = errors.New("subscription failed")
	ErrConnectionLost = errors.New("broker connection lost")
	ErrHandlerPanic   = errors.New("message handler panicked")
)

// subackFailure is the granted QoS a broker returns for a refused filter.
const subackFailure = 0x80

const (
	subscribeTimeout  = 10 * time.Second
	disconnectQuiesce = 250
)

type Handler interface {
	Handle(ctx context.Context, topic string, payload []byte)
}

type HandlerFunc func(ctx context.Context, topic string, payload []byte)

func (f HandlerFunc) Handle(ctx context.Context, topic string, payload []byte) {
	f(ctx, topic, payload)
}

type Config struct {
	Broker      broker.Config
	TopicFilter string
	QoS         byte
	// AutoReconnect lets paho reconnect after a lost connection. When
	// false a lost connection ends Run so a supervisor can restart the
	// process.
	AutoReconnect bool
	Handler       Handler
}

type Listener struct {
	topicFilter   string
	qos           byte
	autoReconnect bool
	handler       Handler

	client mqtt.Client
	worker *worker.Worker

	deliveries chan mqtt.Message
	fatal      chan error
	quit       chan struct{}
	quitOnce   sync.Once
}

func New(cfg Config) (*Listener, error) {
	opts, err := cfg.Broker.ClientOptions()
	if err != nil {
		return nil, err
	}
	l := newListener(cfg)
	opts.SetAutoReconnect(cfg.AutoReconnect).
		SetOnConnectHandler(l.onConnect).
		SetConnectionLostHandler(l.onConnectionLost)
	l.client = mqtt.NewClient(opts)
	return l, nil
}

func newListener(cfg Config) *Listener {
	l := &Listener{
		topicFilter:   cfg.TopicFilter,
		qos:           cfg.QoS,
		autoReconnect: cfg.AutoReconnect,
		handler:       cfg.Handler,
		deliveries:    make(chan mqtt.Message),
		fatal:         make(chan error, 1),
		quit:          make(chan struct{}),
	}
	l.worker = worker.New(worker.Config{
		Name:      "ingress-listener",
		Processor: l,
	})
	return l
}

// Run connects, then processes deliveries until ctx is done or the
// session fails. A failed connect returns ErrConnect; a lost connection
// (without auto-reconnect) or a refused subscription ends the session
// with ErrConnectionLost or ErrSubscribe.
func (l *Listener) Run(ctx context.Context) error {
	const fn = "Listener:Run"
	defer l.stop()

	slog.InfoContext(ctx, "Connecting to MQTT broker...", "topic", l.topicFilter)
	if err := waitToken(ctx, l.client.Connect()); err != nil {
		slog.ErrorContext(ctx, "MQTT connection failed", "error", err, "reason", broker.Describe(err))
		return fmt.Errorf("%s:%w:%w", fn, ErrConnect, err)
	}
	defer l.client.Disconnect(disconnectQuiesce)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sessionErr error
	watched := make(chan struct{})
	go func() {
		defer close(watched)
		select {
		case sessionErr = <-l.fatal:
			cancel()
		case <-runCtx.Done():
		}
	}()

	l.worker.Run(runCtx)
	cancel()
	<-watched

	if sessionErr != nil {
		return fmt.Errorf("%s:%w", fn, sessionErr)
	}
	return nil
}

func (l *Listener) IsConnected() bool {
	return l.client != nil && l.client.IsConnected()
}

// ProcessMessage waits for the next delivery and runs the handler on it.
func (l *Listener) ProcessMessage(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case m := <-l.deliveries:
		return l.dispatch(ctx, m)
	}
}

func (l *Listener) dispatch(ctx context.Context, m mqtt.Message) (err error) {
	const fn = "Listener:dispatch"
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s:%w: topic=%s: %v", fn, ErrHandlerPanic, m.Topic(), r)
		}
	}()
	slog.InfoContext(ctx, "Message received", "topic", m.Topic(), "payload", string(m.Payload()))
	l.handler.Handle(ctx, m.Topic(), m.Payload())
	return nil
}

// onMessage blocks the paho delivery goroutine until the worker takes
// the message, so the next delivery waits for the current handler.
func (l *Listener) onMessage(_ mqtt.Client, m mqtt.Message) {
	select {
	case l.deliveries <- m:
	case <-l.quit:
		slog.Warn("Listener stopped, dropping message", "topic", m.Topic())
	}
}

func (l *Listener) onConnect(c mqtt.Client) {
	slog.Info("MQTT connected, subscribing to topic", "topic", l.topicFilter, "qos", l.qos)
	token := c.Subscribe(l.topicFilter, l.qos, l.onMessage)
	if !token.WaitTimeout(subscribeTimeout) {
		l.fail(fmt.Errorf("%w: timed out after %s", ErrSubscribe, subscribeTimeout))
		return
	}
	if err := token.Error(); err != nil {
		slog.Error("Failed to subscribe to MQTT topic", "topic", l.topicFilter, "error", err)
		l.fail(fmt.Errorf("%w:%w", ErrSubscribe, err))
		return
	}
	granted := l.qos
	if st, ok := token.(*mqtt.SubscribeToken); ok {
		if q, found := st.Result()[l.topicFilter]; found {
			granted = q
		}
	}
	if granted == subackFailure {
		slog.Error("Broker refused subscription", "topic", l.topicFilter)
		l.fail(fmt.Errorf("%w: broker refused %s", ErrSubscribe, l.topicFilter))
		return
	}
	slog.Info("Subscription confirmed", "topic", l.topicFilter, "granted_qos", granted)
}

func (l *Listener) onConnectionLost(_ mqtt.Client, err error) {
	if l.autoReconnect {
		slog.Warn("MQTT connection lost, reconnecting", "error", err)
		return
	}
	slog.Error("MQTT connection lost", "error", err)
	l.fail(fmt.Errorf("%w:%w", ErrConnectionLost, err))
}

func (l *Listener) fail(err error) {
	select {
	case l.fatal <- err:
	default:
	}
}

func (l *Listener) stop() {
	l.quitOnce.Do(func() { close(l.quit) })
}

func waitToken(ctx context.Context, token mqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
