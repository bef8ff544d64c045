// Package brokertest provides an in-memory stand-in for a paho MQTT
// client.
package brokertest

import (
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Token is an already completed token.
type Token struct {
	err  error
	done chan struct{}
}

func NewToken(err error) *Token {
	done := make(chan struct{})
	close(done)
	return &Token{err: err, done: done}
}

func (t *Token) Wait() bool                     { return true }
func (t *Token) WaitTimeout(time.Duration) bool { return true }
func (t *Token) Done() <-chan struct{}          { return t.done }
func (t *Token) Error() error                   { return t.err }

type Message struct {
	TopicName string
	Body      []byte
	QoS       byte
}

func (m Message) Duplicate() bool   { return false }
func (m Message) Qos() byte         { return m.QoS }
func (m Message) Retained() bool    { return false }
func (m Message) Topic() string     { return m.TopicName }
func (m Message) MessageID() uint16 { return 0 }
func (m Message) Payload() []byte   { return m.Body }
func (m Message) Ack()              {}

type Published struct {
	Topic   string
	QoS     byte
	Payload []byte
}

// Client records calls and routes published messages back to matching
// subscriptions when Echo is set. Methods it does not override panic.
type Client struct {
	mqtt.Client

	ConnectErr   error
	SubscribeErr error
	PublishErr   error
	Echo         bool
	// OnConnect runs after a successful Connect, like paho's handler.
	OnConnect mqtt.OnConnectHandler

	mu            sync.Mutex
	connected     bool
	disconnected  bool
	subscriptions map[string]mqtt.MessageHandler
	qos           map[string]byte
	published     []Published
}

func (c *Client) Connect() mqtt.Token {
	if c.ConnectErr != nil {
		return NewToken(c.ConnectErr)
	}
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	if c.OnConnect != nil {
		c.OnConnect(c)
	}
	return NewToken(nil)
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.disconnected = true
}

func (c *Client) Disconnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnected
}

func (c *Client) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	if c.SubscribeErr != nil {
		return NewToken(c.SubscribeErr)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subscriptions == nil {
		c.subscriptions = make(map[string]mqtt.MessageHandler)
		c.qos = make(map[string]byte)
	}
	c.subscriptions[topic] = callback
	c.qos[topic] = qos
	return NewToken(nil)
}

// Subscription reports whether filter is subscribed and at which QoS.
func (c *Client) Subscription(filter string) (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.subscriptions[filter]
	return c.qos[filter], ok
}

func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	if c.PublishErr != nil {
		return NewToken(c.PublishErr)
	}
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	case string:
		body = []byte(p)
	}
	c.mu.Lock()
	c.published = append(c.published, Published{Topic: topic, QoS: qos, Payload: body})
	c.mu.Unlock()
	if c.Echo {
		c.Deliver(topic, body)
	}
	return NewToken(nil)
}

func (c *Client) Published() []Published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Published(nil), c.published...)
}

// Deliver invokes every subscription whose filter matches topic.
func (c *Client) Deliver(topic string, payload []byte) {
	c.mu.Lock()
	var handlers []mqtt.MessageHandler
	for filter, handler := range c.subscriptions {
		if Match(filter, topic) {
			handlers = append(handlers, handler)
		}
	}
	c.mu.Unlock()
	for _, handler := range handlers {
		handler(c, Message{TopicName: topic, Body: payload})
	}
}

// Match implements MQTT filter matching for '+' and '#'.
func Match(filter, topic string) bool {
	f := strings.Split(filter, "/")
	t := strings.Split(topic, "/")
	for i, part := range f {
		if part == "#" {
			return true
		}
		if i >= len(t) {
			return false
		}
		if part != "+" && part != t[i] {
			return false
		}
	}
	return len(f) == len(t)
}
