// Package classifier turns an inbound broker message into exactly one
// storable record: a numeric Reading or an opaque Event. It performs no
// I/O.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrDecodePayload = errors.New("payload is not valid UTF-8 text")

type Kind string

const (
	KindReading Kind = "reading"
	KindEvent   Kind = "event"
)

// Message is one delivery from the broker. It lives only for the
// duration of a single classify-and-persist pass.
type Message struct {
	Topic   string
	Payload []byte
}

// Record is either a Reading or an Event.
type Record interface {
	Kind() Kind
	Device() string
	isRecord()
}

type Reading struct {
	DeviceID  string
	Sensor    string
	Value     float64
	Timestamp time.Time
	Topic     string
	Raw       json.RawMessage
}

func (Reading) Kind() Kind       { return KindReading }
func (r Reading) Device() string { return r.DeviceID }
func (Reading) isRecord()        {}

type Event struct {
	DeviceID  string
	EventType string
	Payload   json.RawMessage
	Topic     string
	Timestamp time.Time
}

func (Event) Kind() Kind       { return KindEvent }
func (e Event) Device() string { return e.DeviceID }
func (Event) isRecord()        {}

type valueEnvelope[T any] struct {
	Value T `json:"value"`
}

// Classify decodes the payload and builds the matching record. The only
// failure is an undecodable payload; every decodable text is either a
// Reading or an Event.
func Classify(msg Message, devices DeviceResolver, now time.Time) (Record, error) {
	const fn = "Classify"
	text, err := DecodePayload(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", fn, err)
	}

	name := DeriveName(msg.Topic)
	deviceID := devices.ResolveDevice(msg.Topic)
	ts := now.UTC()

	if value, ok := ParseNumeric(text); ok {
		raw, _ := json.Marshal(valueEnvelope[float64]{Value: value})
		return Reading{
			DeviceID:  deviceID,
			Sensor:    name,
			Value:     value,
			Timestamp: ts,
			Topic:     msg.Topic,
			Raw:       raw,
		}, nil
	}

	payload, _ := json.Marshal(valueEnvelope[string]{Value: text})
	return Event{
		DeviceID:  deviceID,
		EventType: name,
		Payload:   payload,
		Topic:     msg.Topic,
		Timestamp: ts,
	}, nil
}

// DecodePayload returns the payload as text with surrounding whitespace
// removed.
func DecodePayload(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", ErrDecodePayload
	}
	return strings.TrimSpace(string(payload)), nil
}

// ParseNumeric accepts plain decimal and scientific notation only. Hex
// floats, infinities, NaN and values that overflow float64 are rejected.
func ParseNumeric(s string) (float64, bool) {
	if s == "" || hasHexPrefix(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func hasHexPrefix(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// DeriveName returns the last path segment of a topic, or the topic
// itself when it has no separator.
func DeriveName(topic string) string {
	i := strings.LastIndexByte(topic, '/')
	if i < 0 {
		return topic
	}
	return topic[i+1:]
}
