package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"estufa-bridge/internal/classifier"

	kafkago "github.com/segmentio/kafka-go"
)

var (
	ErrWriteMessage  = errors.New("error writing message")
	ErrMarshalRecord = errors.New("error marshalling record")
	ErrUnknownRecord = errors.New("unknown record kind")
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type Config struct {
	Brokers []string
	Topic   string
}

// Mirror republishes persisted records to a Kafka topic keyed by device.
type Mirror struct {
	writer Writer
}

func New(cfg Config) *Mirror {
	return &Mirror{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
		},
	}
}

func (m *Mirror) Close(ctx context.Context) {
	slog.InfoContext(ctx, "Closing mirror resources...")
	m.writer.Close()
}

func (m *Mirror) Publish(ctx context.Context, rec classifier.Record) error {
	const fn = "Mirror:Publish"
	record, err := NewRecord(rec)
	if err != nil {
		return fmt.Errorf("%s:%w", fn, err)
	}
	out, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMarshalRecord, err)
	}
	err = m.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(rec.Device()), Value: out})
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrWriteMessage, err)
	}
	slog.DebugContext(ctx, "Mirrored record", "device_id", rec.Device(), "kind", rec.Kind())
	return nil
}

func NewRecord(rec classifier.Record) (StructuredConnectRecord, error) {
	switch r := rec.(type) {
	case classifier.Reading:
		return StructuredConnectRecord{
			Schema: ReadingSchema,
			Payload: ReadingPayload{
				DeviceID:  r.DeviceID,
				Sensor:    r.Sensor,
				Value:     r.Value,
				Timestamp: r.Timestamp.UnixMilli(),
				Topic:     r.Topic,
				Raw:       string(r.Raw),
			},
		}, nil
	case classifier.Event:
		return StructuredConnectRecord{
			Schema: EventSchema,
			Payload: EventPayload{
				DeviceID:  r.DeviceID,
				EventType: r.EventType,
				Payload:   string(r.Payload),
				Topic:     r.Topic,
				Timestamp: r.Timestamp.UnixMilli(),
			},
		}, nil
	}
	return StructuredConnectRecord{}, ErrUnknownRecord
}
