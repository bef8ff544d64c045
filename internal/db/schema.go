package db

import (
	"encoding/json"
	"time"
)

type Reading struct {
	DeviceID  string          `db:"device_id" json:"device_id"`
	Sensor    string          `db:"sensor" json:"sensor"`
	Value     float64         `db:"value" json:"value"`
	Timestamp time.Time       `db:"ts" json:"ts"`
	Topic     string          `db:"topic" json:"topic"`
	Raw       json.RawMessage `db:"raw" json:"raw"`
}

type Event struct {
	DeviceID  string          `db:"device_id" json:"device_id"`
	EventType string          `db:"event_type" json:"event_type"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	Topic     string          `db:"topic" json:"topic"`
	Timestamp time.Time       `db:"ts" json:"ts"`
}
