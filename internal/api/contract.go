package api

import "encoding/json"

type Reading struct {
	DeviceID  string          `json:"deviceID"`
	Sensor    string          `json:"sensor"`
	Value     float64         `json:"value"`
	Topic     string          `json:"topic"`
	Raw       json.RawMessage `json:"raw"`
	Timestamp string          `json:"timestamp"`
}

type Event struct {
	DeviceID  string          `json:"deviceID"`
	EventType string          `json:"eventType"`
	Topic     string          `json:"topic"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp string          `json:"timestamp"`
}

type GetReadingsResponse struct {
	Readings []Reading `json:"readings"`
}

type GetEventsResponse struct {
	Events []Event `json:"events"`
}

// LatestEntry is the newest stored value for one sensor or event type.
// Value is set for readings, Payload for events.
type LatestEntry struct {
	Kind      string          `json:"kind"`
	DeviceID  string          `json:"deviceID"`
	Name      string          `json:"name"`
	Topic     string          `json:"topic"`
	Value     *float64        `json:"value,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type GetLatestResponse struct {
	Entries []LatestEntry `json:"entries"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Broker   string `json:"broker"`
}
