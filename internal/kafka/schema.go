package kafka

// StructuredConnectRecord is the Kafka Connect JSON envelope: a schema
// describing the payload followed by the payload itself, so a JDBC sink
// can rebuild the row without a registry.
type StructuredConnectRecord struct {
	Schema  Schema `json:"schema"`
	Payload any    `json:"payload"`
}

type Schema struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Fields   []Field `json:"fields"`
	Optional bool    `json:"optional"`
}

type Field struct {
	Field string `json:"field"`
	Type  string `json:"type"`
}

type ReadingPayload struct {
	DeviceID  string  `json:"device_id"`
	Sensor    string  `json:"sensor"`
	Value     float64 `json:"value"`
	Timestamp int64   `json:"ts"`
	Topic     string  `json:"topic"`
	Raw       string  `json:"raw"`
}

type EventPayload struct {
	DeviceID  string `json:"device_id"`
	EventType string `json:"event_type"`
	Payload   string `json:"payload"`
	Topic     string `json:"topic"`
	Timestamp int64  `json:"ts"`
}

var ReadingSchema = Schema{
	Type:     "struct",
	Name:     "Reading",
	Optional: false,
	Fields: []Field{
		{Field: "device_id", Type: "string"},
		{Field: "sensor", Type: "string"},
		{Field: "value", Type: "double"},
		{Field: "ts", Type: "int64"},
		{Field: "topic", Type: "string"},
		{Field: "raw", Type: "string"},
	},
}

var EventSchema = Schema{
	Type:     "struct",
	Name:     "Event",
	Optional: false,
	Fields: []Field{
		{Field: "device_id", Type: "string"},
		{Field: "event_type", Type: "string"},
		{Field: "payload", Type: "string"},
		{Field: "topic", Type: "string"},
		{Field: "ts", Type: "int64"},
	},
}
