package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated = "OrderCreated"
	EventOrderUpdated = "OrderUpdated"
	EventOrderDeleted = "OrderDeleted"
)

// Envelope wraps every order event published to Kafka.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"` // RFC3339
	Producer      string          `json:"producer"`    // e.g. "orders-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id as string
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID       int64   `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	Status        Status  `json:"status"`
	Total         float64 `json:"total"`
	Items         []Item  `json:"items"`
}

type OrderUpdatedPayload struct {
	OrderID       int64   `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	Status        Status  `json:"status"`
	Total         float64 `json:"total"`
}

type OrderDeletedPayload struct {
	OrderID int64 `json:"order_id"`
}
