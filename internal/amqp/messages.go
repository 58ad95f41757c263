package amqp

import (
	"encoding/json"
	"time"

	"fundtrackr/internal/core"
)

// AlertMessage carries one alert decision from the evaluator to the
// delivery worker. Slot identifies the notification so a newer alert of
// the same slot replaces any pending one at the notifier.
type AlertMessage struct {
	Slot      int       `json:"slot"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAlertMessage wraps an evaluated alert with a publish timestamp.
func NewAlertMessage(a core.Alert) *AlertMessage {
	return &AlertMessage{
		Slot:      a.Slot,
		Title:     a.Title,
		Body:      a.Body,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON creates a message from JSON bytes.
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
