package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntryCreatedMessage announces a newly stored ledger entry. It carries only
// the id; consumers load the entry from the store.
type EntryCreatedMessage struct {
	ID        int64     `json:"id"`
	MessageID string    `json:"message_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryCreatedMessage(id int64) *EntryCreatedMessage {
	return &EntryCreatedMessage{
		ID:        id,
		MessageID: uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntryCreatedMessageFromJSON decodes a message body.
func EntryCreatedMessageFromJSON(data []byte) (*EntryCreatedMessage, error) {
	var msg EntryCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
