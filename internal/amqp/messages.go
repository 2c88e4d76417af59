package amqp

import (
	"encoding/json"
	"time"
)

// ExpensePayload is the full expense record carried inside a mutation
// message, with category and partner names resolved at publish time so that
// consumers need no read-back channel into the state manager.
type ExpensePayload struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD
	AmountCents     int64     `json:"amount_cents"`
	Description     string    `json:"description"`
	CategoryID      string    `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	PaidByPartnerID string    `json:"paid_by_partner_id,omitempty"`
	PartnerName     string    `json:"partner_name"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	EntryTimestamp  time.Time `json:"entry_timestamp"`
}

// MutationMessage describes one committed state mutation.
type MutationMessage struct {
	Collection string          `json:"collection"`
	Op         string          `json:"op"`
	EntityID   string          `json:"entity_id"`
	Expense    *ExpensePayload `json:"expense,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MutationMessageFromJSON parses a message from JSON bytes.
func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
