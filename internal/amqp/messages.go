package amqp

import (
	"encoding/json"
	"time"
)

// Ledger record kinds carried on export events.
const (
	KindIncome     = "income"
	KindExpense    = "expense"
	KindLoan       = "loan"
	KindInvestment = "investment"
)

// Operations carried on export events.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// LedgerEventMessage is a lightweight pointer to a ledger record change.
// The worker fetches the full record from the database, so the queue
// never carries amounts or names.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(kind string, id int64, op string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      kind,
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
