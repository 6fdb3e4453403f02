package events

import (
	"encoding/json"
	"fmt"
	"time"

	"paisa/internal/core"
)

// Event types emitted on the record stream.
const (
	TypeRecordCreated = "record.created"
	TypeRecordDeleted = "record.deleted"
)

// RecordEvent is the wire message published after a successful store
// mutation. Amounts travel as integer paise.
type RecordEvent struct {
	Type        string    `json:"type"`
	RecordID    int64     `json:"record_id"`
	AmountPaise int64     `json:"amount_paise,omitempty"`
	Category    string    `json:"category,omitempty"`
	PaymentMode string    `json:"payment_mode,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewRecordCreated builds the event for a freshly inserted record.
func NewRecordCreated(rec core.ExpenseRecord) RecordEvent {
	return RecordEvent{
		Type:        TypeRecordCreated,
		RecordID:    rec.ID,
		AmountPaise: rec.Amount.Paise,
		Category:    rec.Category.String(),
		PaymentMode: rec.PaymentMode.String(),
		OccurredAt:  time.Now(),
	}
}

// NewRecordDeleted builds the event for a hard-deleted record.
func NewRecordDeleted(id int64) RecordEvent {
	return RecordEvent{
		Type:       TypeRecordDeleted,
		RecordID:   id,
		OccurredAt: time.Now(),
	}
}

// ToJSON serializes the event for publishing.
func (e RecordEvent) ToJSON() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal record event: %w", err)
	}
	return data, nil
}

// RecordEventFromJSON parses a consumed message body.
func RecordEventFromJSON(data []byte) (RecordEvent, error) {
	var e RecordEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return RecordEvent{}, fmt.Errorf("unmarshal record event: %w", err)
	}
	if e.Type != TypeRecordCreated && e.Type != TypeRecordDeleted {
		return RecordEvent{}, fmt.Errorf("unknown record event type %q", e.Type)
	}
	return e, nil
}
