package models

import "time"

type ChangeType string

const (
	ChangeInsert ChangeType = "insert"
	ChangeUpdate ChangeType = "update"
)

// ChangeEvent is published after every successful write to the waitlist table.
// Subscribers only use it as a signal to refetch.
type ChangeEvent struct {
	Type    ChangeType  `json:"type"`
	StoreID string      `json:"store_id"`
	EntryID string      `json:"entry_id"`
	Status  EntryStatus `json:"status"`
	At      time.Time   `json:"at"`
}

func (e ChangeEvent) RoutingKey() string {
	return "waitlist." + string(e.Type)
}
