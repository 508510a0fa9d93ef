package statestore

import "time"

const (
	EventAdded   = "added"
	EventRemoved = "removed"
)

// TrackingEvent records one symbol entering or leaving the unique set.
// Event is EventAdded or EventRemoved. Append-only: events are never
// mutated or deleted once written.
type TrackingEvent struct {
	Symbol    string `json:"symbol"`
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

// Statistics are running counters over the life of the tracker.
// All counters are monotonically non-decreasing except LastRun.
type Statistics struct {
	TotalUniqueFound       int    `json:"total_unique_found"`
	TotalNotificationsSent int    `json:"total_notifications_sent"`
	FirstRun               string `json:"first_run"`
	LastRun                string `json:"last_run"`
}

// State is the persisted aggregate. It is read and fully rewritten on every
// check cycle; there are no partial updates.
type State struct {
	UniqueFutures   []string        `json:"unique_futures"`
	LastUpdate      string          `json:"last_update"`
	TrackingHistory []TrackingEvent `json:"tracking_history"`
	Statistics      Statistics      `json:"statistics"`
}

// NewState returns an empty aggregate.
func NewState() *State {
	return &State{
		UniqueFutures:   []string{},
		TrackingHistory: []TrackingEvent{},
	}
}

// Timestamp formats t the way every timestamp in the aggregate is stored.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
