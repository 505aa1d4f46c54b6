package domain

import "github.com/google/uuid"

// Stream names (must match the worker binary)
const (
	StreamMeetupRefresh = "stream:meetup:refresh"
	StreamMeetupUpdated = "stream:meetup:updated"
)

// MeetupRefreshEvent - fire-and-forget request to refresh a session's
// recommendations. Seq pins the event to the session state that issued it;
// the worker drops the event when the session has moved on.
type MeetupRefreshEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Seq       uint64    `json:"seq"`
}

// MeetupUpdatedEvent - published after a refresh is applied (or discarded),
// so observers can re-read the session without polling.
type MeetupUpdatedEvent struct {
	SessionID   uuid.UUID `json:"session_id"`
	Seq         uint64    `json:"seq"`
	ResultCount int       `json:"result_count"`
	Region      string    `json:"region,omitempty"`
	Stale       bool      `json:"stale,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// StreamMessage - a raw message from a Redis stream
type StreamMessage struct {
	ID   string
	Data string
}
