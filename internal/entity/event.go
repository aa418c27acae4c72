package entity

import "time"

type EventType string

const (
	EventSpawned  EventType = "spawned"
	EventLanded   EventType = "landed"
	EventFrozen   EventType = "frozen"
	EventCleared  EventType = "cleared"
	EventGameOver EventType = "game_over"
)

// Event describes one change of a hosted board.
type Event struct {
	SessionID string    `json:"session_id"`
	Type      EventType `json:"type"`
	Column    int       `json:"column"`
	Cleared   int       `json:"cleared,omitempty"`
	State     string    `json:"state"`
	At        time.Time `json:"at"`
}
