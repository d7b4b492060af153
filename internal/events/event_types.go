package events

import (
	"time"

	"github.com/Sidnaik04/YT-Assistant/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestLogged EventType = "request_logged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// RequestLoggedPayload describes a video operation performed by a user.
type RequestLoggedPayload struct {
	UserID   int64                `json:"user_id"`
	VideoURL string               `json:"video_url"`
	Action   domain.RequestAction `json:"action"`
}
