package domain

import "time"

// RequestAction enumerates logged user actions.
type RequestAction string

const (
	ActionDownload   RequestAction = "download"
	ActionTranscript RequestAction = "transcript"
	ActionSummarize  RequestAction = "summarize"
)

// RequestLog records a video operation performed by an authenticated user.
type RequestLog struct {
	ID        int64
	UserID    int64
	VideoURL  string
	Action    RequestAction
	CreatedAt time.Time
}
