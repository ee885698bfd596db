package domain

import "time"

// ChatSender identifies who authored a chat message.
type ChatSender string

const (
	SenderUser      ChatSender = "user"
	SenderAssistant ChatSender = "assistant"
)

// ChatMessage is one turn in an assistant conversation. Messages are
// append-only within a widget session and never mutated after creation.
type ChatMessage struct {
	ID           string     `json:"id"`
	Sender       ChatSender `json:"sender"`
	Text         string     `json:"text"`
	Timestamp    time.Time  `json:"timestamp"`
	IsError      bool       `json:"is_error,omitempty"`
	CanPlayAudio bool       `json:"can_play_audio,omitempty"`
}

// UploadedFile references a document accepted by the assistant backend.
// It lives for the duration of the widget session only.
type UploadedFile struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// FeedbackType is a per-message thumbs-up/down rating.
type FeedbackType string

const (
	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
)
