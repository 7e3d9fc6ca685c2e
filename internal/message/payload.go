package message

import "time"

type SendReq struct {
	GroupID uint   `json:"group" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

type EditReq struct {
	Text string `json:"text" validate:"required"`
}

// Row is the flattened read shape: sender is a username, not an id.
type Row struct {
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type ListResp struct {
	Messages []Row `json:"messages"`
}

// CreatedEvent is the payload published to Kafka after a successful post.
type CreatedEvent struct {
	EventID   string    `json:"event_id"`
	MessageID uint      `json:"message_id"`
	GroupID   uint      `json:"group_id"`
	SenderID  uint      `json:"sender_id"`
	Timestamp time.Time `json:"timestamp"`
}
