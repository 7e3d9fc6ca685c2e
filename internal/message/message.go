package message

import "time"

// Message belongs to a group; group and sender never change after
// creation. Timestamp moves whenever the text is edited, so it is an
// updated-at rather than a created-at.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"index" json:"group"`
	SenderID  uint      `gorm:"index" json:"sender"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Text      string    `json:"text"`
}
