package group

import "time"

// ChatGroup scopes message visibility. The owner is fixed at creation and
// is always placed in the member set; nothing later guarantees it stays
// there (see RemoveMembers).
type ChatGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:256" json:"name"`
	OwnerID   uint      `gorm:"index" json:"owner"`
	CreatedAt time.Time `json:"-"`
}

type Member struct {
	GroupID uint      `gorm:"primaryKey" json:"group_id"`
	UserID  uint      `gorm:"primaryKey" json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}
