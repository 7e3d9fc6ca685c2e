package reaction

// Reaction is a single status a user attached to a message. At most one
// row exists per (owner, message) pair; Set enforces it by replacing the
// previous row, never by surfacing a uniqueness violation.
type Reaction struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	MessageID uint   `gorm:"index:idx_reaction_owner" json:"message"`
	OwnerID   uint   `gorm:"index:idx_reaction_owner" json:"owner"`
	Status    string `gorm:"size:20" json:"status"`
}

// The closed status vocabulary.
const (
	StatusLike    = "like"
	StatusDislike = "dislike"
	StatusHeart   = "heart"
	StatusLaugh   = "laugh"
	StatusSad     = "sad"
	StatusAngry   = "angry"
)
