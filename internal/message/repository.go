package message

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
)

type Repository interface {
	Create(m *Message) (*Message, error)
	GetByID(id uint) (*Message, error)
	UpdateText(id uint, text string) (*Message, error)
	// ListSince returns flattened rows for the group with timestamp >= since,
	// ascending by timestamp with id as the tie-break (insertion order).
	ListSince(groupID uint, since time.Time) ([]Row, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(m *Message) (*Message, error) {
	m.Timestamp = time.Now()
	if err := r.store.Base.Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) GetByID(id uint) (*Message, error) {
	var m Message
	if err := r.store.Base.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("message does not exist")
		}
		return nil, err
	}
	return &m, nil
}

func (r *repo) UpdateText(id uint, text string) (*Message, error) {
	m, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	m.Text = text
	m.Timestamp = time.Now()
	if err := r.store.Base.Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repo) ListSince(groupID uint, since time.Time) ([]Row, error) {
	var rows []Row
	err := r.store.Base.Model(&Message{}).
		Select("messages.text, users.username AS sender, messages.timestamp").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.group_id = ? AND messages.timestamp >= ?", groupID, since).
		Order("messages.timestamp ASC, messages.id ASC").
		Scan(&rows).Error
	return rows, err
}
