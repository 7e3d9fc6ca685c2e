package reaction

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
)

type Repository interface {
	GetByOwner(messageID, ownerID uint) (*Reaction, error)
	// Replace deletes any reaction the owner has on the message and creates
	// a fresh row, atomically. The returned reaction has a new id.
	Replace(messageID, ownerID uint, status string) (*Reaction, error)
	// UpdateStatus mutates the existing row in place, keeping its id.
	UpdateStatus(rx *Reaction, status string) error
	// DeleteByOwner is a silent no-op when no reaction exists.
	DeleteByOwner(messageID, ownerID uint) error
	ListByMessage(messageID uint) ([]Reaction, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) GetByOwner(messageID, ownerID uint) (*Reaction, error) {
	var rx Reaction
	err := r.store.Base.
		First(&rx, "message_id = ? AND owner_id = ?", messageID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("no status found")
		}
		return nil, err
	}
	return &rx, nil
}

func (r *repo) Replace(messageID, ownerID uint, status string) (*Reaction, error) {
	rx := &Reaction{MessageID: messageID, OwnerID: ownerID, Status: status}
	err := r.store.Base.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ? AND owner_id = ?", messageID, ownerID).
			Delete(&Reaction{}).Error; err != nil {
			return err
		}
		return tx.Create(rx).Error
	})
	if err != nil {
		return nil, err
	}
	return rx, nil
}

func (r *repo) UpdateStatus(rx *Reaction, status string) error {
	return r.store.Base.Model(rx).Update("status", status).Error
}

func (r *repo) DeleteByOwner(messageID, ownerID uint) error {
	return r.store.Base.
		Where("message_id = ? AND owner_id = ?", messageID, ownerID).
		Delete(&Reaction{}).Error
}

func (r *repo) ListByMessage(messageID uint) ([]Reaction, error) {
	var out []Reaction
	err := r.store.Base.
		Where("message_id = ?", messageID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
