package group

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rishi-jha/group-chat-app/internal/message"
	"github.com/Rishi-jha/group-chat-app/internal/reaction"
	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
)

type Repository interface {
	Create(g *ChatGroup) (*ChatGroup, error)
	GetByID(id uint) (*ChatGroup, error)
	Rename(id uint, name string) error
	// DeleteCascade removes the group together with its messages, their
	// reactions and the membership rows, in one transaction.
	DeleteCascade(id uint) error

	ListForUser(userID uint) ([]ChatGroup, error)
	IsMember(groupID, userID uint) (bool, error)
	MemberUsernames(groupID uint) ([]string, error)
	AddMembers(groupID uint, userIDs []uint) error
	RemoveMembers(groupID uint, userIDs []uint) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(g *ChatGroup) (*ChatGroup, error) {
	err := r.store.Base.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		return tx.Create(&Member{GroupID: g.ID, UserID: g.OwnerID, AddedAt: time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *repo) GetByID(id uint) (*ChatGroup, error) {
	var g ChatGroup
	if err := r.store.Base.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("group does not exist")
		}
		return nil, err
	}
	return &g, nil
}

func (r *repo) Rename(id uint, name string) error {
	return r.store.Base.Model(&ChatGroup{}).Where("id = ?", id).Update("name", name).Error
}

func (r *repo) DeleteCascade(id uint) error {
	return r.store.Base.Transaction(func(tx *gorm.DB) error {
		var msgIDs []uint
		if err := tx.Model(&message.Message{}).Where("group_id = ?", id).Pluck("id", &msgIDs).Error; err != nil {
			return err
		}
		if len(msgIDs) > 0 {
			if err := tx.Where("message_id IN ?", msgIDs).Delete(&reaction.Reaction{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("group_id = ?", id).Delete(&message.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&Member{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ChatGroup{}, id).Error
	})
}

func (r *repo) ListForUser(userID uint) ([]ChatGroup, error) {
	var out []ChatGroup
	err := r.store.Base.
		Joins("JOIN members ON members.group_id = chat_groups.id AND members.user_id = ?", userID).
		Order("chat_groups.id ASC").
		Find(&out).Error
	return out, err
}

func (r *repo) IsMember(groupID, userID uint) (bool, error) {
	var n int64
	err := r.store.Base.Model(&Member{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *repo) MemberUsernames(groupID uint) ([]string, error) {
	var names []string
	err := r.store.Base.Model(&Member{}).
		Joins("JOIN users ON users.id = members.user_id").
		Where("members.group_id = ?", groupID).
		Order("users.username ASC").
		Pluck("users.username", &names).Error
	return names, err
}

func (r *repo) AddMembers(groupID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]Member, 0, len(userIDs))
	now := time.Now()
	for _, uid := range userIDs {
		rows = append(rows, Member{GroupID: groupID, UserID: uid, AddedAt: now})
	}
	// Re-adding a present member is a no-op, not a uniqueness error.
	return r.store.Base.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}

func (r *repo) RemoveMembers(groupID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.store.Base.
		Where("group_id = ? AND user_id IN ?", groupID, userIDs).
		Delete(&Member{}).Error
}
