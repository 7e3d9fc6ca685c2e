package message

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
)

// Memberships is the slice of the membership store this package needs.
type Memberships interface {
	IsMember(groupID, userID uint) (bool, error)
}

// Publisher emits message-created events; delivery is best effort and never
// fails the request.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Popularity tracks per-group activity for the popular-groups listing.
type Popularity interface {
	IncPopular(ctx context.Context, groupID uint)
}

type Service interface {
	Post(ctx context.Context, p httpx.Principal, groupID uint, text string) (*Message, error)
	Edit(p httpx.Principal, messageID uint, text string) (*Message, error)
	ListSince(p httpx.Principal, groupID uint, hours int) (*ListResp, error)

	// Existence gate for the reaction engine.
	Exists(messageID uint) (bool, error)
}

type service struct {
	repo    Repository
	members Memberships
	pub     Publisher
	pop     Popularity
}

func NewService(r Repository, m Memberships, pub Publisher, pop Popularity) Service {
	return &service{repo: r, members: m, pub: pub, pop: pop}
}

func (s *service) Post(ctx context.Context, p httpx.Principal, groupID uint, text string) (*Message, error) {
	member, err := s.members.IsMember(groupID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.Unauthorized("user %s is not a part of the group", p.Username)
	}
	m, err := s.repo.Create(&Message{GroupID: groupID, SenderID: p.UserID, Text: text})
	if err != nil {
		return nil, err
	}
	s.announce(ctx, m)
	return m, nil
}

func (s *service) announce(ctx context.Context, m *Message) {
	if s.pop != nil {
		s.pop.IncPopular(ctx, m.GroupID)
	}
	if s.pub == nil {
		return
	}
	evt := CreatedEvent{
		EventID:   uuid.NewString(),
		MessageID: m.ID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Timestamp: m.Timestamp,
	}
	if payload, err := json.Marshal(evt); err == nil {
		_ = s.pub.Publish(ctx, evt.EventID, payload)
	}
}

func (s *service) Edit(p httpx.Principal, messageID uint, text string) (*Message, error) {
	m, err := s.repo.GetByID(messageID)
	if err != nil {
		return nil, err
	}
	if m.SenderID != p.UserID {
		return nil, apperr.Unauthorized("sender of the message is not the same as user")
	}
	return s.repo.UpdateText(messageID, text)
}

func (s *service) ListSince(p httpx.Principal, groupID uint, hours int) (*ListResp, error) {
	member, err := s.members.IsMember(groupID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.Unauthorized("only members of the group can read messages")
	}
	if hours <= 0 {
		hours = 1
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := s.repo.ListSince(groupID, since)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return &ListResp{Messages: rows}, nil
}

func (s *service) Exists(messageID uint) (bool, error) {
	_, err := s.repo.GetByID(messageID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
