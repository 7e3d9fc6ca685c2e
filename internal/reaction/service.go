package reaction

import (
	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
)

// Messages is the slice of the message store this package needs. Reactions
// deliberately carry no membership check: any authenticated user may react
// to any message that exists.
type Messages interface {
	Exists(messageID uint) (bool, error)
}

type Service interface {
	Set(p httpx.Principal, messageID uint, status string) (*Reaction, error)
	Update(p httpx.Principal, messageID uint, status string) (*Reaction, error)
	Remove(p httpx.Principal, messageID uint) error
	List(messageID uint) (*ListResp, error)
}

type service struct {
	repo Repository
	msgs Messages
}

func NewService(r Repository, msgs Messages) Service {
	return &service{repo: r, msgs: msgs}
}

// Set replaces any previous reaction by the caller with a fresh record.
// The reaction id changes across Set calls; Update keeps it. The asymmetry
// is observable and intentional.
func (s *service) Set(p httpx.Principal, messageID uint, status string) (*Reaction, error) {
	if err := s.gate(messageID); err != nil {
		return nil, err
	}
	return s.repo.Replace(messageID, p.UserID, status)
}

func (s *service) Update(p httpx.Principal, messageID uint, status string) (*Reaction, error) {
	if err := s.gate(messageID); err != nil {
		return nil, err
	}
	rx, err := s.repo.GetByOwner(messageID, p.UserID)
	if err != nil {
		return nil, apperr.NotFound("no status found to update")
	}
	if err := s.repo.UpdateStatus(rx, status); err != nil {
		return nil, err
	}
	rx.Status = status
	return rx, nil
}

func (s *service) Remove(p httpx.Principal, messageID uint) error {
	if err := s.gate(messageID); err != nil {
		return err
	}
	return s.repo.DeleteByOwner(messageID, p.UserID)
}

func (s *service) List(messageID uint) (*ListResp, error) {
	if err := s.gate(messageID); err != nil {
		return nil, err
	}
	out, err := s.repo.ListByMessage(messageID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Reaction{}
	}
	return &ListResp{Data: out}, nil
}

func (s *service) gate(messageID uint) error {
	ok, err := s.msgs.Exists(messageID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("message does not exist")
	}
	return nil
}
