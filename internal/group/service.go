package group

import (
	"fmt"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
)

// Directory resolves member usernames to user ids. Implemented by the user
// service; every name must resolve or the whole lookup fails with NotFound.
type Directory interface {
	ResolveUsernames(names []string) (map[string]uint, error)
}

type Service interface {
	CreateGroup(p httpx.Principal, name string) (*GroupResp, error)
	GetGroup(p httpx.Principal, groupID uint) (*GroupResp, error)
	UpdateGroupName(p httpx.Principal, groupID uint, name string) (*GroupResp, error)
	DeleteGroup(p httpx.Principal, groupID uint) error
	ListGroupsForUser(p httpx.Principal) ([]GroupResp, error)

	AddMembers(p httpx.Principal, groupID uint, usernames []string) (*MembersResp, error)
	RemoveMembers(p httpx.Principal, groupID uint, usernames []string) (*MembersResp, error)

	// Membership gate for the message store.
	IsMember(groupID, userID uint) (bool, error)
}

type service struct {
	repo Repository
	dir  Directory
}

func NewService(r Repository, dir Directory) Service {
	return &service{repo: r, dir: dir}
}

func (s *service) CreateGroup(p httpx.Principal, name string) (*GroupResp, error) {
	g, err := s.repo.Create(&ChatGroup{Name: name, OwnerID: p.UserID})
	if err != nil {
		return nil, err
	}
	return s.shape(g)
}

func (s *service) GetGroup(p httpx.Principal, groupID uint) (*GroupResp, error) {
	// Listing is membership-scoped; the same rule applies to direct reads.
	member, err := s.repo.IsMember(groupID, p.UserID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperr.NotFound("group does not exist")
	}
	g, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	return s.shape(g)
}

func (s *service) UpdateGroupName(p httpx.Principal, groupID uint, name string) (*GroupResp, error) {
	g, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if g.OwnerID != p.UserID {
		return nil, apperr.Unauthorized("user is not the owner of the chat group")
	}
	if err := s.repo.Rename(groupID, name); err != nil {
		return nil, err
	}
	g.Name = name
	return s.shape(g)
}

func (s *service) DeleteGroup(p httpx.Principal, groupID uint) error {
	g, err := s.repo.GetByID(groupID)
	if err != nil {
		return err
	}
	if g.OwnerID != p.UserID {
		return apperr.Unauthorized("user is not the owner of the chat group")
	}
	return s.repo.DeleteCascade(groupID)
}

func (s *service) ListGroupsForUser(p httpx.Principal) ([]GroupResp, error) {
	groups, err := s.repo.ListForUser(p.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]GroupResp, 0, len(groups))
	for i := range groups {
		resp, err := s.shape(&groups[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *service) AddMembers(p httpx.Principal, groupID uint, usernames []string) (*MembersResp, error) {
	g, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, apperr.Validation("members list is empty")
	}
	// All usernames must resolve before any row is written.
	byName, err := s.dir.ResolveUsernames(usernames)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(usernames))
	for _, name := range usernames {
		ids = append(ids, byName[name])
	}
	if err := s.repo.AddMembers(groupID, ids); err != nil {
		return nil, err
	}
	return &MembersResp{Status: fmt.Sprintf("Members added in group `%s`: %v", g.Name, usernames)}, nil
}

func (s *service) RemoveMembers(p httpx.Principal, groupID uint, usernames []string) (*MembersResp, error) {
	g, err := s.repo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, apperr.Validation("members list is empty")
	}
	byName, err := s.dir.ResolveUsernames(usernames)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(usernames))
	for _, name := range usernames {
		ids = append(ids, byName[name])
	}
	// Removing a non-member is a no-op. Removing the owner is not
	// prevented either.
	if err := s.repo.RemoveMembers(groupID, ids); err != nil {
		return nil, err
	}
	return &MembersResp{Status: fmt.Sprintf("Members removed from group `%s`: %v", g.Name, usernames)}, nil
}

func (s *service) IsMember(groupID, userID uint) (bool, error) {
	return s.repo.IsMember(groupID, userID)
}

func (s *service) shape(g *ChatGroup) (*GroupResp, error) {
	members, err := s.repo.MemberUsernames(g.ID)
	if err != nil {
		return nil, err
	}
	return &GroupResp{ID: g.ID, Name: g.Name, Owner: g.OwnerID, Members: members}, nil
}
