package main

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Rishi-jha/group-chat-app/internal/group"
	"github.com/Rishi-jha/group-chat-app/internal/message"
	"github.com/Rishi-jha/group-chat-app/internal/reaction"
	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
)

// The fakes below stand in for the gorm repositories so the full service
// graph can be exercised without a database.

type memGroups struct {
	groups    map[uint]*group.ChatGroup
	members   map[uint]map[uint]bool
	nextID    uint
	usernames map[uint]string
	msgs      *memMessages
	reactions *memReactions
}

func (s *memGroups) Create(g *group.ChatGroup) (*group.ChatGroup, error) {
	g.ID = s.nextID
	s.nextID++
	s.groups[g.ID] = g
	s.members[g.ID] = map[uint]bool{g.OwnerID: true}
	return g, nil
}

func (s *memGroups) GetByID(id uint) (*group.ChatGroup, error) {
	g, ok := s.groups[id]
	if !ok {
		return nil, apperr.NotFound("group does not exist")
	}
	cp := *g
	return &cp, nil
}

func (s *memGroups) Rename(id uint, name string) error {
	s.groups[id].Name = name
	return nil
}

func (s *memGroups) DeleteCascade(id uint) error {
	for msgID, m := range s.msgs.msgs {
		if m.GroupID != id {
			continue
		}
		for rxID, rx := range s.reactions.rows {
			if rx.MessageID == msgID {
				delete(s.reactions.rows, rxID)
			}
		}
		delete(s.msgs.msgs, msgID)
	}
	delete(s.members, id)
	delete(s.groups, id)
	return nil
}

func (s *memGroups) ListForUser(userID uint) ([]group.ChatGroup, error) {
	var out []group.ChatGroup
	for id, g := range s.groups {
		if s.members[id][userID] {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memGroups) IsMember(groupID, userID uint) (bool, error) {
	return s.members[groupID][userID], nil
}

func (s *memGroups) MemberUsernames(groupID uint) ([]string, error) {
	var names []string
	for uid := range s.members[groupID] {
		names = append(names, s.usernames[uid])
	}
	sort.Strings(names)
	return names, nil
}

func (s *memGroups) AddMembers(groupID uint, userIDs []uint) error {
	for _, uid := range userIDs {
		s.members[groupID][uid] = true
	}
	return nil
}

func (s *memGroups) RemoveMembers(groupID uint, userIDs []uint) error {
	for _, uid := range userIDs {
		delete(s.members[groupID], uid)
	}
	return nil
}

type memMessages struct {
	msgs      map[uint]*message.Message
	nextID    uint
	usernames map[uint]string
}

func (s *memMessages) Create(m *message.Message) (*message.Message, error) {
	m.ID = s.nextID
	m.Timestamp = time.Now()
	s.nextID++
	s.msgs[m.ID] = m
	return m, nil
}

func (s *memMessages) GetByID(id uint) (*message.Message, error) {
	m, ok := s.msgs[id]
	if !ok {
		return nil, apperr.NotFound("message does not exist")
	}
	cp := *m
	return &cp, nil
}

func (s *memMessages) UpdateText(id uint, text string) (*message.Message, error) {
	m, ok := s.msgs[id]
	if !ok {
		return nil, apperr.NotFound("message does not exist")
	}
	m.Text = text
	m.Timestamp = time.Now()
	cp := *m
	return &cp, nil
}

func (s *memMessages) ListSince(groupID uint, since time.Time) ([]message.Row, error) {
	var out []message.Row
	for id := uint(1); id < s.nextID; id++ {
		m, ok := s.msgs[id]
		if !ok || m.GroupID != groupID || m.Timestamp.Before(since) {
			continue
		}
		out = append(out, message.Row{Text: m.Text, Sender: s.usernames[m.SenderID], Timestamp: m.Timestamp})
	}
	return out, nil
}

type memReactions struct {
	rows   map[uint]*reaction.Reaction
	nextID uint
}

func (s *memReactions) find(messageID, ownerID uint) *reaction.Reaction {
	for _, rx := range s.rows {
		if rx.MessageID == messageID && rx.OwnerID == ownerID {
			return rx
		}
	}
	return nil
}

func (s *memReactions) GetByOwner(messageID, ownerID uint) (*reaction.Reaction, error) {
	rx := s.find(messageID, ownerID)
	if rx == nil {
		return nil, apperr.NotFound("no status found")
	}
	cp := *rx
	return &cp, nil
}

func (s *memReactions) Replace(messageID, ownerID uint, status string) (*reaction.Reaction, error) {
	if old := s.find(messageID, ownerID); old != nil {
		delete(s.rows, old.ID)
	}
	rx := &reaction.Reaction{ID: s.nextID, MessageID: messageID, OwnerID: ownerID, Status: status}
	s.nextID++
	s.rows[rx.ID] = rx
	cp := *rx
	return &cp, nil
}

func (s *memReactions) UpdateStatus(rx *reaction.Reaction, status string) error {
	stored, ok := s.rows[rx.ID]
	if !ok {
		return apperr.NotFound("no status found")
	}
	stored.Status = status
	return nil
}

func (s *memReactions) DeleteByOwner(messageID, ownerID uint) error {
	if old := s.find(messageID, ownerID); old != nil {
		delete(s.rows, old.ID)
	}
	return nil
}

func (s *memReactions) ListByMessage(messageID uint) ([]reaction.Reaction, error) {
	var out []reaction.Reaction
	for _, rx := range s.rows {
		if rx.MessageID == messageID {
			out = append(out, *rx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memDirectory struct{ ids map[string]uint }

func (d *memDirectory) ResolveUsernames(names []string) (map[string]uint, error) {
	out := make(map[string]uint, len(names))
	for _, n := range names {
		id, ok := d.ids[n]
		if !ok {
			return nil, apperr.NotFound("user %s does not exist", n)
		}
		out[n] = id
	}
	return out, nil
}

// TestGroupChatFlow walks one conversation through the whole service graph:
// group creation, membership, posting, editing, reactions that supersede
// each other, and the cascade on group deletion.
func TestGroupChatFlow(t *testing.T) {
	usernames := map[uint]string{1: "ann", 2: "ben", 3: "cal"}
	reactions := &memReactions{rows: map[uint]*reaction.Reaction{}, nextID: 1}
	messages := &memMessages{msgs: map[uint]*message.Message{}, nextID: 1, usernames: usernames}
	groups := &memGroups{
		groups: map[uint]*group.ChatGroup{}, members: map[uint]map[uint]bool{},
		nextID: 1, usernames: usernames, msgs: messages, reactions: reactions,
	}

	groupSvc := group.NewService(groups, &memDirectory{ids: map[string]uint{"ann": 1, "ben": 2, "cal": 3}})
	msgSvc := message.NewService(messages, groupSvc, nil, nil)
	rxSvc := reaction.NewService(reactions, msgSvc)

	ann := httpx.Principal{UserID: 1, Username: "ann"}
	ben := httpx.Principal{UserID: 2, Username: "ben"}
	cal := httpx.Principal{UserID: 3, Username: "cal"}
	ctx := context.Background()

	g, err := groupSvc.CreateGroup(ann, "weekend plans")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if len(g.Members) != 1 || g.Members[0] != "ann" {
		t.Fatalf("fresh group members = %v, want just the owner", g.Members)
	}

	// Ben is not a member yet, so neither posting nor reading works.
	if _, err := msgSvc.Post(ctx, ben, g.ID, "early"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("pre-membership post: err = %v", err)
	}
	if _, err := groupSvc.AddMembers(ann, g.ID, []string{"ben", "cal"}); err != nil {
		t.Fatalf("AddMembers: %v", err)
	}

	m, err := msgSvc.Post(ctx, ben, g.ID, "pizza friday?")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, err := msgSvc.Edit(cal, m.ID, "no"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("non-sender edit: err = %v", err)
	}
	if _, err := msgSvc.Edit(ben, m.ID, "pizza saturday?"); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	list, err := msgSvc.ListSince(cal, g.ID, 1)
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(list.Messages) != 1 || list.Messages[0].Text != "pizza saturday?" || list.Messages[0].Sender != "ben" {
		t.Fatalf("messages = %+v", list.Messages)
	}

	// Cal reacts, then changes their mind. Set replaces the row.
	first, err := rxSvc.Set(cal, m.ID, reaction.StatusLike)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	second, err := rxSvc.Set(cal, m.ID, reaction.StatusHeart)
	if err != nil {
		t.Fatalf("Set again: %v", err)
	}
	if second.ID == first.ID {
		t.Error("replacing a reaction should mint a new id")
	}
	rxs, _ := rxSvc.List(m.ID)
	if len(rxs.Data) != 1 || rxs.Data[0].Status != reaction.StatusHeart {
		t.Fatalf("reactions = %+v, want a single heart", rxs.Data)
	}

	// Only the owner may delete, and the delete takes everything with it.
	if err := groupSvc.DeleteGroup(ben, g.ID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("non-owner delete: err = %v", err)
	}
	if err := groupSvc.DeleteGroup(ann, g.ID); err != nil {
		t.Fatalf("DeleteGroup: %v", err)
	}
	if len(messages.msgs) != 0 || len(reactions.rows) != 0 {
		t.Errorf("cascade left rows behind: %d messages, %d reactions", len(messages.msgs), len(reactions.rows))
	}
	if _, err := rxSvc.List(m.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("reactions of a deleted message: err = %v, want not found", err)
	}
}
