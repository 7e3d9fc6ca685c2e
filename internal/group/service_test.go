package group

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
)

// fakeRepo is an in-memory membership store with the same observable
// behavior as the gorm-backed one.
type fakeRepo struct {
	groups   map[uint]*ChatGroup
	members  map[uint]map[uint]bool
	nextID   uint
	cascaded []uint
	// usernames lets MemberUsernames resolve ids the way the SQL join does
	usernames map[uint]string
}

func newFakeRepo(usernames map[uint]string) *fakeRepo {
	return &fakeRepo{
		groups:    map[uint]*ChatGroup{},
		members:   map[uint]map[uint]bool{},
		nextID:    1,
		usernames: usernames,
	}
}

func (f *fakeRepo) Create(g *ChatGroup) (*ChatGroup, error) {
	g.ID = f.nextID
	g.CreatedAt = time.Now()
	f.nextID++
	cp := *g
	f.groups[g.ID] = &cp
	f.members[g.ID] = map[uint]bool{g.OwnerID: true}
	return g, nil
}

func (f *fakeRepo) GetByID(id uint) (*ChatGroup, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, apperr.NotFound("group does not exist")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeRepo) Rename(id uint, name string) error {
	if g, ok := f.groups[id]; ok {
		g.Name = name
	}
	return nil
}

func (f *fakeRepo) DeleteCascade(id uint) error {
	f.cascaded = append(f.cascaded, id)
	delete(f.groups, id)
	delete(f.members, id)
	return nil
}

func (f *fakeRepo) ListForUser(userID uint) ([]ChatGroup, error) {
	var ids []int
	for gid, set := range f.members {
		if set[userID] {
			ids = append(ids, int(gid))
		}
	}
	sort.Ints(ids)
	out := make([]ChatGroup, 0, len(ids))
	for _, gid := range ids {
		out = append(out, *f.groups[uint(gid)])
	}
	return out, nil
}

func (f *fakeRepo) IsMember(groupID, userID uint) (bool, error) {
	return f.members[groupID][userID], nil
}

func (f *fakeRepo) MemberUsernames(groupID uint) ([]string, error) {
	var names []string
	for uid := range f.members[groupID] {
		names = append(names, f.usernames[uid])
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRepo) AddMembers(groupID uint, userIDs []uint) error {
	set, ok := f.members[groupID]
	if !ok {
		set = map[uint]bool{}
		f.members[groupID] = set
	}
	for _, uid := range userIDs {
		set[uid] = true
	}
	return nil
}

func (f *fakeRepo) RemoveMembers(groupID uint, userIDs []uint) error {
	for _, uid := range userIDs {
		delete(f.members[groupID], uid)
	}
	return nil
}

// fakeDirectory resolves a fixed username set; unknown names fail with
// NotFound before any id is returned, like the user service does.
type fakeDirectory struct{ ids map[string]uint }

func (d *fakeDirectory) ResolveUsernames(names []string) (map[string]uint, error) {
	out := map[string]uint{}
	for _, n := range names {
		id, ok := d.ids[n]
		if !ok {
			return nil, apperr.NotFound("member %q does not exist", n)
		}
		out[n] = id
	}
	return out, nil
}

var (
	alice = httpx.Principal{UserID: 1, Username: "alice"}
	bob   = httpx.Principal{UserID: 2, Username: "bob"}
)

func fixture() (*fakeRepo, Service) {
	repo := newFakeRepo(map[uint]string{1: "alice", 2: "bob", 3: "carol"})
	dir := &fakeDirectory{ids: map[string]uint{"alice": 1, "bob": 2, "carol": 3}}
	return repo, NewService(repo, dir)
}

func TestCreateGroupOwnerIsMember(t *testing.T) {
	_, svc := fixture()
	g, err := svc.CreateGroup(alice, "G")
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if g.Owner != alice.UserID {
		t.Errorf("owner = %d, want %d", g.Owner, alice.UserID)
	}
	if len(g.Members) != 1 || g.Members[0] != "alice" {
		t.Errorf("members = %v, want [alice]", g.Members)
	}
}

func TestUpdateGroupNameOwnerOnly(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	if _, err := svc.UpdateGroupName(bob, g.ID, "H"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("non-owner rename: err = %v, want unauthorized", err)
	}
	if repo.groups[g.ID].Name != "G" {
		t.Errorf("name mutated by rejected rename: %q", repo.groups[g.ID].Name)
	}

	out, err := svc.UpdateGroupName(alice, g.ID, "H")
	if err != nil {
		t.Fatalf("owner rename: %v", err)
	}
	if out.Name != "H" || repo.groups[g.ID].Name != "H" {
		t.Errorf("rename not applied: %q / %q", out.Name, repo.groups[g.ID].Name)
	}
}

func TestDeleteGroupOwnerOnlyAndCascades(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	if err := svc.DeleteGroup(bob, g.ID); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("non-owner delete: err = %v, want unauthorized", err)
	}
	if len(repo.cascaded) != 0 {
		t.Fatal("cascade ran for rejected delete")
	}

	if err := svc.DeleteGroup(alice, g.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(repo.cascaded) != 1 || repo.cascaded[0] != g.ID {
		t.Errorf("cascade calls = %v, want [%d]", repo.cascaded, g.ID)
	}
	if err := svc.DeleteGroup(alice, g.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("delete of deleted group: err = %v, want not found", err)
	}
}

func TestListGroupsMembershipScoped(t *testing.T) {
	_, svc := fixture()
	g1, _ := svc.CreateGroup(alice, "G1")
	svc.CreateGroup(bob, "G2")

	mine, err := svc.ListGroupsForUser(alice)
	if err != nil {
		t.Fatalf("ListGroupsForUser: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != g1.ID {
		t.Errorf("alice sees %v, want only G1", mine)
	}

	// Direct reads follow the same visibility rule.
	if _, err := svc.GetGroup(alice, 2); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("non-member GetGroup: err = %v, want not found", err)
	}
}

func TestAddMembersAtomic(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	// One valid plus one nonexistent username: nothing may be added.
	if _, err := svc.AddMembers(alice, g.ID, []string{"bob", "ghost"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if repo.members[g.ID][2] {
		t.Error("bob was added despite failed validation")
	}

	out, err := svc.AddMembers(alice, g.ID, []string{"bob", "carol"})
	if err != nil {
		t.Fatalf("AddMembers: %v", err)
	}
	if out.Status == "" {
		t.Error("empty status message")
	}
	names, _ := repo.MemberUsernames(g.ID)
	if len(names) != 3 {
		t.Errorf("members = %v, want 3 entries", names)
	}

	// Adding a present member again is a no-op.
	if _, err := svc.AddMembers(bob, g.ID, []string{"bob"}); err != nil {
		t.Fatalf("re-add member: %v", err)
	}
	names, _ = repo.MemberUsernames(g.ID)
	if len(names) != 3 {
		t.Errorf("members after re-add = %v", names)
	}
}

func TestAddMembersNoOwnershipRestriction(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	// bob is not the owner, not even a member, yet may add members.
	if _, err := svc.AddMembers(bob, g.ID, []string{"carol"}); err != nil {
		t.Fatalf("non-owner AddMembers: %v", err)
	}
	if !repo.members[g.ID][3] {
		t.Error("carol not added")
	}
}

func TestRemoveMembers(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")
	svc.AddMembers(alice, g.ID, []string{"bob"})

	// Removing a non-member is a no-op, not an error.
	if _, err := svc.RemoveMembers(alice, g.ID, []string{"carol"}); err != nil {
		t.Fatalf("remove non-member: %v", err)
	}

	if _, err := svc.RemoveMembers(alice, g.ID, []string{"bob"}); err != nil {
		t.Fatalf("RemoveMembers: %v", err)
	}
	if repo.members[g.ID][2] {
		t.Error("bob still a member")
	}

	if _, err := svc.RemoveMembers(alice, g.ID, []string{"ghost"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown username: err = %v, want not found", err)
	}
}

// Removing the owner is not prevented: afterwards the "owner is always a
// member" property no longer holds, while rename and delete rights remain.
func TestRemoveMembersOwnerNotProtected(t *testing.T) {
	repo, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	if _, err := svc.RemoveMembers(bob, g.ID, []string{"alice"}); err != nil {
		t.Fatalf("removing owner: %v", err)
	}
	if repo.members[g.ID][alice.UserID] {
		t.Error("owner unexpectedly still a member")
	}
}

func TestMembersEmptyListRejected(t *testing.T) {
	_, svc := fixture()
	g, _ := svc.CreateGroup(alice, "G")

	if _, err := svc.AddMembers(alice, g.ID, nil); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty add: err = %v, want validation", err)
	}
	if _, err := svc.RemoveMembers(alice, g.ID, []string{}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty remove: err = %v, want validation", err)
	}
}
