package user

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/jwt"
)

type Service interface {
	Login(username, password string) (*TokenPair, error)
	Refresh(refreshToken string) (*TokenPair, error)

	Create(p httpx.Principal, in CreateReq) (*User, error)
	Update(p httpx.Principal, username string, in UpdateReq) (*User, error)
	Get(username string) (*User, error)
	List() ([]User, error)

	// ResolveUsernames maps every name to a user id, or reports the first
	// unknown name as NotFound. Used by the membership store.
	ResolveUsernames(names []string) (map[string]uint, error)

	// EnsureAdmin creates the bootstrap superuser when the store is empty.
	EnsureAdmin(username, password string) error
}

type service struct {
	repo Repository
	// password for users created through the admin endpoint; they are
	// expected to change it after first login
	defaultPass string
}

func NewService(r Repository, defaultPass string) Service {
	return &service{repo: r, defaultPass: defaultPass}
}

func (s *service) Login(username, password string) (*TokenPair, error) {
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, apperr.Unauthorized("wrong credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, apperr.Unauthorized("wrong credentials")
	}
	return s.mintPair(u)
}

func (s *service) Refresh(refreshToken string) (*TokenPair, error) {
	uid, err := jwt.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	u, err := s.repo.GetByID(uid)
	if err != nil {
		return nil, apperr.Unauthorized("invalid refresh token")
	}
	// Refresh tokens rotate on every redemption.
	return s.mintPair(u)
}

func (s *service) mintPair(u *User) (*TokenPair, error) {
	access, err := jwt.MakeAccess(u.ID, u.Username, u.IsSuperuser)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.MakeRefresh(u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresIn:  int64(jwt.AccessTTL().Seconds()),
		RefreshExpiresIn: int64(jwt.RefreshTTL().Seconds()),
		TokenType:        "bearer",
	}, nil
}

func (s *service) Create(p httpx.Principal, in CreateReq) (*User, error) {
	if !p.Superuser {
		return nil, apperr.Unauthorized("only a superuser can create users")
	}
	if exist, _ := s.repo.GetByUsername(in.Username); exist != nil {
		return nil, apperr.Conflict("username %q is taken", in.Username)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPass), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(&User{
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		IsSuperuser: in.IsSuperuser,
		PassHash:    string(hash),
	})
}

func (s *service) Update(p httpx.Principal, username string, in UpdateReq) (*User, error) {
	if !p.Superuser {
		return nil, apperr.Unauthorized("only a superuser can update users")
	}
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.IsSuperuser != nil {
		u.IsSuperuser = *in.IsSuperuser
	}
	if err := s.repo.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(username string) (*User, error) {
	return s.repo.GetByUsername(username)
}

func (s *service) List() ([]User, error) {
	return s.repo.List()
}

func (s *service) ResolveUsernames(names []string) (map[string]uint, error) {
	found, err := s.repo.FindByUsernames(names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(found))
	for _, u := range found {
		byName[u.Username] = u.ID
	}
	for _, name := range names {
		if _, ok := byName[name]; !ok {
			return nil, apperr.NotFound("member %q does not exist", name)
		}
	}
	return byName, nil
}

func (s *service) EnsureAdmin(username, password string) error {
	n, err := s.repo.Count()
	if err != nil || n > 0 {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.repo.Create(&User{
		Username:    username,
		IsSuperuser: true,
		PassHash:    string(hash),
	}); err != nil {
		return err
	}
	log.Printf("bootstrap superuser %q created", username)
	return nil
}
