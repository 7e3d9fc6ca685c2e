package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
)

type Repository interface {
	Create(u *User) (*User, error)
	Save(u *User) error
	GetByID(id uint) (*User, error)
	GetByUsername(username string) (*User, error)
	List() ([]User, error)
	Count() (int64, error)
	// FindByUsernames returns the users whose usernames are in names;
	// missing names are simply absent from the result.
	FindByUsernames(names []string) ([]User, error)
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(u *User) (*User, error) {
	if err := r.store.Base.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Save(u *User) error {
	return r.store.Base.Save(u).Error
}

func (r *repo) GetByID(id uint) (*User, error) {
	var u User
	if err := r.store.Base.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *repo) GetByUsername(username string) (*User, error) {
	var u User
	if err := r.store.Base.First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *repo) List() ([]User, error) {
	var users []User
	err := r.store.Base.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *repo) Count() (int64, error) {
	var n int64
	err := r.store.Base.Model(&User{}).Count(&n).Error
	return n, err
}

func (r *repo) FindByUsernames(names []string) ([]User, error) {
	var users []User
	if len(names) == 0 {
		return users, nil
	}
	err := r.store.Base.Where("username IN ?", names).Find(&users).Error
	return users, err
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("user does not exist")
	}
	return err
}
