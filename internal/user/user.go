package user

import "time"

type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Username    string `gorm:"uniqueIndex;size:150" json:"username"`
	FirstName   string `gorm:"size:150" json:"first_name"`
	LastName    string `gorm:"size:150" json:"last_name"`
	Email       string `gorm:"size:254" json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	PassHash    string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
