package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 string    `gorm:"primaryKey;type:uuid" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	Password           string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Name               string    `gorm:"not null" json:"name"`
	Role               Role      `gorm:"type:varchar(16);default:'USER';not null" json:"role"`
	PictureURL         *string   `json:"picture_url,omitempty"`
	MustChangePassword bool      `gorm:"default:true;not null" json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Borrows []Borrow `gorm:"foreignKey:UserID" json:"borrows,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
