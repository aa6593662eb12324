package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID                      uint           `gorm:"primarykey" json:"id"`
	Email                   string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash            string         `gorm:"not null" json:"-"`
	Name                    string         `gorm:"not null" json:"name"`
	Phone                   string         `json:"phone"`
	Role                    UserRole       `gorm:"type:varchar(20);default:'customer'" json:"role"`
	IsVerified              bool           `gorm:"default:false" json:"is_verified"`
	VerificationToken       string         `gorm:"index" json:"-"`
	VerificationTokenExpiry *time.Time     `json:"-"`
	ResetToken              string         `gorm:"index" json:"-"`
	ResetTokenExpiry        *time.Time     `json:"-"`
	GoogleID                string         `gorm:"index" json:"-"` // external identity, empty for password accounts
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
	DeletedAt               gorm.DeletedAt `gorm:"index" json:"-"`

	Orders []Order `gorm:"foreignKey:UserID" json:"orders,omitempty"`
}

func (User) TableName() string {
	return "users"
}
