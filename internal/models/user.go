package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserRole gates the admin back office. A user without an admin row is a
// regular user regardless of anything else.
type UserRole struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string    `gorm:"column:user_id;type:char(36);not null;index:idx_user_role,unique" json:"user_id"`
	Role      string    `gorm:"column:role;size:20;not null;default:user;index:idx_user_role,unique" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type UserProfile struct {
	ID            string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID        string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex" json:"user_id"`
	FullName      string    `gorm:"column:full_name;size:255" json:"full_name"`
	MobileNumber  string    `gorm:"column:mobile_number;size:20" json:"mobile_number"`
	IsBlocked     bool      `gorm:"column:is_blocked;default:false" json:"is_blocked"`
	ReferralCount int       `gorm:"column:referral_count;default:0" json:"referral_count"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
