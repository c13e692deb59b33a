package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserWallet is created lazily on the first wallet read. ReferralEarnings is
// only ever mutated with an atomic in-place increment.
type UserWallet struct {
	ID               string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID           string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex" json:"user_id"`
	Balance          float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	ReferralEarnings float64   `gorm:"column:referral_earnings;type:decimal(20,2);default:0.00" json:"referral_earnings"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserWallet) TableName() string {
	return "user_wallets"
}

func (w *UserWallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
