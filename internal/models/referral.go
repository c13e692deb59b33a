package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralCode records that a share code exists for a user. It is a separate
// table so that issuing a code never creates a placeholder referral edge.
type ReferralCode struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex" json:"user_id"`
	Code      string    `gorm:"column:code;size:20;not null;uniqueIndex" json:"code"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReferralCode) TableName() string {
	return "referral_codes"
}

func (c *ReferralCode) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Referral is the edge "ReferredID signed up through ReferrerID's code".
// Earnings stays 0 until the referred user's first buy is rewarded; the
// reward claim flips it exactly once.
type Referral struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	ReferrerID   string    `gorm:"column:referrer_id;type:char(36);not null;index" json:"referrer_id"`
	ReferredID   string    `gorm:"column:referred_id;type:char(36);not null;uniqueIndex" json:"referred_id"`
	ReferralCode string    `gorm:"column:referral_code;size:20;not null" json:"referral_code"`
	Earnings     float64   `gorm:"column:earnings;type:decimal(20,2);default:0.00" json:"earnings"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Referral) TableName() string {
	return "referrals"
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
