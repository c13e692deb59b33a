package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cryptocurrency struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Name         string    `gorm:"column:name;size:100;not null" json:"name"`
	Symbol       string    `gorm:"column:symbol;size:20;not null;index" json:"symbol"`
	CurrentPrice float64   `gorm:"column:current_price;type:decimal(20,8);not null;default:0" json:"current_price"`
	LogoURL      string    `gorm:"column:logo_url;size:500" json:"logo_url"`
	IsActive     bool      `gorm:"column:is_active;default:true;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Cryptocurrency) TableName() string {
	return "cryptocurrencies"
}

func (c *Cryptocurrency) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
