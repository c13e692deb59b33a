package models

import (
	"time"
)

// ArchivedUserTransaction holds terminal orders moved out of the hot table by
// the archive scheduler. Row IDs are preserved so screenshots stay resolvable.
type ArchivedUserTransaction struct {
	ID                   string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID               string    `gorm:"column:user_id;type:char(36);not null;index" json:"user_id"`
	CryptoID             string    `gorm:"column:crypto_id;type:char(36);not null" json:"crypto_id"`
	PaymentMethodID      string    `gorm:"column:payment_method_id;type:char(36)" json:"payment_method_id"`
	TransactionType      string    `gorm:"column:transaction_type;size:10;not null" json:"transaction_type"`
	Reference            string    `gorm:"column:reference;size:30;not null" json:"reference"`
	Amount               float64   `gorm:"column:amount;type:decimal(30,8);not null" json:"amount"`
	PricePerUnit         float64   `gorm:"column:price_per_unit;type:decimal(20,8);not null" json:"price_per_unit"`
	TotalAmount          float64   `gorm:"column:total_amount;type:decimal(20,2);not null" json:"total_amount"`
	RupeeAmount          float64   `gorm:"column:rupee_amount;type:decimal(20,2)" json:"rupee_amount"`
	Status               string    `gorm:"column:status;size:30;not null" json:"status"`
	PaymentScreenshotURL string    `gorm:"column:payment_screenshot_url;size:500" json:"payment_screenshot_url"`
	BlockchainNetwork    string    `gorm:"column:blockchain_network;size:100" json:"blockchain_network"`
	ReceiveAddress       string    `gorm:"column:receive_address;size:255" json:"receive_address"`
	AdminNotes           string    `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	CreatedAt            time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ArchivedUserTransaction) TableName() string {
	return "archived_user_transactions"
}
