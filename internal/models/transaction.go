package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order lifecycle. A row is created as payment_uploaded (the draft step lives
// only in the client), moves to blockchain_submitted when the user provides a
// receive address, and ends in approved or rejected by an admin decision.
// Terminal rows are never re-opened.
const (
	StatusPaymentUploaded     = "payment_uploaded"
	StatusBlockchainSubmitted = "blockchain_submitted"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
)

const (
	TrxTypeBuy  = "buy"
	TrxTypeSell = "sell"
)

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// CanTransition reports whether the lifecycle permits from -> to.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPaymentUploaded:
		return to == StatusBlockchainSubmitted || to == StatusApproved || to == StatusRejected
	case StatusBlockchainSubmitted:
		return to == StatusApproved || to == StatusRejected
	}
	return false
}

type UserTransaction struct {
	ID                   string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID               string    `gorm:"column:user_id;type:char(36);not null;index" json:"user_id"`
	CryptoID             string    `gorm:"column:crypto_id;type:char(36);not null" json:"crypto_id"`
	PaymentMethodID      string    `gorm:"column:payment_method_id;type:char(36)" json:"payment_method_id"`
	TransactionType      string    `gorm:"column:transaction_type;size:10;not null;default:buy" json:"transaction_type"`
	Reference            string    `gorm:"column:reference;size:30;not null;index" json:"reference"`
	Amount               float64   `gorm:"column:amount;type:decimal(30,8);not null" json:"amount"`
	PricePerUnit         float64   `gorm:"column:price_per_unit;type:decimal(20,8);not null" json:"price_per_unit"`
	TotalAmount          float64   `gorm:"column:total_amount;type:decimal(20,2);not null" json:"total_amount"`
	RupeeAmount          float64   `gorm:"column:rupee_amount;type:decimal(20,2)" json:"rupee_amount"`
	Status               string    `gorm:"column:status;size:30;not null;default:payment_uploaded;index" json:"status"`
	PaymentScreenshotURL string    `gorm:"column:payment_screenshot_url;size:500" json:"payment_screenshot_url"`
	BlockchainNetwork    string    `gorm:"column:blockchain_network;size:100" json:"blockchain_network"`
	ReceiveAddress       string    `gorm:"column:receive_address;size:255" json:"receive_address"`
	AdminNotes           string    `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserTransaction) TableName() string {
	return "user_transactions"
}

func (t *UserTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
