package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment method kinds. The kind is declared at creation and drives which
// detail fields must be set; it is never inferred from the method's name.
const (
	MethodTypeUPI          = "upi"
	MethodTypeEmail        = "email"
	MethodTypeBankTransfer = "bank_transfer"
)

var ErrInvalidMethodDetails = errors.New("payment method details do not match its type")

type PaymentMethod struct {
	ID         string `gorm:"primaryKey;type:char(36)" json:"id"`
	Name       string `gorm:"column:name;size:100;not null" json:"name"`
	MethodType string `gorm:"column:method_type;size:20;not null" json:"method_type"`
	IconURL    string `gorm:"column:icon_url;size:500" json:"icon_url"`
	IsActive   bool   `gorm:"column:is_active;default:true;index" json:"is_active"`

	// Only the fields for the declared MethodType are populated.
	UpiID             string `gorm:"column:upi_id;size:255" json:"upi_id,omitempty"`
	EmailID           string `gorm:"column:email_id;size:255" json:"email_id,omitempty"`
	BankName          string `gorm:"column:bank_name;size:255" json:"bank_name,omitempty"`
	AccountHolderName string `gorm:"column:account_holder_name;size:255" json:"account_holder_name,omitempty"`
	AccountNumber     string `gorm:"column:account_number;size:50" json:"account_number,omitempty"`
	IfscCode          string `gorm:"column:ifsc_code;size:20" json:"ifsc_code,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ValidateDetails checks that the detail fields match the declared type.
func (m *PaymentMethod) ValidateDetails() error {
	switch m.MethodType {
	case MethodTypeUPI:
		if m.UpiID == "" || m.EmailID != "" || m.BankName != "" || m.AccountNumber != "" {
			return ErrInvalidMethodDetails
		}
	case MethodTypeEmail:
		if m.EmailID == "" || m.UpiID != "" || m.BankName != "" || m.AccountNumber != "" {
			return ErrInvalidMethodDetails
		}
	case MethodTypeBankTransfer:
		if m.BankName == "" || m.AccountHolderName == "" || m.AccountNumber == "" || m.IfscCode == "" {
			return ErrInvalidMethodDetails
		}
		if m.UpiID != "" || m.EmailID != "" {
			return ErrInvalidMethodDetails
		}
	default:
		return ErrInvalidMethodDetails
	}
	return nil
}
