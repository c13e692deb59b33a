package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDetails(t *testing.T) {
	upi := PaymentMethod{Name: "PhonePe", MethodType: MethodTypeUPI, UpiID: "spebit@ybl"}
	assert.NoError(t, upi.ValidateDetails())

	email := PaymentMethod{Name: "PayPal", MethodType: MethodTypeEmail, EmailID: "pay@spebit.in"}
	assert.NoError(t, email.ValidateDetails())

	bank := PaymentMethod{
		Name:              "Bank Transfer",
		MethodType:        MethodTypeBankTransfer,
		BankName:          "HDFC Bank",
		AccountHolderName: "Spebit Exchange",
		AccountNumber:     "50100234567890",
		IfscCode:          "HDFC0001234",
	}
	assert.NoError(t, bank.ValidateDetails())
}

func TestValidateDetailsRejectsMismatch(t *testing.T) {
	// Missing the field for the declared type.
	m := PaymentMethod{Name: "GPay", MethodType: MethodTypeUPI}
	assert.ErrorIs(t, m.ValidateDetails(), ErrInvalidMethodDetails)

	// Fields from another type must not leak in.
	m = PaymentMethod{Name: "PayPal", MethodType: MethodTypeEmail, EmailID: "pay@spebit.in", UpiID: "spebit@ybl"}
	assert.ErrorIs(t, m.ValidateDetails(), ErrInvalidMethodDetails)

	// Bank transfer needs the full tuple.
	m = PaymentMethod{Name: "Bank Transfer", MethodType: MethodTypeBankTransfer, BankName: "HDFC Bank"}
	assert.ErrorIs(t, m.ValidateDetails(), ErrInvalidMethodDetails)

	// Unknown type.
	m = PaymentMethod{Name: "Cash", MethodType: "cash"}
	assert.ErrorIs(t, m.ValidateDetails(), ErrInvalidMethodDetails)
}
