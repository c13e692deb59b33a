package models

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPaymentUploaded, StatusBlockchainSubmitted},
		{StatusPaymentUploaded, StatusApproved},
		{StatusPaymentUploaded, StatusRejected},
		{StatusBlockchainSubmitted, StatusApproved},
		{StatusBlockchainSubmitted, StatusRejected},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to string }{
		{StatusApproved, StatusRejected},
		{StatusApproved, StatusPaymentUploaded},
		{StatusRejected, StatusApproved},
		{StatusRejected, StatusBlockchainSubmitted},
		{StatusBlockchainSubmitted, StatusPaymentUploaded},
		{StatusPaymentUploaded, StatusPaymentUploaded},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StatusApproved) || !IsTerminal(StatusRejected) {
		t.Error("approved and rejected must be terminal")
	}
	if IsTerminal(StatusPaymentUploaded) || IsTerminal(StatusBlockchainSubmitted) {
		t.Error("intermediate statuses must not be terminal")
	}
}
