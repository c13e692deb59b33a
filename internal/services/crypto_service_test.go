package services

import (
	"context"
	"errors"
	"testing"

	"spebit-service/internal/models"
)

func TestCreateRejectsNonPositivePrice(t *testing.T) {
	svc := NewCryptoService(nil, nil)

	err := svc.Create(context.Background(), &models.Cryptocurrency{
		Name: "Bitcoin", Symbol: "BTC", CurrentPrice: 0,
	})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("Expected ErrInvalidPrice for zero price, got %v", err)
	}

	err = svc.Create(context.Background(), &models.Cryptocurrency{
		Name: "Bitcoin", Symbol: "BTC", CurrentPrice: -5,
	})
	if !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("Expected ErrInvalidPrice for negative price, got %v", err)
	}
}

func TestUpdateRejectsNonPositivePrice(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	crypto := models.Cryptocurrency{Name: "Tether", Symbol: "USDT", CurrentPrice: 92.5, IsActive: true}
	if err := testDB.Create(&crypto).Error; err != nil {
		t.Fatalf("seed crypto: %v", err)
	}

	svc := NewCryptoService(testDB, nil)
	zero := 0.0

	if _, err := svc.Update(context.Background(), crypto.ID, CryptoUpdateDTO{CurrentPrice: &zero}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("Expected ErrInvalidPrice, got %v", err)
	}

	// The stored price must be untouched.
	var stored models.Cryptocurrency
	if err := testDB.First(&stored, "id = ?", crypto.ID).Error; err != nil {
		t.Fatalf("reload crypto: %v", err)
	}
	if stored.CurrentPrice != 92.5 {
		t.Errorf("Expected price 92.5 after rejected update, got %v", stored.CurrentPrice)
	}
}

func TestGetActiveRejectsZeroPrice(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	// A zero-price row can only exist from before the update guard; buys
	// against it must still be refused.
	crypto := models.Cryptocurrency{Name: "Stale", Symbol: "STL", CurrentPrice: 0, IsActive: true}
	if err := testDB.Create(&crypto).Error; err != nil {
		t.Fatalf("seed crypto: %v", err)
	}

	svc := NewCryptoService(testDB, nil)
	if _, err := svc.GetActive(crypto.ID); !errors.Is(err, ErrCryptoInactive) {
		t.Errorf("Expected ErrCryptoInactive for zero-price coin, got %v", err)
	}
}
