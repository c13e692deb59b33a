package services

import (
	"spebit-service/internal/models"

	"gorm.io/gorm"
)

type WalletService struct {
	DB *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{DB: db}
}

// GetOrCreate returns the user's wallet, creating an empty one on first read.
func (s *WalletService) GetOrCreate(userID string) (*models.UserWallet, error) {
	var wallet models.UserWallet
	err := s.DB.Where(models.UserWallet{UserID: userID}).FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
