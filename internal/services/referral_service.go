package services

import (
	"strings"

	"spebit-service/internal/models"

	"gorm.io/gorm"
)

// ReferralCodePrefix is prepended to the share code shown to users.
const ReferralCodePrefix = "SPB"

type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

// MakeCode derives the share code from a user id: prefix plus the first eight
// characters of the id, upper-cased.
func MakeCode(userID string) string {
	id := userID
	if len(id) > 8 {
		id = id[:8]
	}
	return ReferralCodePrefix + strings.ToUpper(id)
}

// GetOrCreateCode returns the user's share code, issuing it on first request.
func (s *ReferralService) GetOrCreateCode(userID string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := s.DB.Where(models.ReferralCode{UserID: userID}).
		Attrs(models.ReferralCode{Code: MakeCode(userID)}).
		FirstOrCreate(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// ListReferred returns the users the caller referred, with per-edge earnings.
func (s *ReferralService) ListReferred(userID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := s.DB.Where("referrer_id = ?", userID).Order("created_at DESC").Find(&referrals).Error
	return referrals, err
}
