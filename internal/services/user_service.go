package services

import (
	"spebit-service/internal/models"
	"spebit-service/pkg/common"

	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// AdminUserRow is the back-office view of a user: account, profile and role.
type AdminUserRow struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	MobileNumber  string `json:"mobile_number"`
	Role          string `json:"role"`
	IsBlocked     bool   `json:"is_blocked"`
	ReferralCount int    `json:"referral_count"`
}

func (s *UserService) AdminList(page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var rows []AdminUserRow
	err := s.DB.Table("users u").
		Select("u.id, u.email, p.full_name, p.mobile_number, p.is_blocked, p.referral_count, COALESCE(r.role, 'user') as role").
		Joins("LEFT JOIN user_profiles p ON p.user_id = u.id").
		Joins("LEFT JOIN user_roles r ON r.user_id = u.id AND r.role = 'admin'").
		Order("u.created_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(rows, total, page, limit, "Users fetched"), nil
}

// SetBlocked flips a user's blocked flag. Blocked users cannot log in; live
// sessions keep working until the token expires.
func (s *UserService) SetBlocked(userID string, blocked bool) error {
	res := s.DB.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetProfile returns the caller's own profile.
func (s *UserService) GetProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
