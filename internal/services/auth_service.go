package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"spebit-service/internal/models"
	"spebit-service/internal/utils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
)

const resetTokenTTL = 15 * time.Minute

type AuthService struct {
	DB        *gorm.DB
	Redis     *redis.Client
	JWTSecret string
	Notifier  Notifier
}

func NewAuthService(db *gorm.DB, rdb *redis.Client, jwtSecret string, notifier Notifier) *AuthService {
	return &AuthService{DB: db, Redis: rdb, JWTSecret: jwtSecret, Notifier: notifier}
}

type RegisterDTO struct {
	Email        string
	Password     string
	FullName     string
	MobileNumber string
	ReferralCode string
}

// Register creates the user, their default role and profile, and links the
// referral edge when a valid code was supplied. A bad code never blocks
// signup; the referral is simply skipped.
func (s *AuthService) Register(ctx context.Context, data RegisterDTO) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, PasswordHash: string(hash)}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return ErrEmailTaken
		}
		if err := tx.Create(&models.UserRole{UserID: user.ID, Role: models.RoleUser}).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:       user.ID,
			FullName:     data.FullName,
			MobileNumber: data.MobileNumber,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	if code := strings.TrimSpace(data.ReferralCode); code != "" {
		if err := s.linkReferral(user.ID, code); err != nil {
			logrus.WithError(err).WithField("code", code).Warn("could not link referral")
		}
	}

	return &user, nil
}

func (s *AuthService) linkReferral(referredID, code string) error {
	var rc models.ReferralCode
	if err := s.DB.Where("code = ?", code).First(&rc).Error; err != nil {
		return err
	}
	if rc.UserID == referredID {
		return errors.New("self-referral ignored")
	}
	referral := models.Referral{
		ReferrerID:   rc.UserID,
		ReferredID:   referredID,
		ReferralCode: rc.Code,
	}
	return s.DB.Create(&referral).Error
}

type LoginResult struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	IsAdmin bool         `json:"is_admin"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var profile models.UserProfile
	if err := s.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil && profile.IsBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := utils.GenerateJWT(user.ID, s.JWTSecret)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: &user, IsAdmin: s.IsAdmin(user.ID)}, nil
}

// Logout denylists the token's JTI until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return nil
	}
	return s.Redis.Set(ctx, "auth:denylist:"+tokenID, "1", ttl).Err()
}

// RequestPasswordReset issues a one-time token. The response is identical
// whether or not the email exists, so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	var user models.User
	if err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil
	}

	token := uuid.NewString()
	if err := s.Redis.Set(ctx, "auth:reset:"+token, user.ID, resetTokenTTL).Err(); err != nil {
		return err
	}

	s.Notifier.Notify(user.ID, "Password reset requested", "reset token issued")
	return nil
}

// ResetPassword consumes a reset token and re-hashes the password. GETDEL
// guarantees single use.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.Redis.GetDel(ctx, "auth:reset:"+token).Result()
	if err == redis.Nil || userID == "" {
		return ErrResetTokenInvalid
	} else if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", string(hash)).Error
}

// IsAdmin reports whether the user holds an admin role row.
func (s *AuthService) IsAdmin(userID string) bool {
	var count int64
	s.DB.Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, models.RoleAdmin).
		Count(&count)
	return count > 0
}
