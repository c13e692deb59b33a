package services

import (
	"context"
	"errors"
	"time"

	"spebit-service/internal/models"
	"spebit-service/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrCryptoInactive = errors.New("cryptocurrency is not available for purchase")
	ErrInvalidPrice   = errors.New("price must be greater than zero")
)

const (
	activeCryptosCacheKey = "cryptos:active"
	activeCryptosCacheTTL = 60 * time.Second
)

type CryptoService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewCryptoService(db *gorm.DB, rdb *redis.Client) *CryptoService {
	return &CryptoService{DB: db, Redis: rdb}
}

// ListActive returns the tradable coins for the dashboard, served from cache
// when fresh. A cache miss or redis failure falls through to the database.
func (s *CryptoService) ListActive(ctx context.Context) ([]models.Cryptocurrency, error) {
	var cryptos []models.Cryptocurrency

	if s.Redis != nil {
		if hit, err := utils.GetCache(ctx, s.Redis, activeCryptosCacheKey, &cryptos); err == nil && hit {
			return cryptos, nil
		}
	}

	if err := s.DB.Where("is_active = ?", true).Order("symbol ASC").Find(&cryptos).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := utils.SetCache(ctx, s.Redis, activeCryptosCacheKey, cryptos, activeCryptosCacheTTL); err != nil {
			logrus.WithError(err).Warn("failed to cache active cryptos")
		}
	}
	return cryptos, nil
}

// GetActive fetches one coin and fails when it is unknown, deactivated, or
// carries a non-positive price. Selling at price zero would divide the rupee
// amount by nothing, so such a coin is not purchasable until an admin fixes it.
func (s *CryptoService) GetActive(id string) (*models.Cryptocurrency, error) {
	var crypto models.Cryptocurrency
	if err := s.DB.First(&crypto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if !crypto.IsActive || crypto.CurrentPrice <= 0 {
		return nil, ErrCryptoInactive
	}
	return &crypto, nil
}

// --- admin operations ---

func (s *CryptoService) List() ([]models.Cryptocurrency, error) {
	var cryptos []models.Cryptocurrency
	err := s.DB.Order("symbol ASC").Find(&cryptos).Error
	return cryptos, err
}

func (s *CryptoService) Create(ctx context.Context, crypto *models.Cryptocurrency) error {
	if crypto.CurrentPrice <= 0 {
		return ErrInvalidPrice
	}
	if err := s.DB.Create(crypto).Error; err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

type CryptoUpdateDTO struct {
	Name         *string
	Symbol       *string
	CurrentPrice *float64
	LogoURL      *string
	IsActive     *bool
}

func (s *CryptoService) Update(ctx context.Context, id string, data CryptoUpdateDTO) (*models.Cryptocurrency, error) {
	if data.CurrentPrice != nil && *data.CurrentPrice <= 0 {
		return nil, ErrInvalidPrice
	}

	updates := map[string]interface{}{}
	if data.Name != nil {
		updates["name"] = *data.Name
	}
	if data.Symbol != nil {
		updates["symbol"] = *data.Symbol
	}
	if data.CurrentPrice != nil {
		updates["current_price"] = *data.CurrentPrice
	}
	if data.LogoURL != nil {
		updates["logo_url"] = *data.LogoURL
	}
	if data.IsActive != nil {
		updates["is_active"] = *data.IsActive
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&models.Cryptocurrency{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidateCache(ctx)
	}

	var crypto models.Cryptocurrency
	if err := s.DB.First(&crypto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &crypto, nil
}

// Deactivate hides a coin from buy flows. Coins are never hard-deleted; old
// transactions keep pointing at them.
func (s *CryptoService) Deactivate(ctx context.Context, id string) error {
	res := s.DB.Model(&models.Cryptocurrency{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CryptoService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := utils.DeleteCache(ctx, s.Redis, activeCryptosCacheKey); err != nil {
		logrus.WithError(err).Warn("failed to invalidate crypto cache")
	}
}
