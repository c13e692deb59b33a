package consumers

import (
	"errors"

	"spebit-service/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RewardAmount is the flat referral reward in rupees (approximately $2),
// credited once per referred user on their first buy.
const RewardAmount = 166.0

// ReferralProcessor applies referral rewards off the request path.
type ReferralProcessor struct {
	DB *gorm.DB
}

func NewReferralProcessor(db *gorm.DB) *ReferralProcessor {
	return &ReferralProcessor{DB: db}
}

// ProcessReward credits the referrer of the given purchasing user.
//
// The whole reward runs in one DB transaction: the referral edge is claimed
// first with a conditional update (earnings = 0 guard), then the wallet and
// profile counters are incremented in place. The claim makes the operation
// idempotent: a retry, or a second "first purchase" racing this one, finds
// the edge already claimed and does nothing. No matching edge, or a
// self-referral, is a silent no-op.
func (p *ReferralProcessor) ProcessReward(userID string) error {
	var referral models.Referral
	err := p.DB.Where("referred_id = ?", userID).First(&referral).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	if referral.ReferrerID == userID {
		logrus.WithField("user_id", userID).Warn("ignoring self-referral edge")
		return nil
	}

	return p.DB.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&models.Referral{}).
			Where("id = ? AND earnings = 0", referral.ID).
			Update("earnings", RewardAmount)
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			// Already rewarded.
			return nil
		}

		// The referrer may never have opened their dashboard, so the wallet
		// row might not exist yet.
		var wallet models.UserWallet
		if err := tx.Where(models.UserWallet{UserID: referral.ReferrerID}).FirstOrCreate(&wallet).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.UserWallet{}).
			Where("user_id = ?", referral.ReferrerID).
			UpdateColumn("referral_earnings", gorm.Expr("referral_earnings + ?", RewardAmount)).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.UserProfile{}).
			Where("user_id = ?", referral.ReferrerID).
			UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"referrer_id": referral.ReferrerID,
			"referred_id": userID,
			"amount":      RewardAmount,
		}).Info("referral reward credited")
		return nil
	})
}
