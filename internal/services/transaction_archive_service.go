package services

import (
	"time"

	"spebit-service/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type TransactionArchiveService struct {
	DB *gorm.DB
}

func NewTransactionArchiveService(db *gorm.DB) *TransactionArchiveService {
	return &TransactionArchiveService{DB: db}
}

// ArchiveTransactions moves terminal orders older than 4 months into the
// archive table. Pending orders are never archived, however old; they still
// need an admin decision.
func (s *TransactionArchiveService) ArchiveTransactions() {
	logrus.Info("Starting transaction archive process...")

	cutoff := time.Now().AddDate(0, -4, 0)

	var oldTransactions []models.UserTransaction
	if err := s.DB.
		Where("created_at < ? AND status IN ?", cutoff, []string{models.StatusApproved, models.StatusRejected}).
		Find(&oldTransactions).Error; err != nil {
		logrus.WithError(err).Error("Error finding old transactions")
		return
	}

	if len(oldTransactions) == 0 {
		logrus.Info("No transactions to archive")
		return
	}

	archivedData := make([]models.ArchivedUserTransaction, 0, len(oldTransactions))
	ids := make([]string, 0, len(oldTransactions))
	for _, trx := range oldTransactions {
		archivedData = append(archivedData, models.ArchivedUserTransaction{
			ID:                   trx.ID,
			UserID:               trx.UserID,
			CryptoID:             trx.CryptoID,
			PaymentMethodID:      trx.PaymentMethodID,
			TransactionType:      trx.TransactionType,
			Reference:            trx.Reference,
			Amount:               trx.Amount,
			PricePerUnit:         trx.PricePerUnit,
			TotalAmount:          trx.TotalAmount,
			RupeeAmount:          trx.RupeeAmount,
			Status:               trx.Status,
			PaymentScreenshotURL: trx.PaymentScreenshotURL,
			BlockchainNetwork:    trx.BlockchainNetwork,
			ReceiveAddress:       trx.ReceiveAddress,
			AdminNotes:           trx.AdminNotes,
			CreatedAt:            trx.CreatedAt,
			UpdatedAt:            trx.UpdatedAt,
		})
		ids = append(ids, trx.ID)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archivedData).Error; err != nil {
			return err
		}
		return tx.Delete(&models.UserTransaction{}, "id IN ?", ids).Error
	})

	if err != nil {
		logrus.WithError(err).Error("Error during transaction archiving")
	} else {
		logrus.WithField("count", len(oldTransactions)).Info("Archived and removed transactions")
	}
}

// StartScheduler runs the archive daily at midnight.
func (s *TransactionArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		logrus.Info("Running scheduled transaction archive task...")
		s.ArchiveTransactions()
	})
	if err != nil {
		logrus.WithError(err).Error("Error scheduling archive task")
		return
	}
	c.Start()
	logrus.Info("Transaction Archive Scheduler started (Daily at 00:00)")
}
