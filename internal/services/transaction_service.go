package services

import (
	"context"
	"errors"
	"math"
	"mime/multipart"
	"time"

	"spebit-service/internal/models"
	"spebit-service/internal/worker"
	"spebit-service/pkg/common"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("amount, payment method and payment screenshot are required")
	ErrMissingBlockchain  = errors.New("blockchain network and receive address are required")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("order is not in a state that permits this step")
	ErrAlreadyDecided     = errors.New("order has already been approved or rejected")
	ErrInvalidDecision    = errors.New("decision must be approved or rejected")
)

// TaskEnqueuer is the slice of asynq.Client the service needs. Satisfied by
// *asynq.Client; tests substitute a recorder.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TransactionService drives a buy order through its lifecycle. Every
// persisted transition is a compare-and-set update keyed on the current
// status, so a terminal order can never be re-opened and two devices racing
// the same step cannot double-apply it.
type TransactionService struct {
	DB       *gorm.DB
	Cryptos  *CryptoService
	Methods  *PaymentMethodService
	Storage  *StorageService
	Asynq    TaskEnqueuer
	Notifier Notifier
}

func NewTransactionService(db *gorm.DB, cryptos *CryptoService, methods *PaymentMethodService,
	storage *StorageService, asynqClient TaskEnqueuer, notifier Notifier) *TransactionService {
	return &TransactionService{
		DB:       db,
		Cryptos:  cryptos,
		Methods:  methods,
		Storage:  storage,
		Asynq:    asynqClient,
		Notifier: notifier,
	}
}

// CalculateCryptoAmount converts a rupee amount at the given unit price.
// Sub-rupee coins keep 8 decimal places, everything else 6.
func CalculateCryptoAmount(rupeeAmount, price float64) float64 {
	amount := rupeeAmount / price
	decimals := 6.0
	if price < 1 {
		decimals = 8.0
	}
	factor := math.Pow(10, decimals)
	return math.Round(amount*factor) / factor
}

type SubmitPaymentDTO struct {
	UserID          string
	CryptoID        string
	PaymentMethodID string
	RupeeAmount     float64
	Screenshot      *multipart.FileHeader
}

// SubmitPayment performs the first persisted step of the buy flow: store the
// screenshot, insert the order as payment_uploaded, and queue the referral
// reward when this is the user's first buy. Reward enqueue failures are
// logged, never surfaced; the purchase stands on its own.
func (s *TransactionService) SubmitPayment(ctx context.Context, data SubmitPaymentDTO) (*models.UserTransaction, error) {
	if data.CryptoID == "" || data.PaymentMethodID == "" || data.Screenshot == nil {
		return nil, ErrMissingFields
	}
	if data.RupeeAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	crypto, err := s.Cryptos.GetActive(data.CryptoID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Methods.GetActive(data.PaymentMethodID); err != nil {
		return nil, err
	}

	key := ScreenshotKey(data.UserID, data.Screenshot.Filename, time.Now())
	if _, err := s.Storage.UploadScreenshot(ctx, data.Screenshot, key); err != nil {
		return nil, err
	}

	trx := models.UserTransaction{
		UserID:               data.UserID,
		CryptoID:             crypto.ID,
		PaymentMethodID:      data.PaymentMethodID,
		TransactionType:      models.TrxTypeBuy,
		Reference:            common.GenerateOrderRef(),
		Amount:               CalculateCryptoAmount(data.RupeeAmount, crypto.CurrentPrice),
		PricePerUnit:         crypto.CurrentPrice,
		TotalAmount:          data.RupeeAmount,
		RupeeAmount:          data.RupeeAmount,
		Status:               models.StatusPaymentUploaded,
		PaymentScreenshotURL: s.Storage.PublicURL(key),
	}
	if err := s.DB.Create(&trx).Error; err != nil {
		return nil, err
	}

	s.maybeQueueReferralReward(data.UserID)

	return &trx, nil
}

// maybeQueueReferralReward enqueues the reward task when the row just written
// is the user's first buy. The worker re-checks everything; this is only a
// cheap gate to avoid queueing on every purchase.
func (s *TransactionService) maybeQueueReferralReward(userID string) {
	var count int64
	if err := s.DB.Model(&models.UserTransaction{}).
		Where("user_id = ? AND transaction_type = ?", userID, models.TrxTypeBuy).
		Count(&count).Error; err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("referral gate count failed")
		return
	}
	if count != 1 {
		return
	}

	task, err := worker.NewReferralRewardTask(worker.ReferralRewardPayload{UserID: userID})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to build referral reward task")
		return
	}
	if _, err := s.Asynq.Enqueue(task, asynq.MaxRetry(5)); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("failed to enqueue referral reward task")
	}
}

// SubmitBlockchainDetails records the receive address and advances the order
// to blockchain_submitted. Any non-empty strings are accepted; the admin
// review is the verification step.
func (s *TransactionService) SubmitBlockchainDetails(userID, trxID, network, address string) (*models.UserTransaction, error) {
	if network == "" || address == "" {
		return nil, ErrMissingBlockchain
	}

	res := s.DB.Model(&models.UserTransaction{}).
		Where("id = ? AND user_id = ? AND status = ?", trxID, userID, models.StatusPaymentUploaded).
		Updates(map[string]interface{}{
			"blockchain_network": network,
			"receive_address":    address,
			"status":             models.StatusBlockchainSubmitted,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var trx models.UserTransaction
		if err := s.DB.Where("id = ? AND user_id = ?", trxID, userID).First(&trx).Error; err != nil {
			return nil, ErrOrderNotFound
		}
		return nil, ErrInvalidTransition
	}

	var trx models.UserTransaction
	if err := s.DB.First(&trx, "id = ?", trxID).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

// Get fetches one order owned by the user.
func (s *TransactionService) Get(userID, trxID string) (*models.UserTransaction, error) {
	var trx models.UserTransaction
	if err := s.DB.Where("id = ? AND user_id = ?", trxID, userID).First(&trx).Error; err != nil {
		return nil, ErrOrderNotFound
	}
	return &trx, nil
}

// History lists the caller's orders, newest first.
func (s *TransactionService) History(userID string, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.UserTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.UserTransaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Transactions fetched"), nil
}

// AdminList lists all orders, optionally filtered by status.
func (s *TransactionService) AdminList(status string, page, limit int) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.UserTransaction{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}

	var transactions []models.UserTransaction
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&transactions).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(transactions, total, page, limit, "Transactions fetched"), nil
}

// Decide applies the admin decision. The update is conditional on the row
// still being non-terminal; a decided order reports ErrAlreadyDecided.
func (s *TransactionService) Decide(trxID, status, notes string) (*models.UserTransaction, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidDecision
	}

	res := s.DB.Model(&models.UserTransaction{}).
		Where("id = ? AND status NOT IN ?", trxID, []string{models.StatusApproved, models.StatusRejected}).
		Updates(map[string]interface{}{
			"status":      status,
			"admin_notes": notes,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var trx models.UserTransaction
		if err := s.DB.First(&trx, "id = ?", trxID).Error; err != nil {
			return nil, ErrOrderNotFound
		}
		return nil, ErrAlreadyDecided
	}

	var trx models.UserTransaction
	if err := s.DB.First(&trx, "id = ?", trxID).Error; err != nil {
		return nil, err
	}

	if status == models.StatusApproved {
		s.Notifier.Notify(trx.UserID, "Payment approved", "Your crypto purchase has been approved")
	} else {
		s.Notifier.Notify(trx.UserID, "Payment rejected", "Your payment has been rejected. Please try again")
	}

	return &trx, nil
}
