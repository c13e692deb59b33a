package services

import (
	"errors"
	"log"
	"math"
	"os"
	"testing"

	"spebit-service/internal/models"
	"spebit-service/internal/worker"

	"github.com/hibiken/asynq"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NOTE: The lifecycle tests require a running MySQL instance; they skip when
// DATABASE_URL is not set. The conversion tests run anywhere.

var testDB *gorm.DB

func setup() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		return
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return
	}

	testDB.AutoMigrate(&models.UserTransaction{}, &models.Cryptocurrency{},
		&models.PaymentMethod{}, &models.ReferralCode{}, &models.Referral{}, &models.UserWallet{})
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM user_transactions")
		testDB.Exec("DELETE FROM cryptocurrencies")
		testDB.Exec("DELETE FROM referral_codes")
		testDB.Exec("DELETE FROM referrals")
		testDB.Exec("DELETE FROM user_wallets")
	}
}

func TestCalculateCryptoAmount(t *testing.T) {
	cases := []struct {
		name   string
		rupees float64
		price  float64
		want   float64
	}{
		{"expensive coin rounds to 6 decimals", 5000000, 6000000, 0.833333},
		{"sub rupee coin keeps 8 decimals", 100, 0.50, 200.0},
		{"sub rupee repeating fraction", 1, 0.30, 3.33333333},
		{"price of one rupee uses 6 decimals", 10, 3.0, 3.333333},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateCryptoAmount(tc.rupees, tc.price)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("CalculateCryptoAmount(%v, %v) = %v, want %v", tc.rupees, tc.price, got, tc.want)
			}
		})
	}
}

func newTestTransactionService() *TransactionService {
	return NewTransactionService(testDB, NewCryptoService(testDB, nil),
		NewPaymentMethodService(testDB), nil, nil, NewLogNotifier())
}

func seedOrder(t *testing.T, userID, status string) models.UserTransaction {
	t.Helper()
	trx := models.UserTransaction{
		UserID:          userID,
		CryptoID:        "crypto-1",
		PaymentMethodID: "method-1",
		TransactionType: models.TrxTypeBuy,
		Reference:       "TXNTEST00001",
		Amount:          0.5,
		PricePerUnit:    200,
		TotalAmount:     100,
		RupeeAmount:     100,
		Status:          status,
	}
	if err := testDB.Create(&trx).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return trx
}

func TestSubmitBlockchainDetails(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()
	trx := seedOrder(t, "user-1", models.StatusPaymentUploaded)

	updated, err := svc.SubmitBlockchainDetails("user-1", trx.ID, "TRC20", "TAbc123")
	if err != nil {
		t.Fatalf("SubmitBlockchainDetails failed: %v", err)
	}
	if updated.Status != models.StatusBlockchainSubmitted {
		t.Errorf("Expected status %s, got %s", models.StatusBlockchainSubmitted, updated.Status)
	}
	if updated.ReceiveAddress != "TAbc123" {
		t.Errorf("Expected receive address to be saved, got %q", updated.ReceiveAddress)
	}

	// Second submission must not re-apply.
	if _, err := svc.SubmitBlockchainDetails("user-1", trx.ID, "ERC20", "0xOther"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition on repeat, got %v", err)
	}
}

func TestSubmitBlockchainDetailsOwnership(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()
	trx := seedOrder(t, "user-1", models.StatusPaymentUploaded)

	if _, err := svc.SubmitBlockchainDetails("someone-else", trx.ID, "TRC20", "TAbc123"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound for another user's order, got %v", err)
	}
}

func TestDecide(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()
	trx := seedOrder(t, "user-1", models.StatusBlockchainSubmitted)

	decided, err := svc.Decide(trx.ID, models.StatusApproved, "payment verified")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != models.StatusApproved {
		t.Errorf("Expected status approved, got %s", decided.Status)
	}
	if decided.AdminNotes != "payment verified" {
		t.Errorf("Expected admin notes to be saved, got %q", decided.AdminNotes)
	}

	// A decided order is immutable.
	if _, err := svc.Decide(trx.ID, models.StatusRejected, "changed my mind"); !errors.Is(err, ErrAlreadyDecided) {
		t.Errorf("Expected ErrAlreadyDecided, got %v", err)
	}
}

func TestDecideBeforeBlockchainDetails(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()
	trx := seedOrder(t, "user-1", models.StatusPaymentUploaded)

	// Admins may reject an order the user never finished.
	decided, err := svc.Decide(trx.ID, models.StatusRejected, "no blockchain details after review window")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != models.StatusRejected {
		t.Errorf("Expected status rejected, got %s", decided.Status)
	}
}

func TestDecideValidation(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newTestTransactionService()
	trx := seedOrder(t, "user-1", models.StatusBlockchainSubmitted)

	if _, err := svc.Decide(trx.ID, "pending", ""); !errors.Is(err, ErrInvalidDecision) {
		t.Errorf("Expected ErrInvalidDecision, got %v", err)
	}
	if _, err := svc.Decide("no-such-id", models.StatusApproved, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func TestReferralRewardQueuedOnlyOnFirstBuy(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	enq := &recordingEnqueuer{}
	svc := NewTransactionService(testDB, NewCryptoService(testDB, nil),
		NewPaymentMethodService(testDB), nil, enq, NewLogNotifier())

	seedOrder(t, "first-buyer", models.StatusPaymentUploaded)
	svc.maybeQueueReferralReward("first-buyer")

	if len(enq.tasks) != 1 {
		t.Fatalf("Expected 1 reward task after first buy, got %d", len(enq.tasks))
	}
	if enq.tasks[0].Type() != worker.TypeReferralReward {
		t.Errorf("Expected task type %s, got %s", worker.TypeReferralReward, enq.tasks[0].Type())
	}

	// A second buy must not reach the queue at all.
	seedOrder(t, "first-buyer", models.StatusPaymentUploaded)
	svc.maybeQueueReferralReward("first-buyer")

	if len(enq.tasks) != 1 {
		t.Errorf("Expected no reward task on second buy, got %d total", len(enq.tasks))
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
