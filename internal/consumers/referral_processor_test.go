package consumers

import (
	"log"
	"math"
	"os"
	"testing"

	"spebit-service/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NOTE: These tests require a running MySQL instance and skip when
// DATABASE_URL is not set.

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

	testDB.AutoMigrate(&models.Referral{}, &models.UserWallet{}, &models.UserProfile{})
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM referrals")
		testDB.Exec("DELETE FROM user_wallets")
		testDB.Exec("DELETE FROM user_profiles")
	}
}

func seedEdge(t *testing.T, referrerID, referredID string) models.Referral {
	t.Helper()
	edge := models.Referral{
		ReferrerID:   referrerID,
		ReferredID:   referredID,
		ReferralCode: "SPBTEST0001",
	}
	if err := testDB.Create(&edge).Error; err != nil {
		t.Fatalf("seed referral edge: %v", err)
	}
	return edge
}

func referrerEarnings(t *testing.T, referrerID string) float64 {
	t.Helper()
	var wallet models.UserWallet
	if err := testDB.Where("user_id = ?", referrerID).First(&wallet).Error; err != nil {
		t.Fatalf("load referrer wallet: %v", err)
	}
	return wallet.ReferralEarnings
}

func TestProcessReward(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	proc := NewReferralProcessor(testDB)
	seedEdge(t, "referrer-1", "buyer-1")
	testDB.Create(&models.UserProfile{UserID: "referrer-1", FullName: "Referrer One"})

	if err := proc.ProcessReward("buyer-1"); err != nil {
		t.Fatalf("ProcessReward failed: %v", err)
	}

	if got := referrerEarnings(t, "referrer-1"); math.Abs(got-RewardAmount) > 0.01 {
		t.Errorf("Expected earnings %v, got %v", RewardAmount, got)
	}

	var edge models.Referral
	testDB.Where("referred_id = ?", "buyer-1").First(&edge)
	if math.Abs(edge.Earnings-RewardAmount) > 0.01 {
		t.Errorf("Expected edge earnings %v, got %v", RewardAmount, edge.Earnings)
	}

	var profile models.UserProfile
	testDB.Where("user_id = ?", "referrer-1").First(&profile)
	if profile.ReferralCount != 1 {
		t.Errorf("Expected referral count 1, got %d", profile.ReferralCount)
	}
}

func TestProcessRewardIsIdempotent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	proc := NewReferralProcessor(testDB)
	seedEdge(t, "referrer-2", "buyer-2")
	testDB.Create(&models.UserProfile{UserID: "referrer-2", FullName: "Referrer Two"})

	// Delivery may repeat; the credit must not.
	for i := 0; i < 3; i++ {
		if err := proc.ProcessReward("buyer-2"); err != nil {
			t.Fatalf("ProcessReward run %d failed: %v", i, err)
		}
	}

	if got := referrerEarnings(t, "referrer-2"); math.Abs(got-RewardAmount) > 0.01 {
		t.Errorf("Expected earnings %v after retries, got %v", RewardAmount, got)
	}
}

func TestProcessRewardWithoutEdge(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	proc := NewReferralProcessor(testDB)
	if err := proc.ProcessReward("unreferred-buyer"); err != nil {
		t.Fatalf("Expected no-op without an edge, got %v", err)
	}

	var count int64
	testDB.Model(&models.UserWallet{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no wallet rows, got %d", count)
	}
}

func TestProcessRewardSelfReferral(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	proc := NewReferralProcessor(testDB)
	seedEdge(t, "same-user", "same-user")

	if err := proc.ProcessReward("same-user"); err != nil {
		t.Fatalf("Expected self-referral no-op, got %v", err)
	}

	var edge models.Referral
	testDB.Where("referred_id = ?", "same-user").First(&edge)
	if edge.Earnings != 0 {
		t.Errorf("Expected self-referral edge to stay unclaimed, got earnings %v", edge.Earnings)
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}
