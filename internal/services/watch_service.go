package services

import (
	"encoding/json"
	"fmt"
	"time"

	"spebit-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	watchPollInterval = 2 * time.Second
	// watchWindow matches the client's processing dialog: after two minutes
	// the stream ends without touching the order, which stays pending until
	// an admin decides.
	watchWindow = 2 * time.Minute
)

// WatchService streams status changes of a single order to its owner over
// SSE while they wait on the processing screen.
type WatchService struct {
	DB           *gorm.DB
	PollInterval time.Duration
	Window       time.Duration
}

func NewWatchService(db *gorm.DB) *WatchService {
	return &WatchService{DB: db, PollInterval: watchPollInterval, Window: watchWindow}
}

type statusEvent struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

// StreamTransactionStatus polls the owned order and emits a status event on
// every change. The stream ends after the first terminal status, on client
// disconnect, or when the watch window lapses. The order row is never
// mutated here.
func (s *WatchService) StreamTransactionStatus(c *gin.Context, userID, trxID string) error {
	var trx models.UserTransaction
	if err := s.DB.Where("id = ? AND user_id = ?", trxID, userID).First(&trx).Error; err != nil {
		return ErrOrderNotFound
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no") // nginx

	emit := func(event, status string) {
		payload, _ := json.Marshal(statusEvent{TransactionID: trx.ID, Status: status})
		fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, payload)
		c.Writer.Flush()
	}

	// Initial keepalive (comment event), then the current status so a
	// reconnecting client resyncs immediately.
	fmt.Fprint(c.Writer, ":\n\n")
	c.Writer.Flush()

	lastStatus := trx.Status
	emit("status", lastStatus)
	if models.IsTerminal(lastStatus) {
		return nil
	}

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.Window)
	defer deadline.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			// Client closed connection.
			return nil

		case <-deadline.C:
			emit("timeout", lastStatus)
			return nil

		case <-ticker.C:
			var current models.UserTransaction
			if err := s.DB.Select("status").First(&current, "id = ?", trxID).Error; err != nil {
				logrus.WithError(err).WithField("transaction_id", trxID).Error("watch poll failed")
				continue
			}
			if current.Status == lastStatus {
				continue
			}
			lastStatus = current.Status
			emit("status", lastStatus)
			if models.IsTerminal(lastStatus) {
				return nil
			}
		}
	}
}
