package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"spebit-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Referrals *consumers.ReferralProcessor
}

func NewWorker(referrals *consumers.ReferralProcessor) *Worker {
	return &Worker{Referrals: referrals}
}

func (w *Worker) HandleReferralReward(ctx context.Context, t *asynq.Task) error {
	var p ReferralRewardPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	// Returning the error lets asynq retry with backoff; the processor's
	// claim guard keeps retries idempotent.
	return w.Referrals.ProcessReward(p.UserID)
}

func StartWorker(redisOpt asynq.RedisClientOpt, referrals *consumers.ReferralProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	worker := NewWorker(referrals)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeReferralReward, worker.HandleReferralReward)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run worker: %v", err)
	}
}
