package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeReferralReward = "referral:reward"
)

// ReferralRewardPayload identifies the purchasing user whose referrer may be
// due a reward. Everything else is looked up by the consumer so retries see
// current state.
type ReferralRewardPayload struct {
	UserID string `json:"userId"`
}

func NewReferralRewardTask(payload ReferralRewardPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReferralReward, data), nil
}
