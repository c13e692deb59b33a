package common

import (
	"math/rand"
	"time"
)

// GenerateOrderRef returns a human-quotable order reference, e.g. TXN4K9QDZM2P.
// Admins read these out to users during manual review, so no ambiguous charset.
func GenerateOrderRef() string {
	const characters = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 9)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return "TXN" + string(result)
}
