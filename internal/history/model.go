// Package history is the best-effort persistence sink for completed runs.
// Save failures are logged, never surfaced to the caller.
package history

import "time"

// Record is one persisted detection outcome.
type Record struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Label       string         `json:"label"`
	Confidence  float64        `json:"confidence"`
	Explanation string         `json:"explanation"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
