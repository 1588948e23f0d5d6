package amqp

import (
	"encoding/json"
	"time"
)

// WorkoutSyncMessage asks the worker to sync one workout to the sheets
// target. It carries only the ID and version; the worker loads the full
// entry from the database.
type WorkoutSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkoutDeleteMessage propagates a deletion. It carries the entry data
// because the sheets target locates rows by content, not by our IDs.
type WorkoutDeleteMessage struct {
	ID        int64     `json:"id"`
	Exercise  string    `json:"exercise"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	WeightKg  float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
	Timestamp time.Time `json:"timestamp"`
}

// Message kinds carried on the sync queue.
const (
	KindSync   = "sync"
	KindDelete = "delete"
)

// Envelope wraps both message kinds so a single queue carries the whole
// sync stream in order.
type Envelope struct {
	Kind   string                `json:"kind"`
	Sync   *WorkoutSyncMessage   `json:"sync,omitempty"`
	Delete *WorkoutDeleteMessage `json:"delete,omitempty"`
}

func NewWorkoutSyncMessage(id, version int64) *WorkoutSyncMessage {
	return &WorkoutSyncMessage{ID: id, Version: version, Timestamp: time.Now()}
}

func (e *Envelope) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EnvelopeFromJSON(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
