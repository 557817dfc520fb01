package models

import "time"

// Intent names a user action that goes through the sync core.
type Intent string

const (
	IntentLoad   Intent = "load"
	IntentAdd    Intent = "add"
	IntentEdit   Intent = "edit"
	IntentToggle Intent = "toggle"
	IntentDelete Intent = "delete"
)

// Outcome of a settled remote call.
type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeFailed  Outcome = "failed"
)

// SyncEvent is the journal entry written after every remote call settles.
type SyncEvent struct {
	Intent     Intent    `bson:"intent" json:"intent"`
	FoodID     int64     `bson:"food_id,omitempty" json:"food_id,omitempty"`
	Outcome    Outcome   `bson:"outcome" json:"outcome"`
	Error      string    `bson:"error,omitempty" json:"error,omitempty"`
	Count      int       `bson:"count" json:"count"`
	OccurredAt time.Time `bson:"occurred_at" json:"occurred_at"`
}
