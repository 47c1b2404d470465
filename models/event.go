package models

import "time"

// Event kinds; exactly one terminal event is written per successful
// mutating engine operation, in the same transaction.
const (
	EventHenMinted       = "hen_minted"
	EventHenTransferred  = "hen_transferred"
	EventHenListed       = "hen_listed"
	EventHenDelisted     = "hen_delisted"
	EventHenSold         = "hen_sold"
	EventHenBred         = "hen_bred"
	EventBattleCompleted = "battle_completed"
	EventRaceCreated     = "race_created"
	EventRaceEntered     = "race_entered"
	EventRaceStarted     = "race_started"
	EventRaceCompleted   = "race_completed"
	EventBetPlaced       = "bet_placed"
	EventBetClaimed      = "bet_claimed"
	EventFundsWithdrawn  = "funds_withdrawn"
)

// GameEvent is the append-only stream consumed by downstream indexers via
// SSE. Payload is a JSON blob whose shape depends on Kind.
type GameEvent struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Kind  string `gorm:"type:varchar(32);not null;index" json:"kind"`
	Actor string `gorm:"type:varchar(128)" json:"actor"`

	// RefID points at the primary record of the transition (hen, battle,
	// race or bet id depending on Kind).
	RefID uint64 `gorm:"not null;index" json:"ref_id"`

	Payload string `gorm:"type:text" json:"payload"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
