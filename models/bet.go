package models

import "time"

// Bet event kinds
const (
	BetKindBattle = "battle"
	BetKindRace   = "race"
)

// Bet is immutable once placed except for the Claimed flag, which flips
// exactly once. Odds are a snapshot taken at placement (fixed-point ×100,
// so 250 = 2.50x) and are never recomputed.
type Bet struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Bettor string `gorm:"type:varchar(128);not null;index" json:"bettor"`

	Kind    string `gorm:"type:varchar(16);not null" json:"kind"` // battle | race
	EventID uint64 `gorm:"not null;index" json:"event_id"`        // battle or race id
	HenID   uint64 `gorm:"not null" json:"hen_id"`

	// Race bets declare a target finishing position (1 for battles).
	Position int `gorm:"not null;default:1" json:"position"`

	Amount   int64 `gorm:"not null" json:"amount"`    // µCHK
	OddsX100 int64 `gorm:"not null" json:"odds_x100"` // payout multiplier ×100

	Payout  int64 `gorm:"not null;default:0" json:"payout"` // 0 until resolved
	Claimed bool  `gorm:"not null;default:false" json:"claimed"`

	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	Timestamps
}
