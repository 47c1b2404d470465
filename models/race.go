package models

import "time"

// Race lifecycle states. A race transitions Open → Started → Completed and
// Completed is terminal.
const (
	RaceStatusOpen      = "open"
	RaceStatusStarted   = "started"
	RaceStatusCompleted = "completed"
)

type Race struct {
	ID              uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryFee        int64  `gorm:"not null" json:"entry_fee"` // µCHK, exact-match on entry
	MaxParticipants int    `gorm:"not null" json:"max_participants"`
	PrizePool       int64  `gorm:"not null;default:0" json:"prize_pool"` // sum of entry fees
	Status          string `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Entries []RaceEntry `json:"entries,omitempty" gorm:"foreignKey:RaceID"`

	Timestamps
}

// RaceEntry is one hen's slot in a race. Position and Prize stay zero until
// the race completes.
type RaceEntry struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	RaceID uint64 `gorm:"not null;index;uniqueIndex:idx_race_hen" json:"race_id"`
	HenID  uint64 `gorm:"not null;uniqueIndex:idx_race_hen" json:"hen_id"`
	Owner  string `gorm:"type:varchar(128);not null" json:"owner"`

	Position int   `gorm:"not null;default:0" json:"position"` // 1..N once completed
	Score    int   `gorm:"not null;default:0" json:"score"`    // ranking score at completion
	Prize    int64 `gorm:"not null;default:0" json:"prize"`    // µCHK

	Timestamps
}
