package models

import "time"

// Battle is created and finalized in a single transaction; there is no
// externally visible "in progress" state.
type Battle struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Hen1ID  uint64 `gorm:"not null;index" json:"hen1_id"`
	Hen2ID  uint64 `gorm:"not null;index" json:"hen2_id"`
	Player1 string `gorm:"type:varchar(128);not null;index" json:"player1"`
	Player2 string `gorm:"type:varchar(128);not null;index" json:"player2"`

	WinnerID   uint64 `gorm:"not null" json:"winner_id"`
	Reward     int64  `gorm:"not null" json:"reward"` // µCHK credited to the winner's owner
	Rounds     int    `gorm:"not null" json:"rounds"`
	IsComplete bool   `gorm:"not null;default:false" json:"is_complete"`

	CompletedAt time.Time `json:"completed_at"`

	Timestamps
}
