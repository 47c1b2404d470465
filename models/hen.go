package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Hen is the central entity record. Every other engine reads and mutates
// hens through HenService only. gorm table: hens
type Hen struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Owner string `gorm:"type:varchar(128);not null;index" json:"owner"` // account address
	Name  string `gorm:"type:varchar(64)" json:"name"`

	PortraitURL string `json:"portrait_url,omitempty"`

	// Traits, all in [1,100]
	Power     int `gorm:"not null" json:"power"`
	Agility   int `gorm:"not null" json:"agility"`
	Endurance int `gorm:"not null" json:"endurance"`
	Acumen    int `gorm:"not null" json:"acumen"`
	Fortune   int `gorm:"not null" json:"fortune"`

	// Lineage
	Generation int `gorm:"not null;default:0" json:"generation"` // 0..MaxGeneration
	BreedCount int `gorm:"not null;default:0" json:"breed_count"`

	// Progression
	XP int64 `gorm:"not null;default:0" json:"xp"` // monotonically non-decreasing

	// Combat record
	Wins   int `gorm:"not null;default:0" json:"wins"`
	Losses int `gorm:"not null;default:0" json:"losses"`

	// Racing record
	RacesEntered int   `gorm:"not null;default:0" json:"races_entered"`
	RacesWon     int   `gorm:"not null;default:0" json:"races_won"`
	PrizeEarned  int64 `gorm:"not null;default:0" json:"prize_earned"` // µCHK

	IsAlive bool `gorm:"not null;default:true" json:"is_alive"`

	// Cooldown expiries (absolute timestamps)
	BreedingCooldownEnd time.Time `json:"breeding_cooldown_end"`
	BattleCooldownEnd   time.Time `json:"battle_cooldown_end"`

	Timestamps
}

// LevelForXP derives a level from an XP total: floor(sqrt(xp/100)), clamped
// to ≥1. Lives here so the record method and the progression engine share
// one formula.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	lvl := int(math.Sqrt(float64(xp) / 100.0))
	if lvl < 1 {
		return 1
	}
	return lvl
}

// Level is the hen's derived level. Never stored.
func (h *Hen) Level() int {
	return LevelForXP(h.XP)
}

// TotalPower is the flat sum of all five traits (marketplace display stat).
func (h *Hen) TotalPower() int {
	return h.Power + h.Agility + h.Endurance + h.Acumen + h.Fortune
}

// HenListing is the marketplace slot for a hen; at most one active listing
// per hen, and the seller must equal the current owner while active.
type HenListing struct {
	HenID    uint64 `gorm:"primaryKey" json:"hen_id"`
	Seller   string `gorm:"type:varchar(128);not null" json:"seller"`
	Price    int64  `gorm:"not null" json:"price"` // µCHK
	IsActive bool   `gorm:"not null;default:true;index" json:"is_active"`

	Timestamps
}

// BredPair records that two hens have bred, keyed by canonical ordered pair
// (LowID < HighID) so (A,B) and (B,A) hit the same row.
type BredPair struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	LowID  uint64 `gorm:"not null;uniqueIndex:idx_bred_pair" json:"low_id"`
	HighID uint64 `gorm:"not null;uniqueIndex:idx_bred_pair" json:"high_id"`

	OffspringID uint64    `gorm:"not null" json:"offspring_id"`
	BredAt      time.Time `gorm:"autoCreateTime" json:"bred_at"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
