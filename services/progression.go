package services

import (
	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

// Hen progression. XP only ever goes up; level is derived, never stored, so
// there is no level-sync problem between engines.
//
// L(xp) = floor(sqrt(xp/100)), clamped to ≥1:
//   0 XP → L1, 400 XP → L2, 900 XP → L3, 10_000 XP → L10

// LevelForXP computes the derived level for an XP total. The formula itself
// is owned by the Hen record.
func LevelForXP(xp int64) int {
	return models.LevelForXP(xp)
}

// TierThresholds: derived level required for each display tier.
var TierThresholds = map[int]int{ // tier → min level
	1: 1,  // Chick
	2: 5,  // Yard Hen
	3: 12, // Prize Hen
	4: 25, // Champion
	5: 50, // Legend
}

func determineTier(level int) int {
	for tier := 5; tier >= 1; tier-- {
		if level >= TierThresholds[tier] {
			return tier
		}
	}
	return 1
}

// TierName maps a tier to its display name for the query surface.
func TierName(tier int) string {
	switch tier {
	case 1:
		return "Chick"
	case 2:
		return "Yard Hen"
	case 3:
		return "Prize Hen"
	case 4:
		return "Champion"
	case 5:
		return "Legend"
	default:
		return "Chick"
	}
}

// TierForXP resolves the display tier straight from XP.
func TierForXP(xp int64) int {
	return determineTier(LevelForXP(xp))
}

// awardXP bumps a hen's XP inside the caller's transaction and keeps the
// in-memory record in sync for event payloads.
func awardXP(tx *gorm.DB, hen *models.Hen, xp int64) error {
	if xp <= 0 {
		return nil
	}
	hen.XP += xp
	return tx.Model(&models.Hen{}).Where("id = ?", hen.ID).
		Update("xp", gorm.Expr("xp + ?", xp)).Error
}
