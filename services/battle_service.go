package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

type BattleService struct {
	DB     *gorm.DB
	RNG    Rand
	Events *EventService
	Wallet *WalletService
}

func NewBattleService(db *gorm.DB, rng Rand, events *EventService, wallet *WalletService) *BattleService {
	return &BattleService{DB: db, RNG: rng, Events: events, Wallet: wallet}
}

// Fight resolves a battle between two hens in a single transaction. The
// Battle row is created already complete; there is never a persisted
// in-progress battle, and resolution cannot fail once preconditions pass.
func (s *BattleService) Fight(caller string, hen1ID, hen2ID uint64) (*models.Battle, error) {
	var battle models.Battle
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Challenger's hen first: existence, ownership, then the self check,
		// so a caller who owns neither hen hears NotOwner.
		hen1, err := henForUpdate(tx, hen1ID)
		if err != nil {
			return err
		}
		if hen1.Owner != caller {
			return fmt.Errorf("hen %d: %w", hen1ID, ErrNotOwner)
		}
		if hen1ID == hen2ID {
			return ErrSelfBattle
		}
		hen2, err := henForUpdate(tx, hen2ID)
		if err != nil {
			return err
		}

		now := time.Now()
		if hen1.BattleCooldownEnd.After(now) {
			return fmt.Errorf("hen %d: %w", hen1ID, ErrOnCooldown)
		}
		if hen2.BattleCooldownEnd.After(now) {
			return fmt.Errorf("hen %d: %w", hen2ID, ErrOnCooldown)
		}

		winner, loser := s.resolve(hen1, hen2)

		battle = models.Battle{
			Hen1ID:      hen1ID,
			Hen2ID:      hen2ID,
			Player1:     hen1.Owner,
			Player2:     hen2.Owner,
			WinnerID:    winner.ID,
			Reward:      BattleReward,
			Rounds:      BattleRounds,
			IsComplete:  true,
			CompletedAt: now,
		}
		if err := tx.Create(&battle).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Hen{}).Where("id = ?", winner.ID).
			Update("wins", gorm.Expr("wins + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Hen{}).Where("id = ?", loser.ID).
			Update("losses", gorm.Expr("losses + 1")).Error; err != nil {
			return err
		}
		if err := awardXP(tx, winner, BattleWinnerXP); err != nil {
			return err
		}
		if err := awardXP(tx, loser, BattleLoserXP); err != nil {
			return err
		}

		cooldownEnd := now.Add(BattleCooldown)
		if err := setBattleCooldown(tx, hen1ID, cooldownEnd); err != nil {
			return err
		}
		if err := setBattleCooldown(tx, hen2ID, cooldownEnd); err != nil {
			return err
		}

		if err := s.Wallet.Credit(tx, winner.Owner, BattleReward); err != nil {
			return err
		}

		return s.Events.Emit(tx, models.EventBattleCompleted, caller, battle.ID, map[string]any{
			"hen1":   hen1ID,
			"hen2":   hen2ID,
			"winner": winner.ID,
			"reward": BattleReward,
		})
	})
	if err != nil {
		return nil, err
	}
	return &battle, nil
}

// resolve runs the fixed-round stat contest. Each round scores
// 3·power + 2·agility + 2·endurance, acumen drives the critical-hit roll
// and fortune adds a flat random swing. Majority of rounds wins; a tied
// series falls to a fortune-weighted coin flip.
func (s *BattleService) resolve(hen1, hen2 *models.Hen) (winner, loser *models.Hen) {
	wins1, wins2 := 0, 0
	for round := 0; round < BattleRounds; round++ {
		score1 := s.roundScore(hen1)
		score2 := s.roundScore(hen2)
		switch {
		case score1 > score2:
			wins1++
		case score2 > score1:
			wins2++
		}
	}

	if wins1 == wins2 {
		// Fortune-weighted tiebreak
		total := hen1.Fortune + hen2.Fortune
		if total <= 0 {
			total = 2
		}
		if intn(s.RNG, total) < hen1.Fortune {
			return hen1, hen2
		}
		return hen2, hen1
	}
	if wins1 > wins2 {
		return hen1, hen2
	}
	return hen2, hen1
}

func (s *BattleService) roundScore(hen *models.Hen) int {
	base := 3*hen.Power + 2*hen.Agility + 2*hen.Endurance
	score := base

	// Critical hit: acumen/2 percent chance of +50% base
	if intn(s.RNG, 100) < hen.Acumen/2 {
		score += base / 2
	}

	// Flat fortune swing
	score += intn(s.RNG, hen.Fortune+1)

	return score
}

// GetBattle is a pure read for the query surface.
func (s *BattleService) GetBattle(id uint64) (*models.Battle, error) {
	var battle models.Battle
	if err := s.DB.First(&battle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &battle, nil
}

// BattlesByPlayer lists battles an account fought on either side.
func (s *BattleService) BattlesByPlayer(account string, limit int) ([]models.Battle, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var battles []models.Battle
	err := s.DB.Where("player1 = ? OR player2 = ?", account, account).
		Order("id DESC").Limit(limit).Find(&battles).Error
	return battles, err
}

// RecentBattles feeds the public battle log.
func (s *BattleService) RecentBattles(limit int) ([]models.Battle, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var battles []models.Battle
	err := s.DB.Order("id DESC").Limit(limit).Find(&battles).Error
	return battles, err
}

// LastBattleID exposes the battle counter to the wagering engine so it can
// distinguish future battle ids (book open) from resolved ones.
func (s *BattleService) LastBattleID(tx *gorm.DB) (uint64, error) {
	var battle models.Battle
	err := tx.Order("id DESC").First(&battle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return battle.ID, nil
}
