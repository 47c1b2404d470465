package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

// oddsSeedVolume pads both sides of a battle book so an empty book opens at
// 2.00x instead of dividing by zero.
const oddsSeedVolume = int64(10_000)

// Odds clamps (×100)
const (
	minBattleOdds = int64(101)
	maxBattleOdds = int64(1_000)
	minRaceOdds   = int64(110)
	maxRaceOdds   = int64(2_000)
)

// BettingService reads outcomes from the combat and racing engines (never
// mutating hen records) and settles bets placed against battle/race ids.
type BettingService struct {
	DB      *gorm.DB
	Battles *BattleService
	Events  *EventService
	Wallet  *WalletService
}

func NewBettingService(db *gorm.DB, battles *BattleService, events *EventService, wallet *WalletService) *BettingService {
	return &BettingService{DB: db, Battles: battles, Events: events, Wallet: wallet}
}

// PlaceBet stores a bet with its odds snapshot. Battles resolve in the same
// transaction that creates them, so battle bets reference a *future* battle
// id; any id at or below the current battle counter is a settled book and
// rejected with BetsClosed. Race bets stay open until the race completes.
func (s *BettingService) PlaceBet(caller, kind string, eventID, henID uint64, position int, amount int64) (*models.Bet, error) {
	if amount < MinBet || amount > MaxBet {
		return nil, ErrBetOutOfRange
	}

	var bet models.Bet
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var odds int64

		switch kind {
		case models.BetKindBattle:
			lastID, err := s.Battles.LastBattleID(tx)
			if err != nil {
				return err
			}
			if eventID <= lastID {
				return ErrBetsClosed
			}
			position = 1
			odds, err = s.battleOdds(tx, eventID, henID)
			if err != nil {
				return err
			}

		case models.BetKindRace:
			race, err := raceForUpdate(tx, eventID)
			if err != nil {
				return err
			}
			if race.Status == models.RaceStatusCompleted {
				return ErrBetsClosed
			}
			if position < 1 || position > race.MaxParticipants {
				return fmt.Errorf("position %d: %w", position, ErrInvalidPosition)
			}
			odds, err = s.raceOdds(tx, eventID, henID)
			if err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown bet kind %q", kind)
		}

		bet = models.Bet{
			Bettor:   caller,
			Kind:     kind,
			EventID:  eventID,
			HenID:    henID,
			Position: position,
			Amount:   amount,
			OddsX100: odds,
		}
		if err := tx.Create(&bet).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventBetPlaced, caller, bet.ID, map[string]any{
			"kind":     kind,
			"event_id": eventID,
			"hen":      henID,
			"amount":   amount,
			"odds":     odds,
		})
	})
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

// battleOdds is ratio-based on the existing same-side volume for the same
// upcoming battle id: heavy backing on one hen shortens its odds.
func (s *BettingService) battleOdds(tx *gorm.DB, battleID, henID uint64) (int64, error) {
	var sameSide, otherSide int64
	err := tx.Model(&models.Bet{}).
		Where("kind = ? AND event_id = ? AND hen_id = ?", models.BetKindBattle, battleID, henID).
		Select("COALESCE(SUM(amount),0)").Scan(&sameSide).Error
	if err != nil {
		return 0, err
	}
	err = tx.Model(&models.Bet{}).
		Where("kind = ? AND event_id = ? AND hen_id <> ?", models.BetKindBattle, battleID, henID).
		Select("COALESCE(SUM(amount),0)").Scan(&otherSide).Error
	if err != nil {
		return 0, err
	}

	odds := OddsScale + OddsScale*(otherSide+oddsSeedVolume)/(sameSide+oddsSeedVolume)
	return clampOdds(odds, minBattleOdds, maxBattleOdds), nil
}

// raceOdds is an implied position-1 probability proxy: the hen's share of
// the field's combined racing score.
func (s *BettingService) raceOdds(tx *gorm.DB, raceID, henID uint64) (int64, error) {
	var entries []models.RaceEntry
	if err := tx.Where("race_id = ?", raceID).Find(&entries).Error; err != nil {
		return 0, err
	}

	henProxy, totalProxy := int64(0), int64(0)
	for _, entry := range entries {
		var hen models.Hen
		if err := tx.First(&hen, "id = ?", entry.HenID).Error; err != nil {
			return 0, err
		}
		proxy := int64(3*hen.Agility + 2*hen.Endurance + hen.Fortune)
		totalProxy += proxy
		if entry.HenID == henID {
			henProxy = proxy
		}
	}
	if henProxy == 0 {
		// Hen not entered (yet): price it as an average runner
		avgField := int64(MinRaceParticipants)
		return clampOdds(avgField*OddsScale, minRaceOdds, maxRaceOdds), nil
	}

	odds := totalProxy * OddsScale / henProxy
	return clampOdds(odds, minRaceOdds, maxRaceOdds), nil
}

func clampOdds(odds, lo, hi int64) int64 {
	if odds < lo {
		return lo
	}
	if odds > hi {
		return hi
	}
	return odds
}

// ClaimBet settles a bet exactly once. A losing claim still flips Claimed
// (a lost bet cannot be reclaimed) and a winning one credits
// amount × odds / 100 to the bettor's wallet.
func (s *BettingService) ClaimBet(caller string, betID uint64) (int64, error) {
	var payout int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var bet models.Bet
		if err := tx.First(&bet, "id = ?", betID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("bet %d not found", betID)
			}
			return err
		}
		if bet.Bettor != caller {
			return ErrNotBettor
		}
		if bet.Claimed {
			return ErrAlreadyClaimed
		}

		won := false
		switch bet.Kind {
		case models.BetKindBattle:
			var battle models.Battle
			err := tx.First(&battle, "id = ?", bet.EventID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotComplete
			}
			if err != nil {
				return err
			}
			if !battle.IsComplete {
				return ErrEventNotComplete
			}
			won = battle.WinnerID == bet.HenID

		case models.BetKindRace:
			race, err := raceForUpdate(tx, bet.EventID)
			if err != nil {
				return err
			}
			if race.Status != models.RaceStatusCompleted {
				return ErrEventNotComplete
			}
			var entry models.RaceEntry
			err = tx.First(&entry, "race_id = ? AND hen_id = ?", bet.EventID, bet.HenID).Error
			if err == nil {
				won = entry.Position == bet.Position
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// A hen that never entered simply loses the bet.

		default:
			return fmt.Errorf("unknown bet kind %q", bet.Kind)
		}

		if won {
			payout = bet.Amount * bet.OddsX100 / OddsScale
		}

		now := time.Now()
		if err := tx.Model(&models.Bet{}).Where("id = ?", betID).
			Updates(map[string]any{
				"claimed":    true,
				"claimed_at": now,
				"payout":     payout,
			}).Error; err != nil {
			return err
		}
		if payout > 0 {
			if err := s.Wallet.Credit(tx, caller, payout); err != nil {
				return err
			}
		}
		return s.Events.Emit(tx, models.EventBetClaimed, caller, betID, map[string]any{
			"won":    won,
			"payout": payout,
		})
	})
	if err != nil {
		return 0, err
	}
	return payout, nil
}

// BetsByBettor lists an account's bets, newest first.
func (s *BettingService) BetsByBettor(account string, limit int) ([]models.Bet, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var bets []models.Bet
	err := s.DB.Where("bettor = ?", account).Order("id DESC").Limit(limit).Find(&bets).Error
	return bets, err
}

// CurrentBattleOdds and CurrentRaceOdds are pure reads for the query
// surface; placement snapshots use the same formulas inside the bet
// transaction.
func (s *BettingService) CurrentBattleOdds(battleID, henID uint64) (int64, error) {
	return s.battleOdds(s.DB, battleID, henID)
}

func (s *BettingService) CurrentRaceOdds(raceID, henID uint64) (int64, error) {
	return s.raceOdds(s.DB, raceID, henID)
}
