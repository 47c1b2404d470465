package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

type RacingService struct {
	DB     *gorm.DB
	RNG    Rand
	Events *EventService
	Wallet *WalletService

	AdminAccount string
}

func NewRacingService(db *gorm.DB, rng Rand, events *EventService, wallet *WalletService, admin string) *RacingService {
	return &RacingService{DB: db, RNG: rng, Events: events, Wallet: wallet, AdminAccount: admin}
}

// CreateRace opens a new race. Admin-only; the number of simultaneously
// open races is capped so the book stays indexable.
func (s *RacingService) CreateRace(caller string, entryFee int64, maxParticipants int) (*models.Race, error) {
	if caller != s.AdminAccount {
		return nil, ErrNotAdmin
	}
	if entryFee < 0 {
		return nil, fmt.Errorf("entry fee must be non-negative")
	}
	if maxParticipants < MinRaceParticipants || maxParticipants > MaxRaceParticipants {
		return nil, fmt.Errorf("invalid participant count: must be %d..%d", MinRaceParticipants, MaxRaceParticipants)
	}

	var race models.Race
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var open int64
		if err := tx.Model(&models.Race{}).
			Where("status = ?", models.RaceStatusOpen).Count(&open).Error; err != nil {
			return err
		}
		if open >= MaxOpenRaces {
			return ErrTooManyOpenRaces
		}

		race = models.Race{
			EntryFee:        entryFee,
			MaxParticipants: maxParticipants,
			Status:          models.RaceStatusOpen,
		}
		if err := tx.Create(&race).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventRaceCreated, caller, race.ID, map[string]any{
			"entry_fee":        entryFee,
			"max_participants": maxParticipants,
		})
	})
	if err != nil {
		return nil, err
	}
	return &race, nil
}

// EnterRace appends a hen to an open race and adds the exact entry fee to
// the prize pool.
func (s *RacingService) EnterRace(caller string, raceID, henID uint64, fee int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		race, err := raceForUpdate(tx, raceID)
		if err != nil {
			return err
		}
		// Status first: a started or completed race rejects entries as
		// not-open even when it is also at capacity.
		if race.Status != models.RaceStatusOpen {
			return ErrRaceNotOpen
		}
		if fee != race.EntryFee {
			return ErrIncorrectEntryFee
		}

		hen, err := henForUpdate(tx, henID)
		if err != nil {
			return err
		}
		if hen.Owner != caller {
			return ErrNotOwner
		}

		var count int64
		if err := tx.Model(&models.RaceEntry{}).
			Where("race_id = ? AND hen_id = ?", raceID, henID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyEntered
		}

		var entered int64
		if err := tx.Model(&models.RaceEntry{}).
			Where("race_id = ?", raceID).Count(&entered).Error; err != nil {
			return err
		}
		if entered >= int64(race.MaxParticipants) {
			return ErrRaceFull
		}

		entry := models.RaceEntry{RaceID: raceID, HenID: henID, Owner: caller}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Race{}).Where("id = ?", raceID).
			Update("prize_pool", gorm.Expr("prize_pool + ?", fee)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Hen{}).Where("id = ?", henID).
			Update("races_entered", gorm.Expr("races_entered + 1")).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventRaceEntered, caller, raceID, map[string]any{
			"hen": henID,
			"fee": fee,
		})
	})
}

// StartRace closes entries and starts the clock. Admin-only.
func (s *RacingService) StartRace(caller string, raceID uint64) error {
	if caller != s.AdminAccount {
		return ErrNotAdmin
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		race, err := raceForUpdate(tx, raceID)
		if err != nil {
			return err
		}
		if race.Status != models.RaceStatusOpen {
			return ErrRaceNotOpen
		}

		var entered int64
		if err := tx.Model(&models.RaceEntry{}).
			Where("race_id = ?", raceID).Count(&entered).Error; err != nil {
			return err
		}
		if entered < MinRaceEntrants {
			return ErrNotEnoughParticipants
		}

		now := time.Now()
		if err := tx.Model(&models.Race{}).Where("id = ?", raceID).
			Updates(map[string]any{
				"status":     models.RaceStatusStarted,
				"started_at": now,
			}).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventRaceStarted, caller, raceID, map[string]any{
			"participants": entered,
		})
	})
}

// CompleteRace finalizes a started race once the race duration has elapsed:
// ranks every entrant, pays the top three 50/30/20 and awards XP. Calling
// it again on a completed race fails with AlreadyComplete and never pays
// twice.
func (s *RacingService) CompleteRace(caller string, raceID uint64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		race, err := raceForUpdate(tx, raceID)
		if err != nil {
			return err
		}
		switch race.Status {
		case models.RaceStatusCompleted:
			return ErrAlreadyComplete
		case models.RaceStatusOpen:
			return ErrRaceNotStarted
		}

		now := time.Now()
		if race.StartedAt == nil || now.Before(race.StartedAt.Add(RaceDuration)) {
			return ErrTooEarly
		}

		var entries []models.RaceEntry
		if err := tx.Where("race_id = ?", raceID).Order("id ASC").
			Find(&entries).Error; err != nil {
			return err
		}

		// Rank by agility-weighted score with a bounded fortune perturbation.
		type ranked struct {
			entry models.RaceEntry
			hen   models.Hen
			score int
		}
		field := make([]ranked, 0, len(entries))
		for _, entry := range entries {
			var hen models.Hen
			if err := tx.First(&hen, "id = ?", entry.HenID).Error; err != nil {
				return err
			}
			score := 3*hen.Agility + 2*hen.Endurance + intn(s.RNG, hen.Fortune+1)
			field = append(field, ranked{entry: entry, hen: hen, score: score})
		}
		sort.SliceStable(field, func(i, j int) bool {
			return field[i].score > field[j].score
		})

		paid := int64(0)
		for pos, r := range field {
			position := pos + 1
			prize := int64(0)
			if pos < len(PrizeDistribution) {
				prize = race.PrizePool * PrizeDistribution[pos] / 100
			}
			paid += prize

			if err := tx.Model(&models.RaceEntry{}).Where("id = ?", r.entry.ID).
				Updates(map[string]any{
					"position": position,
					"score":    r.score,
					"prize":    prize,
				}).Error; err != nil {
				return err
			}

			xp := RaceEntrantXP
			henUpdates := map[string]any{}
			if position == 1 {
				xp = RaceWinnerXP
				henUpdates["races_won"] = gorm.Expr("races_won + 1")
			}
			henUpdates["xp"] = gorm.Expr("xp + ?", xp)
			if prize > 0 {
				henUpdates["prize_earned"] = gorm.Expr("prize_earned + ?", prize)
				if err := s.Wallet.Credit(tx, r.entry.Owner, prize); err != nil {
					return err
				}
			}
			if err := tx.Model(&models.Hen{}).Where("id = ?", r.hen.ID).
				Updates(henUpdates).Error; err != nil {
				return err
			}
		}

		// Rounding remainder is retained, never redistributed
		if remainder := race.PrizePool - paid; remainder > 0 {
			if err := s.Wallet.Credit(tx, models.TreasuryAccount, remainder); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Race{}).Where("id = ?", raceID).
			Updates(map[string]any{
				"status":       models.RaceStatusCompleted,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventRaceCompleted, caller, raceID, map[string]any{
			"winner":     field[0].entry.HenID,
			"prize_pool": race.PrizePool,
		})
	})
}

func raceForUpdate(tx *gorm.DB, id uint64) (*models.Race, error) {
	var race models.Race
	if err := tx.First(&race, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("race %d: %w", id, ErrRaceNotFound)
		}
		return nil, err
	}
	return &race, nil
}

// GetRace returns a race with its entries for the query surface.
func (s *RacingService) GetRace(id uint64) (*models.Race, error) {
	var race models.Race
	if err := s.DB.Preload("Entries").First(&race, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &race, nil
}

// RacesByStatus lists races in a lifecycle state, newest first.
func (s *RacingService) RacesByStatus(status string, limit int) ([]models.Race, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var races []models.Race
	err := s.DB.Preload("Entries").Where("status = ?", status).
		Order("id DESC").Limit(limit).Find(&races).Error
	return races, err
}

// OverdueRaces returns started races whose duration has elapsed; the
// settlement scheduler completes these on the admin's behalf.
func (s *RacingService) OverdueRaces() ([]models.Race, error) {
	cutoff := time.Now().Add(-RaceDuration)
	var races []models.Race
	err := s.DB.Where("status = ? AND started_at <= ?", models.RaceStatusStarted, cutoff).
		Find(&races).Error
	return races, err
}
