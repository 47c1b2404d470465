package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

type BreedingService struct {
	DB     *gorm.DB
	RNG    Rand
	Hens   *HenService
	Events *EventService
	Wallet *WalletService
}

func NewBreedingService(db *gorm.DB, rng Rand, hens *HenService, events *EventService, wallet *WalletService) *BreedingService {
	return &BreedingService{DB: db, RNG: rng, Hens: hens, Events: events, Wallet: wallet}
}

// Breed validates the pair, derives offspring traits and creates the new
// hen, all in one transaction. Precondition order is fixed: fee, self-pair,
// ownership, cooldowns, prior pairing, generation cap; first failure wins.
func (s *BreedingService) Breed(caller string, parentAID, parentBID uint64, fee int64) (*models.Hen, error) {
	if fee < BreedingCost {
		return nil, ErrInsufficientFee
	}
	if parentAID == parentBID {
		return nil, ErrSelfBreeding
	}

	var offspring *models.Hen
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		parentA, err := henForUpdate(tx, parentAID)
		if err != nil {
			return err
		}
		parentB, err := henForUpdate(tx, parentBID)
		if err != nil {
			return err
		}
		if parentA.Owner != caller || parentB.Owner != caller {
			return fmt.Errorf("must own both parents: %w", ErrNotOwner)
		}

		now := time.Now()
		if parentA.BreedingCooldownEnd.After(now) {
			return fmt.Errorf("parent %d: %w", parentAID, ErrOnCooldown)
		}
		if parentB.BreedingCooldownEnd.After(now) {
			return fmt.Errorf("parent %d: %w", parentBID, ErrOnCooldown)
		}

		lowID, highID := parentAID, parentBID
		if lowID > highID {
			lowID, highID = highID, lowID
		}
		var prior models.BredPair
		err = tx.First(&prior, "low_id = ? AND high_id = ?", lowID, highID).Error
		if err == nil {
			return ErrAlreadyBred
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		generation := parentA.Generation
		if parentB.Generation > generation {
			generation = parentB.Generation
		}
		generation++
		if generation > MaxGeneration {
			return ErrGenerationCap
		}

		traits := [5]int{
			s.inheritTrait(parentA.Power, parentB.Power),
			s.inheritTrait(parentA.Agility, parentB.Agility),
			s.inheritTrait(parentA.Endurance, parentB.Endurance),
			s.inheritTrait(parentA.Acumen, parentB.Acumen),
			s.inheritTrait(parentA.Fortune, parentB.Fortune),
		}
		offspring, err = s.Hens.CreateOffspring(tx, caller, traits, generation)
		if err != nil {
			return err
		}

		// Parent side effects: cooldowns, breed counts, XP
		cooldownEnd := now.Add(BreedingCooldown)
		for _, parent := range []*models.Hen{parentA, parentB} {
			if err := setBreedingCooldown(tx, parent.ID, cooldownEnd); err != nil {
				return err
			}
			if err := tx.Model(&models.Hen{}).Where("id = ?", parent.ID).
				Update("breed_count", gorm.Expr("breed_count + 1")).Error; err != nil {
				return err
			}
			if err := awardXP(tx, parent, BreedingXP); err != nil {
				return err
			}
		}

		pair := models.BredPair{LowID: lowID, HighID: highID, OffspringID: offspring.ID}
		if err := tx.Create(&pair).Error; err != nil {
			return err
		}

		// Breeding fee retained, withdrawable by the admin
		if err := s.Wallet.Credit(tx, models.TreasuryAccount, fee); err != nil {
			return err
		}

		return s.Events.Emit(tx, models.EventHenBred, caller, offspring.ID, map[string]any{
			"parent_a":   parentAID,
			"parent_b":   parentBID,
			"offspring":  offspring.ID,
			"generation": generation,
		})
	})
	if err != nil {
		return nil, err
	}
	return offspring, nil
}

// inheritTrait averages the parents and applies a bounded mutation,
// clamped back into the valid [1,100] trait range.
func (s *BreedingService) inheritTrait(a, b int) int {
	avg := (a + b + 1) / 2 // round half up
	mutation := intn(s.RNG, 2*MutationBound+1) - MutationBound
	return clampTrait(avg + mutation)
}

func clampTrait(v int) int {
	if v < 1 {
		return 1
	}
	if v > 100 {
		return 100
	}
	return v
}

// HasBred reports whether the pair has bred before, in either order.
func (s *BreedingService) HasBred(a, b uint64) (bool, error) {
	if a > b {
		a, b = b, a
	}
	var pair models.BredPair
	err := s.DB.First(&pair, "low_id = ? AND high_id = ?", a, b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Offspring lists the hens bred from the given parent.
func (s *BreedingService) Offspring(parentID uint64) ([]uint64, error) {
	var pairs []models.BredPair
	err := s.DB.Where("low_id = ? OR high_id = ?", parentID, parentID).
		Order("id ASC").Find(&pairs).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(pairs))
	for _, p := range pairs {
		ids = append(ids, p.OffspringID)
	}
	return ids, nil
}
