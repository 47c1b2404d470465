package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
)

// HenService is the Entity Registry: it owns hen records and the resale
// marketplace. All other engines read and mutate hens through the helpers
// here, always inside a single transaction per operation.
type HenService struct {
	DB     *gorm.DB
	RNG    Rand
	Events *EventService
	Wallet *WalletService
}

func NewHenService(db *gorm.DB, rng Rand, events *EventService, wallet *WalletService) *HenService {
	return &HenService{DB: db, RNG: rng, Events: events, Wallet: wallet}
}

// henForUpdate loads a live hen inside the caller's transaction. Every
// eligibility check in every engine starts here so state is always
// re-validated at call time, never cached from an earlier read.
func henForUpdate(tx *gorm.DB, id uint64) (*models.Hen, error) {
	var hen models.Hen
	if err := tx.First(&hen, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("hen %d: %w", id, ErrHenNotFound)
		}
		return nil, err
	}
	if !hen.IsAlive {
		return nil, fmt.Errorf("hen %d: %w", id, ErrHenNotAlive)
	}
	return &hen, nil
}

// MintHen creates a generation-0 hen with random traits in [20,100].
// The mint fee is retained by the treasury.
func (s *HenService) MintHen(owner, name string, payment int64) (*models.Hen, error) {
	if payment < MintPrice {
		return nil, ErrInsufficientPayment
	}

	var hen models.Hen
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		hen = models.Hen{
			Owner:     owner,
			Name:      name,
			Power:     s.rollTrait(),
			Agility:   s.rollTrait(),
			Endurance: s.rollTrait(),
			Acumen:    s.rollTrait(),
			Fortune:   s.rollTrait(),
			IsAlive:   true,
		}
		if err := tx.Create(&hen).Error; err != nil {
			return err
		}
		if err := s.Wallet.Credit(tx, models.TreasuryAccount, payment); err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventHenMinted, owner, hen.ID, map[string]any{
			"owner":      owner,
			"name":       name,
			"generation": 0,
		})
	})
	if err != nil {
		return nil, err
	}
	return &hen, nil
}

func (s *HenService) rollTrait() int {
	return MintTraitMin + intn(s.RNG, MintTraitMax-MintTraitMin+1)
}

// CreateOffspring is the registry-internal creation path used by the
// breeding engine, inside the breeding transaction.
func (s *HenService) CreateOffspring(tx *gorm.DB, owner string, traits [5]int, generation int) (*models.Hen, error) {
	hen := models.Hen{
		Owner:      owner,
		Power:      traits[0],
		Agility:    traits[1],
		Endurance:  traits[2],
		Acumen:     traits[3],
		Fortune:    traits[4],
		Generation: generation,
		IsAlive:    true,
	}
	if err := tx.Create(&hen).Error; err != nil {
		return nil, err
	}
	return &hen, nil
}

// GetHen is a pure read for the query surface.
func (s *HenService) GetHen(id uint64) (*models.Hen, error) {
	var hen models.Hen
	if err := s.DB.First(&hen, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("hen %d: %w", id, ErrHenNotFound)
		}
		return nil, err
	}
	return &hen, nil
}

// HensByOwner lists all hens for an account, newest first.
func (s *HenService) HensByOwner(owner string) ([]models.Hen, error) {
	var hens []models.Hen
	err := s.DB.Where("owner = ?", owner).Order("id DESC").Find(&hens).Error
	return hens, err
}

// Leaderboard ranks living hens by wins then XP.
func (s *HenService) Leaderboard(limit int) ([]models.Hen, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var hens []models.Hen
	err := s.DB.Where("is_alive = ?", true).
		Order("wins DESC, xp DESC").Limit(limit).Find(&hens).Error
	return hens, err
}

// Transfer moves ownership and drops any active listing; a sold or gifted
// hen never carries its old listing to the new owner.
func (s *HenService) Transfer(id uint64, from, to string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		hen, err := henForUpdate(tx, id)
		if err != nil {
			return err
		}
		if hen.Owner != from {
			return ErrNotOwner
		}

		if err := tx.Model(&models.Hen{}).Where("id = ?", id).
			Update("owner", to).Error; err != nil {
			return err
		}
		if err := clearListing(tx, id); err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventHenTransferred, from, id, map[string]any{
			"from": from,
			"to":   to,
		})
	})
}

// ListForSale puts a hen on the marketplace, overwriting any prior listing.
func (s *HenService) ListForSale(id uint64, caller string, price int64) error {
	if price <= 0 {
		return fmt.Errorf("price must be positive")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		hen, err := henForUpdate(tx, id)
		if err != nil {
			return err
		}
		if hen.Owner != caller {
			return ErrNotOwner
		}

		listing := models.HenListing{HenID: id, Seller: caller, Price: price, IsActive: true}
		if err := tx.Save(&listing).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventHenListed, caller, id, map[string]any{
			"price": price,
		})
	})
}

// Delist removes an active listing.
func (s *HenService) Delist(id uint64, caller string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		hen, err := henForUpdate(tx, id)
		if err != nil {
			return err
		}
		if hen.Owner != caller {
			return ErrNotOwner
		}

		var listing models.HenListing
		if err := tx.First(&listing, "hen_id = ? AND is_active = ?", id, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveListing
			}
			return err
		}
		if err := tx.Model(&models.HenListing{}).Where("hen_id = ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return s.Events.Emit(tx, models.EventHenDelisted, caller, id, nil)
	})
}

// Purchase atomically transfers ownership, clears the listing and credits
// the seller. Overpayment beyond the listing price is retained by the
// treasury.
func (s *HenService) Purchase(id uint64, buyer string, payment int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		hen, err := henForUpdate(tx, id)
		if err != nil {
			return err
		}

		var listing models.HenListing
		if err := tx.First(&listing, "hen_id = ? AND is_active = ?", id, true).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveListing
			}
			return err
		}
		if payment < listing.Price {
			return ErrInsufficientPayment
		}

		if err := tx.Model(&models.Hen{}).Where("id = ?", id).
			Update("owner", buyer).Error; err != nil {
			return err
		}
		if err := clearListing(tx, id); err != nil {
			return err
		}
		if err := s.Wallet.Credit(tx, listing.Seller, listing.Price); err != nil {
			return err
		}
		if excess := payment - listing.Price; excess > 0 {
			if err := s.Wallet.Credit(tx, models.TreasuryAccount, excess); err != nil {
				return err
			}
		}
		return s.Events.Emit(tx, models.EventHenSold, buyer, id, map[string]any{
			"seller": listing.Seller,
			"buyer":  buyer,
			"price":  listing.Price,
			"hen":    hen.Name,
		})
	})
}

// ActiveListings returns the marketplace view.
func (s *HenService) ActiveListings() ([]models.HenListing, error) {
	var listings []models.HenListing
	err := s.DB.Where("is_active = ?", true).Order("updated_at DESC").Find(&listings).Error
	return listings, err
}

// SetPortraitURL records the uploaded portrait location.
func (s *HenService) SetPortraitURL(id uint64, caller, url string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		hen, err := henForUpdate(tx, id)
		if err != nil {
			return err
		}
		if hen.Owner != caller {
			return ErrNotOwner
		}
		return tx.Model(&models.Hen{}).Where("id = ?", id).
			Update("portrait_url", url).Error
	})
}

func clearListing(tx *gorm.DB, henID uint64) error {
	return tx.Model(&models.HenListing{}).
		Where("hen_id = ? AND is_active = ?", henID, true).
		Update("is_active", false).Error
}

// setBattleCooldown and setBreedingCooldown are the registry-owned cooldown
// mutators used by the combat and breeding engines.
func setBattleCooldown(tx *gorm.DB, henID uint64, until time.Time) error {
	return tx.Model(&models.Hen{}).Where("id = ?", henID).
		Update("battle_cooldown_end", until).Error
}

func setBreedingCooldown(tx *gorm.DB, henID uint64, until time.Time) error {
	return tx.Model(&models.Hen{}).Where("id = ?", henID).
		Update("breeding_cooldown_end", until).Error
}
