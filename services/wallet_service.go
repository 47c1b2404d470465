package services

import (
	"errors"

	"github.com/Jayanth4577/CryptoChuck/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletService is the in-engine earnings ledger. It never holds caller
// funds up front; fees and payments arrive as request amounts (the
// gateway's settled transaction value) and credits accumulate here until
// withdrawn.
type WalletService struct {
	DB     *gorm.DB
	Events *EventService
}

func NewWalletService(db *gorm.DB, events *EventService) *WalletService {
	return &WalletService{DB: db, Events: events}
}

// Credit adds amount to the account inside the caller's transaction,
// creating the row on first touch.
func (s *WalletService) Credit(tx *gorm.DB, address string, amount int64) error {
	if amount == 0 {
		return nil
	}
	acct := models.WalletAccount{Address: address, Balance: amount}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{"balance": gorm.Expr("balance + ?", amount)}),
	}).Create(&acct).Error
}

// BalanceOf is a pure read for the query surface.
func (s *WalletService) BalanceOf(address string) (int64, error) {
	var acct models.WalletAccount
	err := s.DB.First(&acct, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// WithdrawTreasury zeroes the treasury account and returns the withdrawn
// amount. Admin-gated by the caller (middleware), mirroring the original
// contracts' owner-only withdraw().
func (s *WalletService) WithdrawTreasury(admin string) (int64, error) {
	var withdrawn int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var acct models.WalletAccount
		err := tx.First(&acct, "address = ?", models.TreasuryAccount).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			withdrawn = 0
			return nil
		}
		if err != nil {
			return err
		}

		withdrawn = acct.Balance
		if err := tx.Model(&models.WalletAccount{}).
			Where("address = ?", models.TreasuryAccount).
			Update("balance", 0).Error; err != nil {
			return err
		}

		return s.Events.Emit(tx, models.EventFundsWithdrawn, admin, 0, map[string]any{
			"amount": withdrawn,
		})
	})
	return withdrawn, err
}
