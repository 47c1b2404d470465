package models

// TreasuryAccount accrues mint/breeding fees, purchase excess and prize-pool
// rounding remainders. Only the admin may withdraw it.
const TreasuryAccount = "$treasury"

// WalletAccount is the in-engine earnings ledger: sale proceeds, race
// prizes, battle rewards and bet payouts are credited here. Balances are
// int64 µCHK (1 CHK = 1_000_000 µCHK).
type WalletAccount struct {
	Address string `gorm:"primaryKey;type:varchar(128)" json:"address"`
	Balance int64  `gorm:"not null;default:0" json:"balance"`

	Timestamps
}
