package services

import (
	"testing"

	"github.com/Jayanth4577/CryptoChuck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintHen(t *testing.T) {
	e := newEngine(t, 1)

	hen, err := e.Hens.MintHen("alice", "Henrietta", MintPrice)
	require.NoError(t, err)

	assert.Equal(t, "alice", hen.Owner)
	assert.Equal(t, 0, hen.Generation)
	assert.True(t, hen.IsAlive)
	for _, trait := range []int{hen.Power, hen.Agility, hen.Endurance, hen.Acumen, hen.Fortune} {
		assert.GreaterOrEqual(t, trait, MintTraitMin)
		assert.LessOrEqual(t, trait, MintTraitMax)
	}

	// Mint fee goes to the treasury and exactly one event is written
	assert.Equal(t, MintPrice, e.balance(t, models.TreasuryAccount))
	assert.Equal(t, int64(1), e.eventCount(t, models.EventHenMinted))
}

func TestMintHenInsufficientPayment(t *testing.T) {
	e := newEngine(t, 1)

	_, err := e.Hens.MintHen("alice", "Henrietta", MintPrice-1)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Equal(t, int64(0), e.balance(t, models.TreasuryAccount))
}

func TestTransfer(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	require.NoError(t, e.Hens.ListForSale(hen.ID, "alice", 5*MintPrice))
	require.NoError(t, e.Hens.Transfer(hen.ID, "alice", "bob"))

	assert.Equal(t, "bob", e.reloadHen(t, hen.ID).Owner)

	// Transfer drops the active listing
	listings, err := e.Hens.ActiveListings()
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestTransferNotOwner(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	err := e.Hens.Transfer(hen.ID, "mallory", "bob")
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, "alice", e.reloadHen(t, hen.ID).Owner)
}

func TestMarketplacePurchase(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	price := int64(250_000)

	require.NoError(t, e.Hens.ListForSale(hen.ID, "alice", price))
	require.NoError(t, e.Hens.Purchase(hen.ID, "bob", price))

	assert.Equal(t, "bob", e.reloadHen(t, hen.ID).Owner)
	assert.Equal(t, price, e.balance(t, "alice"))
	assert.Equal(t, int64(1), e.eventCount(t, models.EventHenSold))

	// Listing is consumed
	err := e.Hens.Purchase(hen.ID, "carol", price)
	assert.ErrorIs(t, err, ErrNoActiveListing)
}

func TestPurchaseOverpaymentGoesToTreasury(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	price := int64(100_000)

	require.NoError(t, e.Hens.ListForSale(hen.ID, "alice", price))
	require.NoError(t, e.Hens.Purchase(hen.ID, "bob", price+7_000))

	assert.Equal(t, price, e.balance(t, "alice"))
	assert.Equal(t, int64(7_000), e.balance(t, models.TreasuryAccount))
}

func TestPurchaseInsufficientPayment(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	require.NoError(t, e.Hens.ListForSale(hen.ID, "alice", 100_000))
	err := e.Hens.Purchase(hen.ID, "bob", 99_999)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
	assert.Equal(t, "alice", e.reloadHen(t, hen.ID).Owner)
}

func TestDelist(t *testing.T) {
	e := newEngine(t, 1)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	assert.ErrorIs(t, e.Hens.Delist(hen.ID, "alice"), ErrNoActiveListing)

	require.NoError(t, e.Hens.ListForSale(hen.ID, "alice", 100_000))
	require.NoError(t, e.Hens.Delist(hen.ID, "alice"))

	listings, err := e.Hens.ActiveListings()
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestGetHenNotFound(t *testing.T) {
	e := newEngine(t, 1)

	_, err := e.Hens.GetHen(9999)
	assert.ErrorIs(t, err, ErrHenNotFound)
}

func TestLeaderboardOrder(t *testing.T) {
	e := newEngine(t, 1)

	a := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	b := e.createHen(t, "bob", 50, 50, 50, 50, 50)
	c := e.createHen(t, "carol", 50, 50, 50, 50, 50)

	require.NoError(t, e.DB.Model(&models.Hen{}).Where("id = ?", a.ID).Updates(map[string]any{"wins": 2, "xp": 100}).Error)
	require.NoError(t, e.DB.Model(&models.Hen{}).Where("id = ?", b.ID).Updates(map[string]any{"wins": 2, "xp": 500}).Error)
	require.NoError(t, e.DB.Model(&models.Hen{}).Where("id = ?", c.ID).Updates(map[string]any{"wins": 5, "xp": 0}).Error)

	board, err := e.Hens.Leaderboard(10)
	require.NoError(t, err)
	require.Len(t, board, 3)

	// Wins first, XP breaks ties
	assert.Equal(t, c.ID, board[0].ID)
	assert.Equal(t, b.ID, board[1].ID)
	assert.Equal(t, a.ID, board[2].ID)
}
