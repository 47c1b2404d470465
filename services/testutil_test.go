package services

import (
	"testing"

	"github.com/Jayanth4577/CryptoChuck/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdmin = "admin-account"

// newTestDB opens an isolated in-memory database per test. Pool size is
// pinned to one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Hen{},
		&models.HenListing{},
		&models.BredPair{},
		&models.Battle{},
		&models.Race{},
		&models.RaceEntry{},
		&models.Bet{},
		&models.WalletAccount{},
		&models.GameEvent{},
	))
	return db
}

// engine bundles the full service graph over one test database with a
// deterministic RNG.
type engine struct {
	DB       *gorm.DB
	Events   *EventService
	Wallet   *WalletService
	Hens     *HenService
	Breeding *BreedingService
	Battles  *BattleService
	Racing   *RacingService
	Betting  *BettingService
}

func newEngine(t *testing.T, seed int64) *engine {
	t.Helper()
	db := newTestDB(t)
	rng := NewSeededRand(seed)

	events := NewEventService(db)
	wallet := NewWalletService(db, events)
	hens := NewHenService(db, rng, events, wallet)
	battles := NewBattleService(db, rng, events, wallet)

	return &engine{
		DB:       db,
		Events:   events,
		Wallet:   wallet,
		Hens:     hens,
		Breeding: NewBreedingService(db, rng, hens, events, wallet),
		Battles:  battles,
		Racing:   NewRacingService(db, rng, events, wallet, testAdmin),
		Betting:  NewBettingService(db, battles, events, wallet),
	}
}

// createHen inserts a hen directly, bypassing mint, so tests control traits.
func (e *engine) createHen(t *testing.T, owner string, power, agility, endurance, acumen, fortune int) *models.Hen {
	t.Helper()
	hen := models.Hen{
		Owner:     owner,
		Name:      "test-hen",
		Power:     power,
		Agility:   agility,
		Endurance: endurance,
		Acumen:    acumen,
		Fortune:   fortune,
		IsAlive:   true,
	}
	require.NoError(t, e.DB.Create(&hen).Error)
	return &hen
}

func (e *engine) reloadHen(t *testing.T, id uint64) *models.Hen {
	t.Helper()
	var hen models.Hen
	require.NoError(t, e.DB.First(&hen, "id = ?", id).Error)
	return &hen
}

func (e *engine) balance(t *testing.T, account string) int64 {
	t.Helper()
	balance, err := e.Wallet.BalanceOf(account)
	require.NoError(t, err)
	return balance
}

func (e *engine) eventCount(t *testing.T, kind string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.DB.Model(&models.GameEvent{}).Where("kind = ?", kind).Count(&count).Error)
	return count
}
