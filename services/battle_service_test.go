package services

import (
	"testing"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFightStrongerHenWins(t *testing.T) {
	e := newEngine(t, 42)
	strong := e.createHen(t, "alice", 100, 100, 100, 100, 1)
	weak := e.createHen(t, "bob", 1, 1, 1, 1, 1)

	battle, err := e.Battles.Fight("alice", strong.ID, weak.ID)
	require.NoError(t, err)

	// A 700-base hen cannot lose a round to a 7-base hen
	assert.Equal(t, strong.ID, battle.WinnerID)
	assert.True(t, battle.IsComplete)
	assert.Equal(t, BattleReward, battle.Reward)

	winner := e.reloadHen(t, strong.ID)
	loser := e.reloadHen(t, weak.ID)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, BattleWinnerXP, winner.XP)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 0, loser.Wins)
	assert.Equal(t, BattleLoserXP, loser.XP)

	// Winner's owner is paid, both hens cool down
	assert.Equal(t, BattleReward, e.balance(t, "alice"))
	now := time.Now()
	assert.WithinDuration(t, now.Add(BattleCooldown), winner.BattleCooldownEnd, 10*time.Second)
	assert.WithinDuration(t, now.Add(BattleCooldown), loser.BattleCooldownEnd, 10*time.Second)

	assert.Equal(t, int64(1), e.eventCount(t, models.EventBattleCompleted))
}

func TestFightSelf(t *testing.T) {
	e := newEngine(t, 42)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	_, err := e.Battles.Fight("alice", hen.ID, hen.ID)
	assert.ErrorIs(t, err, ErrSelfBattle)
}

func TestFightRequiresChallengerOwnership(t *testing.T) {
	e := newEngine(t, 42)
	h1 := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	h2 := e.createHen(t, "bob", 50, 50, 50, 50, 50)

	_, err := e.Battles.Fight("bob", h1.ID, h2.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// Ownership is checked before the self-pair rule
	_, err = e.Battles.Fight("bob", h1.ID, h1.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestFightCooldown(t *testing.T) {
	e := newEngine(t, 42)
	h1 := e.createHen(t, "alice", 100, 100, 100, 100, 1)
	h2 := e.createHen(t, "bob", 1, 1, 1, 1, 1)
	h3 := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	_, err := e.Battles.Fight("alice", h1.ID, h2.ID)
	require.NoError(t, err)

	// h1 is cooling down as the challenger's hen
	_, err = e.Battles.Fight("alice", h1.ID, h3.ID)
	assert.ErrorIs(t, err, ErrOnCooldown)

	// h2 is cooling down as the opponent
	_, err = e.Battles.Fight("alice", h3.ID, h2.ID)
	assert.ErrorIs(t, err, ErrOnCooldown)
}

func TestFightDeadHen(t *testing.T) {
	e := newEngine(t, 42)
	h1 := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	h2 := e.createHen(t, "bob", 50, 50, 50, 50, 50)
	require.NoError(t, e.DB.Model(&models.Hen{}).Where("id = ?", h2.ID).
		Update("is_alive", false).Error)

	_, err := e.Battles.Fight("alice", h1.ID, h2.ID)
	assert.ErrorIs(t, err, ErrHenNotAlive)
}

func TestFightUnknownHen(t *testing.T) {
	e := newEngine(t, 42)
	h1 := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	_, err := e.Battles.Fight("alice", h1.ID, 9999)
	assert.ErrorIs(t, err, ErrHenNotFound)
}

func TestLastBattleID(t *testing.T) {
	e := newEngine(t, 42)

	last, err := e.Battles.LastBattleID(e.DB)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), last)

	h1 := e.createHen(t, "alice", 100, 100, 100, 100, 1)
	h2 := e.createHen(t, "bob", 1, 1, 1, 1, 1)
	battle, err := e.Battles.Fight("alice", h1.ID, h2.ID)
	require.NoError(t, err)

	last, err = e.Battles.LastBattleID(e.DB)
	require.NoError(t, err)
	assert.Equal(t, battle.ID, last)
}

func TestBattlesByPlayer(t *testing.T) {
	e := newEngine(t, 42)
	h1 := e.createHen(t, "alice", 100, 100, 100, 100, 1)
	h2 := e.createHen(t, "bob", 1, 1, 1, 1, 1)

	_, err := e.Battles.Fight("alice", h1.ID, h2.ID)
	require.NoError(t, err)

	for _, account := range []string{"alice", "bob"} {
		battles, err := e.Battles.BattlesByPlayer(account, 10)
		require.NoError(t, err)
		assert.Len(t, battles, 1)
	}

	battles, err := e.Battles.BattlesByPlayer("carol", 10)
	require.NoError(t, err)
	assert.Empty(t, battles)
}
