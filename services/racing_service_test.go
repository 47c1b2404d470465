package services

import (
	"testing"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStartedRace creates a race, fills it with one dominant hen and four
// slow ones, and starts it. Returns the race and the dominant hen.
func setupStartedRace(t *testing.T, e *engine, entryFee int64) (*models.Race, *models.Hen) {
	t.Helper()
	race, err := e.Racing.CreateRace(testAdmin, entryFee, MinRaceParticipants)
	require.NoError(t, err)

	fast := e.createHen(t, "owner-0", 1, 100, 100, 1, 1)
	require.NoError(t, e.Racing.EnterRace("owner-0", race.ID, fast.ID, entryFee))
	for i := 1; i < MinRaceParticipants; i++ {
		owner := string(rune('a'+i)) + "-owner"
		slow := e.createHen(t, owner, 1, 1, 1, 1, 1)
		require.NoError(t, e.Racing.EnterRace(owner, race.ID, slow.ID, entryFee))
	}

	require.NoError(t, e.Racing.StartRace(testAdmin, race.ID))
	return race, fast
}

// rewindRaceStart pushes started_at back past the race duration so
// CompleteRace stops failing with TooEarly.
func rewindRaceStart(t *testing.T, e *engine, raceID uint64) {
	t.Helper()
	past := time.Now().Add(-RaceDuration - time.Second)
	require.NoError(t, e.DB.Model(&models.Race{}).Where("id = ?", raceID).
		Update("started_at", past).Error)
}

func TestCreateRaceAdminOnly(t *testing.T) {
	e := newEngine(t, 3)

	_, err := e.Racing.CreateRace("alice", 10_000, 10)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestCreateRaceParticipantBounds(t *testing.T) {
	e := newEngine(t, 3)

	_, err := e.Racing.CreateRace(testAdmin, 10_000, MinRaceParticipants-1)
	assert.Error(t, err)
	_, err = e.Racing.CreateRace(testAdmin, 10_000, MaxRaceParticipants+1)
	assert.Error(t, err)
}

func TestCreateRaceOpenCap(t *testing.T) {
	e := newEngine(t, 3)

	for i := 0; i < MaxOpenRaces; i++ {
		_, err := e.Racing.CreateRace(testAdmin, 10_000, 10)
		require.NoError(t, err)
	}
	_, err := e.Racing.CreateRace(testAdmin, 10_000, 10)
	assert.ErrorIs(t, err, ErrTooManyOpenRaces)
}

func TestEnterRace(t *testing.T) {
	e := newEngine(t, 3)
	race, err := e.Racing.CreateRace(testAdmin, 10_000, MinRaceParticipants)
	require.NoError(t, err)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	// Fee must match exactly, over or under
	assert.ErrorIs(t, e.Racing.EnterRace("alice", race.ID, hen.ID, 9_999), ErrIncorrectEntryFee)
	assert.ErrorIs(t, e.Racing.EnterRace("alice", race.ID, hen.ID, 10_001), ErrIncorrectEntryFee)

	// Only the owner enters the hen
	assert.ErrorIs(t, e.Racing.EnterRace("bob", race.ID, hen.ID, 10_000), ErrNotOwner)

	require.NoError(t, e.Racing.EnterRace("alice", race.ID, hen.ID, 10_000))
	assert.ErrorIs(t, e.Racing.EnterRace("alice", race.ID, hen.ID, 10_000), ErrAlreadyEntered)

	loaded, err := e.Racing.GetRace(race.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), loaded.PrizePool)
	assert.Len(t, loaded.Entries, 1)
	assert.Equal(t, 1, e.reloadHen(t, hen.ID).RacesEntered)
}

func TestEnterRaceFull(t *testing.T) {
	e := newEngine(t, 3)
	race, err := e.Racing.CreateRace(testAdmin, 0, MinRaceParticipants)
	require.NoError(t, err)

	for i := 0; i < MinRaceParticipants; i++ {
		hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)
		require.NoError(t, e.Racing.EnterRace("alice", race.ID, hen.ID, 0))
	}

	extra := e.createHen(t, "alice", 50, 50, 50, 50, 50)
	assert.ErrorIs(t, e.Racing.EnterRace("alice", race.ID, extra.ID, 0), ErrRaceFull)
}

func TestStartRaceRequiresEntrants(t *testing.T) {
	e := newEngine(t, 3)
	race, err := e.Racing.CreateRace(testAdmin, 0, 10)
	require.NoError(t, err)

	assert.ErrorIs(t, e.Racing.StartRace("alice", race.ID), ErrNotAdmin)
	assert.ErrorIs(t, e.Racing.StartRace(testAdmin, race.ID), ErrNotEnoughParticipants)
}

func TestEnterStartedRace(t *testing.T) {
	e := newEngine(t, 3)
	race, _ := setupStartedRace(t, e, 0)

	// The started race is also at capacity; the status rejection must win
	// over the full one.
	loaded, err := e.Racing.GetRace(race.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, race.MaxParticipants)

	late := e.createHen(t, "late", 50, 50, 50, 50, 50)
	assert.ErrorIs(t, e.Racing.EnterRace("late", race.ID, late.ID, 0), ErrRaceNotOpen)
}

func TestEnterUnknownRace(t *testing.T) {
	e := newEngine(t, 3)
	hen := e.createHen(t, "alice", 50, 50, 50, 50, 50)

	assert.ErrorIs(t, e.Racing.EnterRace("alice", 9999, hen.ID, 0), ErrRaceNotFound)
}

func TestCompleteRaceLifecycle(t *testing.T) {
	e := newEngine(t, 3)

	openRace, err := e.Racing.CreateRace(testAdmin, 0, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, e.Racing.CompleteRace(testAdmin, openRace.ID), ErrRaceNotStarted)

	race, fast := setupStartedRace(t, e, 10_000)

	// The clock has not run yet
	assert.ErrorIs(t, e.Racing.CompleteRace(testAdmin, race.ID), ErrTooEarly)

	rewindRaceStart(t, e, race.ID)
	require.NoError(t, e.Racing.CompleteRace(testAdmin, race.ID))

	// 5 × 10_000 pool splits 50/30/20
	done, err := e.Racing.GetRace(race.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RaceStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	prizeByPosition := map[int]int64{}
	var winnerHenID uint64
	for _, entry := range done.Entries {
		prizeByPosition[entry.Position] = entry.Prize
		if entry.Position == 1 {
			winnerHenID = entry.HenID
		}
	}
	assert.Equal(t, int64(25_000), prizeByPosition[1])
	assert.Equal(t, int64(15_000), prizeByPosition[2])
	assert.Equal(t, int64(10_000), prizeByPosition[3])
	assert.Equal(t, int64(0), prizeByPosition[4])
	assert.Equal(t, int64(0), prizeByPosition[5])

	// The dominant hen wins deterministically
	assert.Equal(t, fast.ID, winnerHenID)
	winner := e.reloadHen(t, fast.ID)
	assert.Equal(t, 1, winner.RacesWon)
	assert.Equal(t, RaceWinnerXP, winner.XP)
	assert.Equal(t, int64(25_000), winner.PrizeEarned)
	assert.Equal(t, int64(25_000), e.balance(t, "owner-0"))

	// Completion is one-shot and never pays twice
	assert.ErrorIs(t, e.Racing.CompleteRace(testAdmin, race.ID), ErrAlreadyComplete)
	assert.Equal(t, int64(25_000), e.balance(t, "owner-0"))

	assert.Equal(t, int64(1), e.eventCount(t, models.EventRaceCompleted))
}

func TestCompleteRaceRemainderToTreasury(t *testing.T) {
	e := newEngine(t, 3)
	race, _ := setupStartedRace(t, e, 1_001)
	rewindRaceStart(t, e, race.ID)

	require.NoError(t, e.Racing.CompleteRace(testAdmin, race.ID))

	// Pool 5_005 pays 2_502 + 1_501 + 1_001 = 5_004; the µCHK left over is
	// retained, never redistributed.
	assert.Equal(t, int64(1), e.balance(t, models.TreasuryAccount))
}

func TestCompleteRaceEntrantXP(t *testing.T) {
	e := newEngine(t, 3)
	race, fast := setupStartedRace(t, e, 0)
	rewindRaceStart(t, e, race.ID)
	require.NoError(t, e.Racing.CompleteRace(testAdmin, race.ID))

	done, err := e.Racing.GetRace(race.ID)
	require.NoError(t, err)
	for _, entry := range done.Entries {
		hen := e.reloadHen(t, entry.HenID)
		if entry.HenID == fast.ID {
			assert.Equal(t, RaceWinnerXP, hen.XP)
		} else {
			assert.Equal(t, RaceEntrantXP, hen.XP)
		}
	}
}

func TestOverdueRaces(t *testing.T) {
	e := newEngine(t, 3)
	race, _ := setupStartedRace(t, e, 0)

	overdue, err := e.Racing.OverdueRaces()
	require.NoError(t, err)
	assert.Empty(t, overdue)

	rewindRaceStart(t, e, race.ID)
	overdue, err = e.Racing.OverdueRaces()
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, race.ID, overdue[0].ID)
}
