package workers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Jayanth4577/CryptoChuck/models"
	"github.com/Jayanth4577/CryptoChuck/services"

	"gorm.io/gorm"
)

// OddsBoard is the in-memory odds snapshot served to read-heavy clients.
// Placement always recomputes odds inside its own transaction; this board
// only exists so the public odds page does not hammer the DB per viewer.
type OddsBoard struct {
	mu        sync.RWMutex
	races     map[uint64]map[uint64]int64 // race id -> hen id -> odds x100
	updatedAt time.Time
}

func NewOddsBoard() *OddsBoard {
	return &OddsBoard{races: make(map[uint64]map[uint64]int64)}
}

func (b *OddsBoard) replace(races map[uint64]map[uint64]int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.races = races
	b.updatedAt = time.Now().UTC()
}

// Snapshot returns a copy of the board plus its refresh time.
func (b *OddsBoard) Snapshot() (map[uint64]map[uint64]int64, time.Time) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[uint64]map[uint64]int64, len(b.races))
	for raceID, entries := range b.races {
		row := make(map[uint64]int64, len(entries))
		for henID, odds := range entries {
			row[henID] = odds
		}
		out[raceID] = row
	}
	return out, b.updatedAt
}

// OddsRefreshWorker periodically recomputes race odds for every race that
// is still accepting bets and keeps the shared OddsBoard warm.
type OddsRefreshWorker struct {
	DB      *gorm.DB
	Betting *services.BettingService
	Board   *OddsBoard
}

func NewOddsRefreshWorker(db *gorm.DB, betting *services.BettingService, board *OddsBoard) *OddsRefreshWorker {
	return &OddsRefreshWorker{DB: db, Betting: betting, Board: board}
}

// staleOpenAge is how long an open race may sit without entrants before the
// sweep starts flagging it for the operator.
const staleOpenAge = 24 * time.Hour

// PollOdds refreshes the board on a ticker until ctx is cancelled.
func (w *OddsRefreshWorker) PollOdds(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting odds refresh worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Odds refresh worker stopped.")
			return
		case <-ticker.C:
			var races []models.Race
			if err := w.DB.Preload("Entries").
				Where("status IN ?", []string{models.RaceStatusOpen, models.RaceStatusStarted}).
				Find(&races).Error; err != nil {
				log.Printf("❌ Odds refresh query failed: %v", err)
				continue
			}

			board := make(map[uint64]map[uint64]int64, len(races))
			for _, race := range races {
				if race.Status == models.RaceStatusOpen && len(race.Entries) == 0 &&
					time.Since(race.CreatedAt) > staleOpenAge {
					log.Printf("⚠️ Race %d has been open for %s with no entrants", race.ID, time.Since(race.CreatedAt).Round(time.Hour))
					continue
				}

				row := make(map[uint64]int64, len(race.Entries))
				for _, entry := range race.Entries {
					odds, err := w.Betting.CurrentRaceOdds(race.ID, entry.HenID)
					if err != nil {
						log.Printf("❌ Failed to price hen %d in race %d: %v", entry.HenID, race.ID, err)
						continue
					}
					row[entry.HenID] = odds
				}
				if len(row) > 0 {
					board[race.ID] = row
				}
			}

			w.Board.replace(board)
			log.Printf("📊 Odds board refreshed: %d race(s) priced.", len(board))
		}
	}
}
