// services/scheduler.go
package services

import (
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSettlementScheduler completes started races whose duration has
// elapsed, acting as the admin caller. Completion is idempotent-by-failure:
// a race settled by a user call in between simply returns AlreadyComplete
// here and is skipped.
func (s *RacingService) StartSettlementScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every 15s: settle overdue races
	_, _ = sched.NewJob(
		gocron.DurationJob(15*time.Second),
		gocron.NewTask(func() {
			races, err := s.OverdueRaces()
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, race := range races {
				if err := s.CompleteRace(s.AdminAccount, race.ID); err != nil {
					if errors.Is(err, ErrAlreadyComplete) || errors.Is(err, ErrTooEarly) {
						continue
					}
					log.Printf("[Scheduler] Failed to settle race %d: %v", race.ID, err)
				} else {
					log.Printf("✅ Auto-settled race %d (pool %d µCHK)", race.ID, race.PrizePool)
				}
			}
		}),
	)
}
