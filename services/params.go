package services

import "time"

// Game parameters. Amounts are int64 µCHK (1 CHK = 1_000_000 µCHK), so the
// original 0.01 fees are 10_000 µCHK. Tunable via config/env later if the
// product ever needs per-deployment balancing.
const (
	Microchuck = int64(1_000_000) // µCHK per CHK

	// Registry / minting
	MintPrice    = int64(10_000) // 0.01 CHK
	MintTraitMin = 20
	MintTraitMax = 100

	// Breeding
	BreedingCost     = int64(10_000) // 0.01 CHK
	BreedingCooldown = 7 * 24 * time.Hour
	BreedingXP       = int64(25) // per parent
	MaxGeneration    = 10
	MutationBound    = 5 // offspring trait mutation in [-5,+5]

	// Combat
	BattleReward   = 100 * Microchuck // 100 CHK to the winner's owner
	BattleCooldown = time.Hour
	BattleRounds   = 3
	BattleWinnerXP = int64(150)
	BattleLoserXP  = int64(50)

	// Racing
	MinRaceParticipants = 5
	MaxRaceParticipants = 20
	MinRaceEntrants     = 5 // required before startRace
	MaxOpenRaces        = 5
	RaceDuration        = 30 * time.Second
	RaceWinnerXP        = int64(105)
	RaceEntrantXP       = int64(30)

	// Wagering
	MinBet    = int64(1_000)     // 0.001 CHK
	MaxBet    = 100 * Microchuck // 100 CHK
	OddsScale = int64(100)       // odds are fixed-point ×100
)

// Prize split for race positions 1–3 (percent of pool). Integer division
// remainder is retained by the treasury, never redistributed.
var PrizeDistribution = [3]int64{50, 30, 20}
