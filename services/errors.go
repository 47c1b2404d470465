package services

import "errors"

// Rejected-operation outcomes. Every failed engine call rolls back its
// transaction and leaves all records exactly as before the call; handlers
// map these to HTTP statuses with errors.Is.

// Authorization
var (
	ErrNotOwner = errors.New("not the owner")
	ErrNotAdmin = errors.New("caller is not the administrator")
)

// Eligibility
var (
	ErrOnCooldown     = errors.New("on cooldown")
	ErrAlreadyBred    = errors.New("these hens have already bred")
	ErrGenerationCap  = errors.New("max generation exceeded")
	ErrSelfBreeding   = errors.New("cannot breed with itself")
	ErrSelfBattle     = errors.New("cannot battle with itself")
	ErrAlreadyEntered = errors.New("hen already in race")
)

// Payment
var (
	ErrInsufficientFee     = errors.New("insufficient fee")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrIncorrectEntryFee   = errors.New("incorrect entry fee")
	ErrBetOutOfRange       = errors.New("bet amount out of range")
	ErrInvalidPosition     = errors.New("invalid target position")
)

// State
var (
	ErrRaceNotOpen           = errors.New("race is not open")
	ErrRaceFull              = errors.New("race is full")
	ErrRaceNotStarted        = errors.New("race not started")
	ErrNotEnoughParticipants = errors.New("not enough participants")
	ErrTooEarly              = errors.New("race duration has not elapsed")
	ErrAlreadyComplete       = errors.New("already complete")
	ErrBetsClosed            = errors.New("bets are closed for this event")
	ErrAlreadyClaimed        = errors.New("bet already claimed")
	ErrEventNotComplete      = errors.New("event not complete")
	ErrNotBettor             = errors.New("not the bettor")
	ErrNoActiveListing       = errors.New("not listed for sale")
	ErrTooManyOpenRaces      = errors.New("too many open races")
)

// Not found
var (
	ErrHenNotFound  = errors.New("hen not found")
	ErrHenNotAlive  = errors.New("hen is not alive")
	ErrRaceNotFound = errors.New("race not found")
)
