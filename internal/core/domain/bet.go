package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BetStatus string

const (
	BetPending BetStatus = "Pending"
	BetWon     BetStatus = "Won"
	BetLost    BetStatus = "Lost"
	BetVoid    BetStatus = "Void"
)

// ParseBetStatus accepts the status in any casing. It reports false for
// anything outside the four known values.
func ParseBetStatus(s string) (BetStatus, bool) {
	switch strings.ToLower(s) {
	case "pending":
		return BetPending, true
	case "won":
		return BetWon, true
	case "lost":
		return BetLost, true
	case "void":
		return BetVoid, true
	}
	return "", false
}

func (s BetStatus) Settled() bool {
	return s == BetWon || s == BetLost || s == BetVoid
}

type Bet struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	MatchDescription string    `json:"match_description"`
	Odds             float64   `json:"odds"`
	Stake            float64   `json:"stake"`
	Status           BetStatus `json:"status"`
	Payout           float64   `json:"payout"`
	MatchDate        time.Time `json:"match_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PotentialPayout is what the bet returns if it wins at the recorded odds.
func (b *Bet) PotentialPayout() float64 {
	return b.Odds * b.Stake
}

// Profit is the realized result: payout minus stake when won, the lost
// stake when lost, zero while pending or voided.
func (b *Bet) Profit() float64 {
	switch b.Status {
	case BetWon:
		return b.Payout - b.Stake
	case BetLost:
		return -b.Stake
	}
	return 0
}
