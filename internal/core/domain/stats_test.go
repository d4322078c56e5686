package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetTotalsDerived(t *testing.T) {
	totals := BetTotals{
		TotalBets:   10,
		WonBets:     4,
		LostBets:    4,
		PendingBets: 1,
		VoidBets:    1,
		TotalStake:  1000,
		WonStake:    400,
		LostStake:   400,
		WonPayout:   900,
	}

	// 900 payout - 400 won stake - 400 lost stake
	assert.InDelta(t, 100.0, totals.Profit(), 1e-9)
	// 4 of 8 settled
	assert.InDelta(t, 50.0, totals.WinRate(), 1e-9)
	// 100 profit over 1000 staked
	assert.InDelta(t, 10.0, totals.ROI(), 1e-9)
}

func TestBetTotalsEmpty(t *testing.T) {
	var totals BetTotals
	assert.Zero(t, totals.Profit())
	assert.Zero(t, totals.WinRate())
	assert.Zero(t, totals.ROI())
}
