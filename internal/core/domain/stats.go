package domain

import "time"

// BetTotals are the raw per-user aggregates the store computes in a single
// pass. Everything derived (profit, ROI, win rate) hangs off these.
type BetTotals struct {
	TotalBets   int64   `json:"total_bets"`
	WonBets     int64   `json:"won_bets"`
	LostBets    int64   `json:"lost_bets"`
	PendingBets int64   `json:"pending_bets"`
	VoidBets    int64   `json:"void_bets"`
	TotalStake  float64 `json:"total_stake"`
	WonStake    float64 `json:"-"`
	LostStake   float64 `json:"-"`
	WonPayout   float64 `json:"total_payout"`
}

// Profit sums per-bet results: payout minus stake on wins, minus the
// stake on losses, nothing for pending or void.
func (t BetTotals) Profit() float64 {
	return t.WonPayout - t.WonStake - t.LostStake
}

// WinRate is won over settled (won + lost), in percent. Void bets do not
// count against the rate.
func (t BetTotals) WinRate() float64 {
	settled := t.WonBets + t.LostBets
	if settled == 0 {
		return 0
	}
	return float64(t.WonBets) / float64(settled) * 100
}

// ROI is profit over total stake, in percent.
func (t BetTotals) ROI() float64 {
	if t.TotalStake == 0 {
		return 0
	}
	return t.Profit() / t.TotalStake * 100
}

type DashboardStats struct {
	TotalBets  int64          `json:"total_bets"`
	WinRate    float64        `json:"win_rate"`
	TotalStake float64        `json:"total_stake"`
	Profit     float64        `json:"profit"`
	ROI        float64        `json:"roi"`
	Monthly    []MonthlyStats `json:"monthly_distribution"`
}

type MonthlyStats struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalBets  int64   `json:"total_bets"`
	WonBets    int64   `json:"won_bets"`
	LostBets   int64   `json:"lost_bets"`
	TotalStake float64 `json:"total_stake"`
	Payout     float64 `json:"total_payout"`
	Profit     float64 `json:"profit"`
	WinRate    float64 `json:"win_rate"`
}

// PerformancePoint is one day in the running performance history: the
// cumulative profit after that day plus the day's own aggregates.
type PerformancePoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
	Profit  float64   `json:"profit"`
	Bets    int64     `json:"total_bets"`
	WonBets int64     `json:"won_bets"`
	WinRate float64   `json:"win_rate"`
}
