package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type stubStatsRepo struct {
	totals  domain.BetTotals
	monthly []domain.MonthlyStats
	daily   []domain.PerformancePoint
	avgOdds float64
	oddsN   int64
	recent  []*domain.Bet

	totalsCalls int
}

func (r *stubStatsRepo) Totals(context.Context, uuid.UUID, *time.Time, *time.Time) (domain.BetTotals, error) {
	r.totalsCalls++
	return r.totals, nil
}

func (r *stubStatsRepo) Monthly(context.Context, uuid.UUID, int) ([]domain.MonthlyStats, error) {
	return r.monthly, nil
}

func (r *stubStatsRepo) Daily(context.Context, uuid.UUID, time.Time) ([]domain.PerformancePoint, error) {
	return r.daily, nil
}

func (r *stubStatsRepo) AverageOdds(context.Context, uuid.UUID, *time.Time, *time.Time) (float64, int64, error) {
	return r.avgOdds, r.oddsN, nil
}

func (r *stubStatsRepo) Recent(_ context.Context, _ uuid.UUID, limit int) ([]*domain.Bet, error) {
	if limit > len(r.recent) {
		limit = len(r.recent)
	}
	return r.recent[:limit], nil
}

type memStatsCache struct {
	entries map[uuid.UUID]*domain.DashboardStats
}

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{entries: map[uuid.UUID]*domain.DashboardStats{}}
}

func (c *memStatsCache) GetDashboard(_ context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	return c.entries[userID], nil
}

func (c *memStatsCache) SetDashboard(_ context.Context, userID uuid.UUID, stats *domain.DashboardStats) error {
	c.entries[userID] = stats
	return nil
}

func (c *memStatsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	delete(c.entries, userID)
	return nil
}

func sampleTotals() domain.BetTotals {
	return domain.BetTotals{
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
}

func TestDashboard(t *testing.T) {
	repo := &stubStatsRepo{
		totals: sampleTotals(),
		monthly: []domain.MonthlyStats{
			{Year: 2026, Month: 8, TotalBets: 10, WonBets: 4, LostBets: 4},
		},
	}
	cache := newMemStatsCache()
	service := NewStatsService(repo, cache, zap.NewNop())
	userID := uuid.New()

	stats, err := service.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.TotalBets)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 1000.0, stats.TotalStake, 1e-9)
	assert.InDelta(t, 100.0, stats.Profit, 1e-9)
	assert.InDelta(t, 10.0, stats.ROI, 1e-9)
	assert.Len(t, stats.Monthly, 1)

	// Second call is served from the cache.
	calls := repo.totalsCalls
	again, err := service.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, calls, repo.totalsCalls)

	// Invalidation forces a recomputation.
	require.NoError(t, cache.Invalidate(context.Background(), userID))
	_, err = service.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, calls+1, repo.totalsCalls)
}

func TestDashboardWithoutCache(t *testing.T) {
	repo := &stubStatsRepo{totals: sampleTotals()}
	service := NewStatsService(repo, nil, zap.NewNop())

	stats, err := service.Dashboard(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.TotalBets)
}

func TestTotalsDerivedEndpoints(t *testing.T) {
	repo := &stubStatsRepo{totals: sampleTotals(), avgOdds: 2.4, oddsN: 10}
	service := NewStatsService(repo, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	winRate, err := service.WinRate(ctx, userID, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, winRate, 1e-9)

	profit, err := service.ProfitLoss(ctx, userID, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, profit, 1e-9)

	roi, err := service.ROI(ctx, userID, nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, roi, 1e-9)

	avg, count, err := service.AverageOdds(ctx, userID)
	require.NoError(t, err)
	assert.InDelta(t, 2.4, avg, 1e-9)
	assert.EqualValues(t, 10, count)

	total, pending, settled, err := service.TotalBets(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 10, total)
	assert.EqualValues(t, 1, pending)
	assert.EqualValues(t, 9, settled)
}

func TestRecentBetsLimits(t *testing.T) {
	recent := make([]*domain.Bet, 60)
	for i := range recent {
		recent[i] = &domain.Bet{ID: uuid.New()}
	}
	repo := &stubStatsRepo{recent: recent}
	service := NewStatsService(repo, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	bets, err := service.RecentBets(ctx, userID, 0)
	require.NoError(t, err)
	assert.Len(t, bets, 5)

	bets, err = service.RecentBets(ctx, userID, 999)
	require.NoError(t, err)
	assert.Len(t, bets, 50)
}

func TestPerformanceRunningBalance(t *testing.T) {
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubStatsRepo{daily: []domain.PerformancePoint{
		{Date: day, Profit: 150, Bets: 2, WonBets: 1},
		{Date: day.AddDate(0, 0, 1), Profit: -100, Bets: 1},
		{Date: day.AddDate(0, 0, 2), Profit: 75, Bets: 1, WonBets: 1},
	}}
	service := NewStatsService(repo, nil, zap.NewNop())

	points, err := service.Performance(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 150.0, points[0].Balance, 1e-9)
	assert.InDelta(t, 50.0, points[1].Balance, 1e-9)
	assert.InDelta(t, 125.0, points[2].Balance, 1e-9)
}

var _ ports.StatsRepository = (*stubStatsRepo)(nil)
var _ ports.StatsCache = (*memStatsCache)(nil)
