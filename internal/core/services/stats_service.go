package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type statsService struct {
	repo  ports.StatsRepository
	cache ports.StatsCache
	log   *zap.Logger
}

func NewStatsService(repo ports.StatsRepository, cache ports.StatsCache, log *zap.Logger) ports.StatsService {
	return &statsService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Dashboard builds the summary card: totals plus the current year's
// monthly distribution. The result is cached per user; bet writes
// invalidate it.
func (s *statsService) Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx, userID)
		if err != nil {
			s.log.Warn("stats cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	totals, err := s.repo.Totals(ctx, userID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	monthly, err := s.repo.Monthly(ctx, userID, time.Now().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}

	stats := &domain.DashboardStats{
		TotalBets:  totals.TotalBets,
		WinRate:    totals.WinRate(),
		TotalStake: totals.TotalStake,
		Profit:     totals.Profit(),
		ROI:        totals.ROI(),
		Monthly:    monthly,
	}

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, userID, stats); err != nil {
			s.log.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *statsService) Monthly(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyStats, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	monthly, err := s.repo.Monthly(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}
	return monthly, nil
}

func (s *statsService) WinRate(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error) {
	totals, err := s.repo.Totals(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	return totals.WinRate(), nil
}

func (s *statsService) ProfitLoss(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error) {
	totals, err := s.repo.Totals(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	return totals.Profit(), nil
}

func (s *statsService) ROI(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error) {
	totals, err := s.repo.Totals(ctx, userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	return totals.ROI(), nil
}

func (s *statsService) AverageOdds(ctx context.Context, userID uuid.UUID) (float64, int64, error) {
	avg, count, err := s.repo.AverageOdds(ctx, userID, nil, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to average odds: %w", err)
	}
	return avg, count, nil
}

func (s *statsService) TotalBets(ctx context.Context, userID uuid.UUID) (total, pending, settled int64, err error) {
	totals, err := s.repo.Totals(ctx, userID, nil, nil)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	settled = totals.WonBets + totals.LostBets + totals.VoidBets
	return totals.TotalBets, totals.PendingBets, settled, nil
}

func (s *statsService) RecentBets(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Bet, error) {
	if limit < 1 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	bets, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent bets: %w", err)
	}
	return bets, nil
}

// Performance returns one point per day with a running balance, so the
// chart shows cumulative profit over the window.
func (s *statsService) Performance(ctx context.Context, userID uuid.UUID, days int) ([]domain.PerformancePoint, error) {
	if days < 1 {
		days = 30
	}
	if days > 365 {
		days = 365
	}

	since := time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)
	points, err := s.repo.Daily(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}

	balance := 0.0
	for i := range points {
		balance += points[i].Profit
		points[i].Balance = balance
	}
	return points, nil
}
