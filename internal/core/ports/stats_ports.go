package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bettrack/api/internal/core/domain"
)

// StatsRepository delegates every aggregation to the store's query engine.
type StatsRepository interface {
	Totals(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.BetTotals, error)
	Monthly(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyStats, error)
	Daily(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.PerformancePoint, error)
	AverageOdds(ctx context.Context, userID uuid.UUID, start, end *time.Time) (avg float64, count int64, err error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Bet, error)
}

// StatsCache is a best-effort read-through cache for the dashboard
// summary. Misses and cache failures both fall back to the repository.
type StatsCache interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error)
	SetDashboard(ctx context.Context, userID uuid.UUID, stats *domain.DashboardStats) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type StatsService interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (*domain.DashboardStats, error)
	Monthly(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyStats, error)
	WinRate(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error)
	ProfitLoss(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error)
	ROI(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, error)
	AverageOdds(ctx context.Context, userID uuid.UUID) (float64, int64, error)
	TotalBets(ctx context.Context, userID uuid.UUID) (total, pending, settled int64, err error)
	RecentBets(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Bet, error)
	Performance(ctx context.Context, userID uuid.UUID, days int) ([]domain.PerformancePoint, error)
}
