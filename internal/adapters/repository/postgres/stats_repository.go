package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

// statsRepository leaves all the summation to Postgres; the Go side only
// scans aggregates.
type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) ports.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Totals(ctx context.Context, userID uuid.UUID, start, end *time.Time) (domain.BetTotals, error) {
	where, args := dateRange(userID, start, end)

	query := fmt.Sprintf(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Won'),
			COUNT(*) FILTER (WHERE status = 'Lost'),
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Void'),
			COALESCE(SUM(stake), 0),
			COALESCE(SUM(stake) FILTER (WHERE status = 'Won'), 0),
			COALESCE(SUM(stake) FILTER (WHERE status = 'Lost'), 0),
			COALESCE(SUM(payout) FILTER (WHERE status = 'Won'), 0)
		FROM bets
		WHERE %s
	`, where)

	var t domain.BetTotals
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&t.TotalBets, &t.WonBets, &t.LostBets, &t.PendingBets, &t.VoidBets,
		&t.TotalStake, &t.WonStake, &t.LostStake, &t.WonPayout,
	)
	if err != nil {
		return domain.BetTotals{}, fmt.Errorf("failed to aggregate totals: %w", err)
	}
	return t, nil
}

func (r *statsRepository) Monthly(ctx context.Context, userID uuid.UUID, year int) ([]domain.MonthlyStats, error) {
	query := `
		SELECT
			EXTRACT(MONTH FROM match_date)::int,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Won'),
			COUNT(*) FILTER (WHERE status = 'Lost'),
			COALESCE(SUM(stake), 0),
			COALESCE(SUM(payout) FILTER (WHERE status = 'Won'), 0),
			COALESCE(SUM(payout - stake) FILTER (WHERE status = 'Won'), 0)
				- COALESCE(SUM(stake) FILTER (WHERE status = 'Lost'), 0)
		FROM bets
		WHERE user_id = $1 AND EXTRACT(YEAR FROM match_date) = $2
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.QueryContext(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.MonthlyStats
	for rows.Next() {
		m := domain.MonthlyStats{Year: year}
		if err := rows.Scan(
			&m.Month, &m.TotalBets, &m.WonBets, &m.LostBets,
			&m.TotalStake, &m.Payout, &m.Profit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly stats: %w", err)
		}
		if settled := m.WonBets + m.LostBets; settled > 0 {
			m.WinRate = float64(m.WonBets) / float64(settled) * 100
		}
		stats = append(stats, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly stats: %w", err)
	}
	return stats, nil
}

func (r *statsRepository) Daily(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.PerformancePoint, error) {
	query := `
		SELECT
			DATE_TRUNC('day', match_date),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Won'),
			COALESCE(SUM(payout - stake) FILTER (WHERE status = 'Won'), 0)
				- COALESCE(SUM(stake) FILTER (WHERE status = 'Lost'), 0)
		FROM bets
		WHERE user_id = $1 AND match_date >= $2
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}
	defer rows.Close()

	var points []domain.PerformancePoint
	for rows.Next() {
		var p domain.PerformancePoint
		if err := rows.Scan(&p.Date, &p.Bets, &p.WonBets, &p.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		if p.Bets > 0 {
			p.WinRate = float64(p.WonBets) / float64(p.Bets) * 100
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily stats: %w", err)
	}
	return points, nil
}

func (r *statsRepository) AverageOdds(ctx context.Context, userID uuid.UUID, start, end *time.Time) (float64, int64, error) {
	where, args := dateRange(userID, start, end)

	var avg float64
	var count int64
	query := fmt.Sprintf(`SELECT COALESCE(AVG(odds), 0), COUNT(*) FROM bets WHERE %s`, where)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to average odds: %w", err)
	}
	return avg, count, nil
}

func (r *statsRepository) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent bets: %w", err)
	}
	defer rows.Close()

	var bets []*domain.Bet
	for rows.Next() {
		bet := &domain.Bet{}
		if err := rows.Scan(
			&bet.ID, &bet.UserID, &bet.MatchDescription, &bet.Odds, &bet.Stake,
			&bet.Status, &bet.Payout, &bet.MatchDate, &bet.CreatedAt, &bet.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bets: %w", err)
	}
	return bets, nil
}

func dateRange(userID uuid.UUID, start, end *time.Time) (string, []any) {
	where := "user_id = $1"
	args := []any{userID}
	if start != nil {
		args = append(args, *start)
		where += fmt.Sprintf(" AND match_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		where += fmt.Sprintf(" AND match_date <= $%d", len(args))
	}
	return where, args
}
