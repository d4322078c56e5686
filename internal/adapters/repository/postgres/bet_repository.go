package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type betRepository struct {
	db *sql.DB
}

func NewBetRepository(db *sql.DB) ports.BetRepository {
	return &betRepository{db: db}
}

const betColumns = `id, user_id, match_description, odds, stake, status, payout, match_date, created_at, updated_at`

func (r *betRepository) Create(ctx context.Context, bet *domain.Bet) error {
	query := `
		INSERT INTO bets (id, user_id, match_description, odds, stake, status, payout, match_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		bet.ID, bet.UserID, bet.MatchDescription, bet.Odds, bet.Stake,
		bet.Status, bet.Payout, bet.MatchDate, bet.CreatedAt, bet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bet: %w", err)
	}
	return nil
}

func (r *betRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1 AND user_id = $2`
	bet := &domain.Bet{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&bet.ID, &bet.UserID, &bet.MatchDescription, &bet.Odds, &bet.Stake,
		&bet.Status, &bet.Payout, &bet.MatchDate, &bet.CreatedAt, &bet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bet, nil
}

func (r *betRepository) List(ctx context.Context, userID uuid.UUID, filter ports.BetFilter) ([]*domain.Bet, error) {
	where, args := buildBetFilter(userID, filter)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bets
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, betColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
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

func (r *betRepository) Count(ctx context.Context, userID uuid.UUID, filter ports.BetFilter) (int64, error) {
	where, args := buildBetFilter(userID, filter)

	var count int64
	query := `SELECT COUNT(*) FROM bets WHERE ` + where
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bets: %w", err)
	}
	return count, nil
}

func (r *betRepository) Update(ctx context.Context, bet *domain.Bet) error {
	query := `
		UPDATE bets
		SET match_description = $1, odds = $2, stake = $3, status = $4,
		    payout = $5, match_date = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`
	_, err := r.db.ExecContext(ctx, query,
		bet.MatchDescription, bet.Odds, bet.Stake, bet.Status,
		bet.Payout, bet.MatchDate, bet.UpdatedAt, bet.ID, bet.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bet: %w", err)
	}
	return nil
}

func (r *betRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete bet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func buildBetFilter(userID uuid.UUID, filter ports.BetFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, fmt.Sprintf("match_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clauses = append(clauses, fmt.Sprintf("match_date <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}
