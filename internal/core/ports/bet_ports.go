package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bettrack/api/internal/core/domain"
)

// BetFilter narrows listings and counts. Nil fields mean "any".
type BetFilter struct {
	Status    *domain.BetStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

type BetRepository interface {
	Create(ctx context.Context, bet *domain.Bet) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Bet, error)
	List(ctx context.Context, userID uuid.UUID, filter BetFilter) ([]*domain.Bet, error)
	Count(ctx context.Context, userID uuid.UUID, filter BetFilter) (int64, error)
	Update(ctx context.Context, bet *domain.Bet) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type CreateBetInput struct {
	MatchDescription string
	Odds             float64
	Stake            float64
	MatchDate        time.Time
}

type UpdateBetInput struct {
	MatchDescription string
	Odds             float64
	Stake            float64
	Status           domain.BetStatus
	Payout           float64
	MatchDate        time.Time
}

type ListBetsInput struct {
	Page      int
	PageSize  int
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// PagedBets is the list envelope: one page of rows plus the filtered total.
type PagedBets struct {
	Items      []*domain.Bet `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

type BetService interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateBetInput) (*domain.Bet, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*domain.Bet, error)
	List(ctx context.Context, userID uuid.UUID, input ListBetsInput) (*PagedBets, error)
	Update(ctx context.Context, id, userID uuid.UUID, input UpdateBetInput) (*domain.Bet, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
