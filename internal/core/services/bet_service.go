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

const maxMatchDescription = 500

type betService struct {
	repo  ports.BetRepository
	cache ports.StatsCache
	log   *zap.Logger
}

func NewBetService(repo ports.BetRepository, cache ports.StatsCache, log *zap.Logger) ports.BetService {
	return &betService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func (s *betService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateBetInput) (*domain.Bet, error) {
	if err := validateBetFields(input.MatchDescription, input.Odds, input.Stake, input.MatchDate); err != nil {
		return nil, err
	}

	now := time.Now()
	bet := &domain.Bet{
		ID:               uuid.New(),
		UserID:           userID,
		MatchDescription: input.MatchDescription,
		Odds:             input.Odds,
		Stake:            input.Stake,
		Status:           domain.BetPending,
		MatchDate:        input.MatchDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet: %w", err)
	}

	s.invalidateStats(ctx, userID)
	return bet, nil
}

func (s *betService) Get(ctx context.Context, id, userID uuid.UUID) (*domain.Bet, error) {
	bet, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, domain.ErrBetNotFound
	}
	return bet, nil
}

func (s *betService) List(ctx context.Context, userID uuid.UUID, input ports.ListBetsInput) (*ports.PagedBets, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	filter := ports.BetFilter{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}
	if input.Status != "" {
		status, ok := domain.ParseBetStatus(input.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
		}
		filter.Status = &status
	}

	items, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	total, err := s.repo.Count(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count bets: %w", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ports.PagedBets{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update allows re-editing a settled bet. Settlement is not enforced to be
// one-way; the owner can correct a mis-entered result.
func (s *betService) Update(ctx context.Context, id, userID uuid.UUID, input ports.UpdateBetInput) (*domain.Bet, error) {
	if err := validateBetFields(input.MatchDescription, input.Odds, input.Stake, input.MatchDate); err != nil {
		return nil, err
	}
	if _, ok := domain.ParseBetStatus(string(input.Status)); !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, input.Status)
	}
	if input.Payout < 0 {
		return nil, fmt.Errorf("%w: payout must not be negative", domain.ErrValidation)
	}

	bet, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, domain.ErrBetNotFound
	}

	bet.MatchDescription = input.MatchDescription
	bet.Odds = input.Odds
	bet.Stake = input.Stake
	bet.Status = input.Status
	bet.Payout = input.Payout
	bet.MatchDate = input.MatchDate
	bet.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to update bet: %w", err)
	}

	s.invalidateStats(ctx, userID)
	return bet, nil
}

func (s *betService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}
	if !deleted {
		return domain.ErrBetNotFound
	}

	s.invalidateStats(ctx, userID)
	return nil
}

func (s *betService) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn("stats cache invalidation failed",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func validateBetFields(description string, odds, stake float64, matchDate time.Time) error {
	if description == "" {
		return fmt.Errorf("%w: match description is required", domain.ErrValidation)
	}
	if len(description) > maxMatchDescription {
		return fmt.Errorf("%w: match description exceeds %d characters", domain.ErrValidation, maxMatchDescription)
	}
	if odds <= 1.0 {
		return fmt.Errorf("%w: odds must be greater than 1.0", domain.ErrValidation)
	}
	if stake <= 0 {
		return fmt.Errorf("%w: stake must be greater than 0", domain.ErrValidation)
	}
	if matchDate.IsZero() {
		return fmt.Errorf("%w: match date is required", domain.ErrValidation)
	}
	return nil
}
