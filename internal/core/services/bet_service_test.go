package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type memBetRepo struct {
	bets map[uuid.UUID]*domain.Bet
}

func newMemBetRepo() *memBetRepo {
	return &memBetRepo{bets: map[uuid.UUID]*domain.Bet{}}
}

func (r *memBetRepo) Create(_ context.Context, bet *domain.Bet) error {
	stored := *bet
	r.bets[bet.ID] = &stored
	return nil
}

func (r *memBetRepo) GetByID(_ context.Context, id, userID uuid.UUID) (*domain.Bet, error) {
	bet, ok := r.bets[id]
	if !ok || bet.UserID != userID {
		return nil, nil
	}
	copied := *bet
	return &copied, nil
}

func (r *memBetRepo) matches(bet *domain.Bet, userID uuid.UUID, filter ports.BetFilter) bool {
	if bet.UserID != userID {
		return false
	}
	if filter.Status != nil && bet.Status != *filter.Status {
		return false
	}
	if filter.StartDate != nil && bet.MatchDate.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && bet.MatchDate.After(*filter.EndDate) {
		return false
	}
	return true
}

func (r *memBetRepo) List(_ context.Context, userID uuid.UUID, filter ports.BetFilter) ([]*domain.Bet, error) {
	var all []*domain.Bet
	for _, bet := range r.bets {
		if r.matches(bet, userID, filter) {
			copied := *bet
			all = append(all, &copied)
		}
	}
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r *memBetRepo) Count(_ context.Context, userID uuid.UUID, filter ports.BetFilter) (int64, error) {
	var n int64
	for _, bet := range r.bets {
		if r.matches(bet, userID, filter) {
			n++
		}
	}
	return n, nil
}

func (r *memBetRepo) Update(_ context.Context, bet *domain.Bet) error {
	stored := *bet
	r.bets[bet.ID] = &stored
	return nil
}

func (r *memBetRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	bet, ok := r.bets[id]
	if !ok || bet.UserID != userID {
		return false, nil
	}
	delete(r.bets, id)
	return true, nil
}

type spyStatsCache struct {
	invalidated int
}

func (c *spyStatsCache) GetDashboard(context.Context, uuid.UUID) (*domain.DashboardStats, error) {
	return nil, nil
}

func (c *spyStatsCache) SetDashboard(context.Context, uuid.UUID, *domain.DashboardStats) error {
	return nil
}

func (c *spyStatsCache) Invalidate(context.Context, uuid.UUID) error {
	c.invalidated++
	return nil
}

func validBetInput() ports.CreateBetInput {
	return ports.CreateBetInput{
		MatchDescription: "Arsenal vs Chelsea",
		Odds:             2.5,
		Stake:            100,
		MatchDate:        time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC),
	}
}

func TestCreateBet(t *testing.T) {
	repo := newMemBetRepo()
	cache := &spyStatsCache{}
	service := NewBetService(repo, cache, zap.NewNop())
	userID := uuid.New()

	bet, err := service.Create(context.Background(), userID, validBetInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, bet.ID)
	assert.Equal(t, userID, bet.UserID)
	assert.Equal(t, domain.BetPending, bet.Status)
	assert.Zero(t, bet.Payout)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateBetValidation(t *testing.T) {
	service := NewBetService(newMemBetRepo(), nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name   string
		mutate func(*ports.CreateBetInput)
	}{
		{"empty description", func(in *ports.CreateBetInput) { in.MatchDescription = "" }},
		{"long description", func(in *ports.CreateBetInput) { in.MatchDescription = strings.Repeat("x", 501) }},
		{"odds at 1.0", func(in *ports.CreateBetInput) { in.Odds = 1.0 }},
		{"zero stake", func(in *ports.CreateBetInput) { in.Stake = 0 }},
		{"negative stake", func(in *ports.CreateBetInput) { in.Stake = -5 }},
		{"zero match date", func(in *ports.CreateBetInput) { in.MatchDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validBetInput()
			tt.mutate(&input)
			_, err := service.Create(ctx, userID, input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestGetBetOwnership(t *testing.T) {
	repo := newMemBetRepo()
	service := NewBetService(repo, nil, zap.NewNop())
	ctx := context.Background()
	owner := uuid.New()

	bet, err := service.Create(ctx, owner, validBetInput())
	require.NoError(t, err)

	got, err := service.Get(ctx, bet.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, bet.ID, got.ID)

	// Another user's lookup of the same id is indistinguishable from a
	// missing row.
	_, err = service.Get(ctx, bet.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrBetNotFound)

	_, err = service.Get(ctx, uuid.New(), owner)
	assert.ErrorIs(t, err, domain.ErrBetNotFound)
}

func TestListBetsPaging(t *testing.T) {
	repo := newMemBetRepo()
	service := NewBetService(repo, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 25; i++ {
		_, err := service.Create(ctx, userID, validBetInput())
		require.NoError(t, err)
	}

	page, err := service.List(ctx, userID, ports.ListBetsInput{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.EqualValues(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)

	// Out-of-range pages and defaults.
	page, err = service.List(ctx, userID, ports.ListBetsInput{Page: 99, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = service.List(ctx, userID, ports.ListBetsInput{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Page)
}

func TestListBetsStatusFilter(t *testing.T) {
	repo := newMemBetRepo()
	service := NewBetService(repo, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	bet, err := service.Create(ctx, userID, validBetInput())
	require.NoError(t, err)
	_, err = service.Create(ctx, userID, validBetInput())
	require.NoError(t, err)

	_, err = service.Update(ctx, bet.ID, userID, ports.UpdateBetInput{
		MatchDescription: bet.MatchDescription,
		Odds:             bet.Odds,
		Stake:            bet.Stake,
		Status:           domain.BetWon,
		Payout:           250,
		MatchDate:        bet.MatchDate,
	})
	require.NoError(t, err)

	page, err := service.List(ctx, userID, ports.ListBetsInput{Status: "won"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Total)

	_, err = service.List(ctx, userID, ports.ListBetsInput{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateBet(t *testing.T) {
	repo := newMemBetRepo()
	cache := &spyStatsCache{}
	service := NewBetService(repo, cache, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	bet, err := service.Create(ctx, userID, validBetInput())
	require.NoError(t, err)

	input := ports.UpdateBetInput{
		MatchDescription: "Arsenal vs Chelsea, rescheduled",
		Odds:             3.0,
		Stake:            50,
		Status:           domain.BetWon,
		Payout:           150,
		MatchDate:        bet.MatchDate.AddDate(0, 0, 1),
	}
	updated, err := service.Update(ctx, bet.ID, userID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.BetWon, updated.Status)
	assert.Equal(t, 150.0, updated.Payout)
	assert.Equal(t, 2, cache.invalidated)

	// A settled bet stays editable so a wrong result can be corrected.
	input.Status = domain.BetLost
	input.Payout = 0
	corrected, err := service.Update(ctx, bet.ID, userID, input)
	require.NoError(t, err)
	assert.Equal(t, domain.BetLost, corrected.Status)

	input.Payout = -1
	_, err = service.Update(ctx, bet.ID, userID, input)
	assert.ErrorIs(t, err, domain.ErrValidation)

	input.Payout = 0
	_, err = service.Update(ctx, bet.ID, uuid.New(), input)
	assert.ErrorIs(t, err, domain.ErrBetNotFound)
}

func TestDeleteBet(t *testing.T) {
	repo := newMemBetRepo()
	cache := &spyStatsCache{}
	service := NewBetService(repo, cache, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	bet, err := service.Create(ctx, userID, validBetInput())
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, bet.ID, uuid.New()), domain.ErrBetNotFound)
	require.NoError(t, service.Delete(ctx, bet.ID, userID))
	assert.ErrorIs(t, service.Delete(ctx, bet.ID, userID), domain.ErrBetNotFound)
	assert.Equal(t, 2, cache.invalidated)
}

var _ ports.BetRepository = (*memBetRepo)(nil)
var _ ports.StatsCache = (*spyStatsCache)(nil)
