package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/domain"
	"github.com/bettrack/api/internal/core/ports"
)

type BetHandler struct {
	service ports.BetService
	stats   ports.StatsService
	log     *zap.Logger
}

func NewBetHandler(service ports.BetService, stats ports.StatsService, log *zap.Logger) *BetHandler {
	return &BetHandler{
		service: service,
		stats:   stats,
		log:     log,
	}
}

type createBetRequest struct {
	MatchDescription string    `json:"match_description"`
	Odds             float64   `json:"odds"`
	Stake            float64   `json:"stake"`
	MatchDate        time.Time `json:"match_date"`
}

type updateBetRequest struct {
	MatchDescription string    `json:"match_description"`
	Odds             float64   `json:"odds"`
	Stake            float64   `json:"stake"`
	Status           string    `json:"status"`
	Payout           float64   `json:"payout"`
	MatchDate        time.Time `json:"match_date"`
}

type betResponse struct {
	*domain.Bet
	PotentialPayout float64 `json:"potential_payout"`
	Profit          float64 `json:"profit"`
}

func newBetResponse(bet *domain.Bet) betResponse {
	return betResponse{
		Bet:             bet,
		PotentialPayout: bet.PotentialPayout(),
		Profit:          bet.Profit(),
	}
}

func (h *BetHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req createBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet, err := h.service.Create(r.Context(), claims.UserID, ports.CreateBetInput{
		MatchDescription: req.MatchDescription,
		Odds:             req.Odds,
		Stake:            req.Stake,
		MatchDate:        req.MatchDate,
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, newBetResponse(bet))
}

func (h *BetHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bet id")
		return
	}

	bet, err := h.service.Get(r.Context(), id, claims.UserID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, newBetResponse(bet))
}

func (h *BetHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	paged, err := h.service.List(r.Context(), claims.UserID, ports.ListBetsInput{
		Page:      page,
		PageSize:  pageSize,
		Status:    q.Get("status"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	items := make([]betResponse, 0, len(paged.Items))
	for _, bet := range paged.Items {
		items = append(items, newBetResponse(bet))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       paged.Total,
		"page":        paged.Page,
		"page_size":   paged.PageSize,
		"total_pages": paged.TotalPages,
	})
}

func (h *BetHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bet id")
		return
	}

	var req updateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bet, err := h.service.Update(r.Context(), id, claims.UserID, ports.UpdateBetInput{
		MatchDescription: req.MatchDescription,
		Odds:             req.Odds,
		Stake:            req.Stake,
		Status:           domain.BetStatus(req.Status),
		Payout:           req.Payout,
		MatchDate:        req.MatchDate,
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, newBetResponse(bet))
}

func (h *BetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bet id")
		return
	}

	if err := h.service.Delete(r.Context(), id, claims.UserID); err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BetHandler) ROI(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	start, end, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date filter")
		return
	}

	roi, err := h.stats.ROI(r.Context(), claims.UserID, start, end)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"roi": roi})
}

func (h *BetHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	stats, err := h.stats.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
