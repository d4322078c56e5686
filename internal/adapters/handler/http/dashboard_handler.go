package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/bettrack/api/internal/core/ports"
)

type DashboardHandler struct {
	service ports.StatsService
	log     *zap.Logger
}

func NewDashboardHandler(service ports.StatsService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	stats, err := h.service.Dashboard(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	monthly, err := h.service.Monthly(r.Context(), claims.UserID, year)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, monthly)
}

func (h *DashboardHandler) WinRate(w http.ResponseWriter, r *http.Request) {
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

	winRate, err := h.service.WinRate(r.Context(), claims.UserID, start, end)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"winRate": winRate})
}

func (h *DashboardHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
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

	profit, err := h.service.ProfitLoss(r.Context(), claims.UserID, start, end)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"profitLoss": profit})
}

func (h *DashboardHandler) AverageOdds(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	avg, total, err := h.service.AverageOdds(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"averageOdds": avg,
		"totalBets":   total,
	})
}

func (h *DashboardHandler) TotalBets(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	total, pending, settled, err := h.service.TotalBets(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{
		"totalBets":   total,
		"pendingBets": pending,
		"settledBets": settled,
	})
}

func (h *DashboardHandler) RecentBets(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bets, err := h.service.RecentBets(r.Context(), claims.UserID, limit)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	items := make([]betResponse, 0, len(bets))
	for _, bet := range bets {
		items = append(items, newBetResponse(bet))
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *DashboardHandler) Performance(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	points, err := h.service.Performance(r.Context(), claims.UserID, days)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, points)
}
