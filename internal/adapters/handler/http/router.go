package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bettrack/api/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	betHandler *BetHandler,
	dashboardHandler *DashboardHandler,
	signer ports.TokenSigner,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestMetrics)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/refresh", authHandler.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(Authenticator(signer))
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
			r.Get("/validate", authHandler.Validate)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticator(signer))

		r.Route("/bets", func(r chi.Router) {
			r.Get("/", betHandler.List)
			r.Post("/", betHandler.Create)
			r.Get("/roi", betHandler.ROI)
			r.Get("/stats", betHandler.Stats)
			r.Get("/{id}", betHandler.Get)
			r.Put("/{id}", betHandler.Update)
			r.Delete("/{id}", betHandler.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/monthly", dashboardHandler.Monthly)
			r.Get("/winrate", dashboardHandler.WinRate)
			r.Get("/profit-loss", dashboardHandler.ProfitLoss)
			r.Get("/average-odds", dashboardHandler.AverageOdds)
			r.Get("/total-bets", dashboardHandler.TotalBets)
			r.Get("/recent-bets", dashboardHandler.RecentBets)
			r.Get("/performance", dashboardHandler.Performance)
		})
	})

	return r
}
