package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financequest/src/app"
	"financequest/src/auth"
	"financequest/src/connectors"
	"financequest/src/handler"
	"financequest/src/metrics"
	"financequest/src/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"
)

// NewRouter mounts the public API on top of the wired services.
func NewRouter(a *app.App, authCfg auth.Config, cron *security.CronGuard) http.Handler {
	r := chi.NewRouter()

	// === Global Middleware ===
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(auth.Middleware)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("health check failed")
		}
	})
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/ws", a.Hub)

	games := &handler.GameHandlers{Games: a.GameSvc, Prices: a.Prices, Sink: a.Exceptions}

	r.Route("/api", func(r chi.Router) {
		r.Route("/market", func(r chi.Router) {
			r.Get("/price", handler.PriceHandler(a.Prices))
			r.Get("/history", handler.HistoryHandler(a.Prices, a.Exceptions))
			r.Get("/assets", handler.AssetsHandler())
		})

		r.Get("/leaderboard", games.Leaderboard())

		r.Route("/games", func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/", games.Create())
			r.Get("/", games.List())
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", games.Get())
				r.Patch("/status", games.UpdateStatus())
				r.Post("/next-day", games.NextDay())
				r.Post("/trades", games.Trade())
				r.Post("/preview", games.Preview())
				r.Get("/transactions", handler.SearchTransactionsHandler(a.GameSvc, a.Exceptions))
				r.Get("/achievements", games.Achievements())
			})
		})

		r.With(auth.RequireAdmin(authCfg)).Get("/admin/monitoring", handler.MonitoringHandler(handler.MonitoringSources{
			Users:      a.Users,
			Games:      a.Games,
			Cache:      a.Cache,
			Stats:      a.APIStats,
			Quota:      a.Provider.Quota(),
			Provider:   connectors.ProviderMarketStack,
			Exceptions: a.Exceptions,
			Stream:     a.Hub,
		}, a.Exceptions))

		r.Route("/cron", func(r chi.Router) {
			r.Use(cron.Middleware)
			r.Get("/update-cache", handler.UpdateCacheHandler(a.Prefetcher))
			r.Get("/cleanup-games", handler.CleanupGamesHandler(a.GameSvc, a.Exceptions))
		})
	})

	return r
}

// StartServer serves the API until SIGINT or SIGTERM, then shuts down gracefully.
func StartServer(cfg *Config, a *app.App) {
	ctx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go a.Hub.Run(ctx)

	r := NewRouter(a, auth.GetConfig(), security.NewCronGuard(security.GetConfig()))

	// Graceful server
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
