package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efreitasn/stocksim/internal/config"
	"github.com/efreitasn/stocksim/internal/domain"
	"github.com/efreitasn/stocksim/internal/engine"
	"github.com/efreitasn/stocksim/internal/handler"
	"github.com/efreitasn/stocksim/internal/service"
	"github.com/efreitasn/stocksim/internal/store"
)

func main() {
	healthcheck := flag.Bool("healthcheck", false, "Run health check against running server")
	flag.Parse()

	// Handle -healthcheck flag: HTTP GET to localhost:PORT/healthz, exit 0/1.
	if *healthcheck {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		resp, err := http.Get(fmt.Sprintf("http://localhost:%s/healthz", port))
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up slog logger with configured level.
	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Instantiate stores.
	instrumentStore := store.NewInstrumentStore()
	teamStore := store.NewTeamStore()
	dealerStore := store.NewDealerStore()
	scenarioStore := store.NewScenarioStore()
	newsStore := store.NewNewsStore()
	tradeStore := store.NewTradeStore()
	webhookStore := store.NewWebhookStore()

	// Seed the market before anything can trade against it.
	if cfg.SeedFile != "" {
		seed, err := config.LoadSeedAndValidate(cfg.SeedFile)
		if err != nil {
			logger.Error("failed to load seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := applySeed(seed, cfg, instrumentStore, teamStore, dealerStore, scenarioStore); err != nil {
			logger.Error("failed to apply seed file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("seed loaded",
			slog.Int("instruments", len(seed.Instruments)),
			slog.Int("teams", len(seed.Teams)),
			slog.Int("dealers", len(seed.Dealers)),
			slog.Int("scenarios", len(seed.Scenarios)),
		)
	}

	// Engine.
	gate := engine.NewMarketGate(cfg.MarketOpenAtStart)
	drifter := engine.NewDrifter(cfg.DriftInterval, instrumentStore, gate, logger)
	shock := engine.NewShockApplier(instrumentStore, logger)
	coordinator := engine.NewCoordinator(instrumentStore, teamStore, tradeStore, gate, cfg.PositionCap, cfg.CommitRetries)

	// Services (webhook first — used as dispatcher by orders and news).
	webhookSvc := service.NewWebhookService(webhookStore, teamStore, cfg.WebhookTimeout)
	teamSvc := service.NewTeamService(teamStore, instrumentStore, cfg.DefaultStartingCash)
	orderSvc := service.NewOrderService(coordinator, dealerStore, webhookSvc)
	marketSvc := service.NewMarketService(instrumentStore, teamStore)
	newsSvc := service.NewNewsService(scenarioStore, newsStore, shock, webhookSvc, logger)
	adminSvc := service.NewAdminService(instrumentStore, teamStore, tradeStore, gate, logger)

	// Router.
	streamH := handler.NewStreamHandler(marketSvc, cfg.StreamInterval, logger)
	router := handler.NewRouter(teamSvc, orderSvc, marketSvc, newsSvc, adminSvc, webhookSvc, streamH, logger)

	// Start drift goroutine with cancellable context. Start spawns its own
	// goroutine and returns immediately.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	drifter.Start(ctx)

	// Configure HTTP server.
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start HTTP server in a goroutine.
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Graceful shutdown: stop HTTP server, cancel context (stops drift goroutine).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
	cancel()

	logger.Info("server stopped")
}

// applySeed loads a validated seed file into the stores. A seeded team with
// starting_cash omitted (zero) gets the configured default.
func applySeed(
	seed *config.SeedFile,
	cfg *config.Config,
	instruments *store.InstrumentStore,
	teams *store.TeamStore,
	dealers *store.DealerStore,
	scenarios *store.ScenarioStore,
) error {
	for _, si := range seed.Instruments {
		err := instruments.Create(domain.Instrument{
			Ticker:            si.Ticker,
			CompanyName:       si.CompanyName,
			Quote:             si.OpenPrice,
			PreviousQuote:     si.OpenPrice,
			DayOpenPrice:      si.OpenPrice,
			ImpactSensitivity: si.ImpactSensitivity,
			DriftVolatility:   si.DriftVolatility,
		})
		if err != nil {
			return fmt.Errorf("seeding instrument %q: %w", si.Ticker, err)
		}
	}

	for _, st := range seed.Teams {
		startingCash := st.StartingCash
		if startingCash == 0 {
			startingCash = cfg.DefaultStartingCash
		}
		err := teams.Create(&domain.Team{
			TeamID:       st.TeamID,
			Name:         st.Name,
			Password:     st.Password,
			CashBalance:  startingCash,
			StartingCash: startingCash,
			Positions:    make(map[string]domain.Position),
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("seeding team %q: %w", st.TeamID, err)
		}
	}

	for _, sd := range seed.Dealers {
		dealers.Put(domain.Dealer{
			Username: sd.Username,
			Password: sd.Password,
		})
	}

	for _, ss := range seed.Scenarios {
		scenarios.Put(domain.Scenario{
			ScenarioID: ss.ScenarioID,
			Headline:   ss.Headline,
			Ticker:     ss.Ticker,
			Sentiment:  ss.Sentiment,
		})
	}

	return nil
}
