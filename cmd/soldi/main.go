package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soldi/internal/advisor"
	"soldi/internal/auth"
	"soldi/internal/config"
	apphttp "soldi/internal/http"
	applog "soldi/internal/log"
	"soldi/internal/services"
	"soldi/internal/store"
	"soldi/internal/store/memory"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:  applog.ParseLevel(cfg.LogLevel),
		Format: cfg.LogFormat,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	var st store.Store
	switch cfg.DataBackend {
	case "memory":
		mem := memory.New()
		mem.SeedDefaultCategories()
		st = mem
		logger.Info("Initialized memory backend")
	default:
		sqlite, err := store.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", applog.FieldError, err.Error(), "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		st = sqlite
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Store close error", applog.FieldError, err.Error())
		}
	}()

	authSvc := auth.NewService(st, cfg.JWTSecret, logger.WithComponent(applog.ComponentAuth).Logger)
	transactions := services.NewTransactionService(st, st, st)
	accounts := services.NewAccountService(st)
	budgets := services.NewBudgetService(st, st, transactions)
	goals := services.NewGoalService(st)

	var advisorSvc *services.AdvisorService
	if cfg.AdvisorEnabled() {
		completer := advisor.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		advisorSvc = services.NewAdvisorService(transactions, accounts, budgets, goals, advisor.New(completer))
		logger.Info("Advisor enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("Advisor disabled, no API key configured")
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Auth:           authSvc,
		Transactions:   transactions,
		Categories:     services.NewCategoryService(st),
		Accounts:       accounts,
		Budgets:        budgets,
		Stats:          services.NewStatsService(transactions),
		PaymentMethods: services.NewPaymentMethodService(st),
		Goals:          goals,
		Advisor:        advisorSvc,
		Logger:         logger,
		CacheTTL:       cfg.CacheTTL,
		CacheMaxSize:   cfg.CacheMaxSize,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err.Error())
		}
		cancel()
	}()

	logger.Info("Starting soldi server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
