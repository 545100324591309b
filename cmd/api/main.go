package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/finance-vault/internal/analytics"
	"github.com/dvloznov/finance-vault/internal/api/handlers"
	"github.com/dvloznov/finance-vault/internal/api/middleware"
	"github.com/dvloznov/finance-vault/internal/config"
	"github.com/dvloznov/finance-vault/internal/crypto"
	"github.com/dvloznov/finance-vault/internal/logger"
	"github.com/dvloznov/finance-vault/internal/record"
	"github.com/dvloznov/finance-vault/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", true)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	// The codec is built once at startup; a bad passphrase surfaces here,
	// not as garbled decrypts later.
	codec, err := crypto.NewFromPassphrase(cfg.Passphrase, cfg.KeySalt)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to derive encryption key")
	}

	db, err := record.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("Failed to open database")
	}
	if err := record.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate schema")
	}

	stores := store.New(db, codec, log)
	engine := analytics.New(
		stores.Accounts,
		stores.Balances,
		stores.Transactions,
		stores.Holdings,
		stores.Allocations,
		stores.Prices,
		cfg.BenchmarkTicker,
		log,
	)

	// Initialize handlers
	accountsHandler := handlers.NewAccountsHandler(stores.Accounts, stores.Balances, log)
	goalsHandler := handlers.NewGoalsHandler(stores.Goals, log)
	holdingsHandler := handlers.NewHoldingsHandler(stores.Holdings, stores.Allocations, log)
	billsHandler := handlers.NewBillsHandler(stores.Bills, cfg.BillHorizonDays, log)
	transactionsHandler := handlers.NewTransactionsHandler(stores.Transactions, log)
	notificationsHandler := handlers.NewNotificationsHandler(stores.Notifications, log)
	pricesHandler := handlers.NewPricesHandler(stores.Prices, log)
	analyticsHandler := handlers.NewAnalyticsHandler(engine, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			accountsHandler.List(w, r)
		case http.MethodPost:
			accountsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/accounts/reorder", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			accountsHandler.Reorder(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/accounts/", func(w http.ResponseWriter, r *http.Request) {
		id, rest := splitPath(r.URL.Path, "/api/accounts/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Account ID is required")
			return
		}
		if rest == "balances" {
			if r.Method == http.MethodGet {
				accountsHandler.ListBalances(w, r, id)
			} else {
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			accountsHandler.Get(w, r, id)
		case http.MethodPatch:
			accountsHandler.Patch(w, r, id)
		case http.MethodDelete:
			accountsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			goalsHandler.List(w, r)
		case http.MethodPost:
			goalsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/goals/reorder", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			goalsHandler.Reorder(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/goals/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := splitPath(r.URL.Path, "/api/goals/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Goal ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			goalsHandler.Get(w, r, id)
		case http.MethodPatch:
			goalsHandler.Patch(w, r, id)
		case http.MethodDelete:
			goalsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/holdings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			holdingsHandler.List(w, r)
		case http.MethodPost:
			holdingsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/holdings/reorder", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			holdingsHandler.Reorder(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/holdings/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := splitPath(r.URL.Path, "/api/holdings/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Holding ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			holdingsHandler.Get(w, r, id)
		case http.MethodPatch:
			holdingsHandler.Patch(w, r, id)
		case http.MethodDelete:
			holdingsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/allocations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			holdingsHandler.ListTargets(w, r)
		case http.MethodPut:
			holdingsHandler.SetTarget(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/allocations/", func(w http.ResponseWriter, r *http.Request) {
		assetClass, _ := splitPath(r.URL.Path, "/api/allocations/")
		if assetClass == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Asset class is required")
			return
		}
		if r.Method == http.MethodDelete {
			holdingsHandler.DeleteTarget(w, r, assetClass)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/bills", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			billsHandler.List(w, r)
		case http.MethodPost:
			billsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/bills/upcoming", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			billsHandler.Upcoming(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/bills/", func(w http.ResponseWriter, r *http.Request) {
		id, rest := splitPath(r.URL.Path, "/api/bills/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Bill ID is required")
			return
		}
		if rest == "payments" {
			switch r.Method {
			case http.MethodGet:
				billsHandler.ListPayments(w, r, id)
			case http.MethodPut:
				billsHandler.SetPayment(w, r, id)
			default:
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			billsHandler.Get(w, r, id)
		case http.MethodPatch:
			billsHandler.Patch(w, r, id)
		case http.MethodDelete:
			billsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := splitPath(r.URL.Path, "/api/transactions/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.Get(w, r, id)
		case http.MethodDelete:
			transactionsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/notifications", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			notificationsHandler.List(w, r)
		case http.MethodPost:
			notificationsHandler.Create(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/notifications/", func(w http.ResponseWriter, r *http.Request) {
		id, rest := splitPath(r.URL.Path, "/api/notifications/")
		if id == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Notification ID is required")
			return
		}
		if rest == "enabled" {
			if r.Method == http.MethodPut {
				notificationsHandler.SetEnabled(w, r, id)
			} else {
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}
		switch r.Method {
		case http.MethodGet:
			notificationsHandler.Get(w, r, id)
		case http.MethodDelete:
			notificationsHandler.Delete(w, r, id)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/prices", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			pricesHandler.Record(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})
	mux.HandleFunc("/api/prices/", func(w http.ResponseWriter, r *http.Request) {
		ticker, _ := splitPath(r.URL.Path, "/api/prices/")
		if ticker == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Ticker is required")
			return
		}
		if r.Method == http.MethodGet {
			pricesHandler.History(w, r, ticker)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/analytics/net-worth", requireGet(analyticsHandler.NetWorth))
	mux.HandleFunc("/api/analytics/net-worth/history", requireGet(analyticsHandler.NetWorthHistory))
	mux.HandleFunc("/api/analytics/spending", requireGet(analyticsHandler.Spending))
	mux.HandleFunc("/api/analytics/allocation", requireGet(analyticsHandler.Allocation))
	mux.HandleFunc("/api/analytics/rebalance", requireGet(analyticsHandler.Rebalance))
	mux.HandleFunc("/api/analytics/performance", requireGet(analyticsHandler.Performance))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Str("db", cfg.DBPath).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// splitPath extracts the first path segment after the prefix and whatever
// follows it, so /api/bills/{id}/payments yields ("{id}", "payments").
func splitPath(path, prefix string) (id, rest string) {
	trimmed := strings.TrimPrefix(path, prefix)
	if i := strings.Index(trimmed, "/"); i >= 0 {
		return trimmed[:i], strings.Trim(trimmed[i+1:], "/")
	}
	return trimmed, ""
}

func requireGet(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h(w, r)
	}
}
