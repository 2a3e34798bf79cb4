// nammakarya-marketplace-service
//
// Backend for the NammaKarya local-work marketplace:
//   - seeker browse view: professional/requirement document aggregation
//     with legacy-field normalization and live filtering
//   - job listings with moderation and browse filters
//   - applications with a status state machine
//   - notifications (Postgres rows + Redis event fan-out)
//   - UPI checkout intents against the hosted payment provider, settled
//     by signature-verified webhooks
//
// A cron scheduler keeps the cached seeker view warm and expires stale
// payment orders.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nammakarya/marketplace-service/internal/application"
	"nammakarya/marketplace-service/internal/config"
	"nammakarya/marketplace-service/internal/db"
	"nammakarya/marketplace-service/internal/listing"
	"nammakarya/marketplace-service/internal/notify"
	"nammakarya/marketplace-service/internal/payment"
	"nammakarya/marketplace-service/internal/scheduler"
	"nammakarya/marketplace-service/internal/seeker"
	"nammakarya/marketplace-service/internal/store"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[marketplace-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ───────────────────────────────────────────────────────────
	log.Println("[marketplace-service] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[marketplace-service] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[marketplace-service] PostgreSQL connected ✓")

	// ── Redis ────────────────────────────────────────────────────────────────
	log.Println("[marketplace-service] Connecting to Redis…")
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[marketplace-service] Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("[marketplace-service] Redis connected ✓")

	// ── Services ─────────────────────────────────────────────────────────────
	documents := store.New(pool)
	notifier := notify.NewNotifier(pool, rdb)

	seekerSvc := seeker.NewService(documents, documents, rdb)
	listingSvc := listing.NewService(pool, blockedTermsFromEnv())
	applicationSvc := application.NewService(pool, listingSvc, notifier)

	provider := payment.NewProviderClient(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentKeySecret)
	paymentSvc := payment.NewService(pool, provider, notifier)

	// ── Scheduler ────────────────────────────────────────────────────────────
	sched := scheduler.New(seekerSvc, paymentSvc, cfg.ViewRefreshMinutes)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[marketplace-service] Scheduler: %v", err)
	}
	defer sched.Stop()

	// ── HTTP server ──────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)

	seeker.NewHandler(seekerSvc).RegisterRoutes(mux)
	listing.NewHandler(listingSvc).RegisterRoutes(mux)
	application.NewHandler(applicationSvc).RegisterRoutes(mux)
	notify.NewHandler(notifier).RegisterRoutes(mux)
	payment.NewHandler(paymentSvc, cfg.PaymentWebhookSecret).RegisterRoutes(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[marketplace-service] v%s listening on :%s", version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[marketplace-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[marketplace-service] Shutting down…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[marketplace-service] Shutdown error: %v", err)
	}
	log.Println("[marketplace-service] Stopped.")
}

// blockedTermsFromEnv reads the comma-separated LISTING_BLOCKED_TERMS
// moderation list, falling back to the package default when unset.
func blockedTermsFromEnv() []string {
	raw := os.Getenv("LISTING_BLOCKED_TERMS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "marketplace-service",
		"version": version,
	})
}
