// Package scheduler wires up the cron jobs: the periodic rebuild of the
// cached seeker combined view and the stale payment-order sweep.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"nammakarya/marketplace-service/internal/payment"
	"nammakarya/marketplace-service/internal/seeker"
)

// staleOrderMaxAgeHours is how long a CREATED payment order may sit before
// the sweep marks it EXPIRED.
const staleOrderMaxAgeHours = 24

// Scheduler wraps robfig/cron and manages the periodic jobs.
type Scheduler struct {
	cron        *cron.Cron
	seekers     *seeker.Service
	payments    *payment.Service
	refreshSpec string // cron spec, e.g. "@every 15m"
}

// New creates a Scheduler that refreshes the seeker view every
// refreshMinutes minutes and sweeps payments hourly.
func New(seekers *seeker.Service, payments *payment.Service, refreshMinutes int) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLogger(cron.DefaultLogger)),
		seekers:     seekers,
		payments:    payments,
		refreshSpec: fmt.Sprintf("@every %dm", refreshMinutes),
	}
}

// Start registers the jobs and starts the scheduler. Also runs one view
// refresh immediately so the cache is warm without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.refreshSpec, func() {
		s.refreshView(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc refresh: %w", err)
	}

	if _, err := s.cron.AddFunc("@every 1h", func() {
		s.sweepPayments(ctx)
	}); err != nil {
		return fmt.Errorf("cron.AddFunc sweep: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — view refresh spec: %s", s.refreshSpec)

	// Warm the cache immediately on startup (non-blocking)
	go s.refreshView(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// refreshView rebuilds the cached seeker combined view.
func (s *Scheduler) refreshView(ctx context.Context) {
	if err := s.seekers.RefreshCache(ctx); err != nil {
		log.Printf("[scheduler] View refresh error: %v", err)
		return
	}
	log.Println("[scheduler] Seeker view cache refreshed")
}

// sweepPayments expires stale CREATED payment orders.
func (s *Scheduler) sweepPayments(ctx context.Context) {
	n, err := s.payments.ExpireStale(ctx, staleOrderMaxAgeHours)
	if err != nil {
		log.Printf("[scheduler] Payment sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[scheduler] Expired %d stale payment order(s)", n)
	}
}
