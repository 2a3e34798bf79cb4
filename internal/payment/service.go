package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"nammakarya/marketplace-service/internal/model"
)

// Notifier delivers a notification to a user. Satisfied by *notify.Notifier.
type Notifier interface {
	Notify(ctx context.Context, userID, kind string, payload map[string]any) error
}

// Service encapsulates payment-order business logic.
type Service struct {
	pool     *pgxpool.Pool
	provider *ProviderClient
	notifier Notifier
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, provider *ProviderClient, notifier Notifier) *Service {
	return &Service{pool: pool, provider: provider, notifier: notifier}
}

const orderColumns = `id, provider_order_id, payer_id, payee_id, amount_paise,
	COALESCE(payee_vpa, ''), status, created_at, updated_at`

// InitiateInput is the validated shape of a checkout request.
type InitiateInput struct {
	PayeeID     string `json:"payeeId"`
	AmountPaise int64  `json:"amountPaise"`
	PayeeVPA    string `json:"payeeVpa"`
}

// Initiate creates a provider checkout order and records it locally at
// CREATED. The returned order's ProviderOrderID is what the frontend passes
// to the hosted checkout widget.
func (s *Service) Initiate(ctx context.Context, payerID string, in InitiateInput) (*model.PaymentOrder, error) {
	if in.PayeeID == "" {
		return nil, &ValidationError{Msg: "payeeId is required"}
	}
	if in.AmountPaise < 100 {
		return nil, &ValidationError{Msg: "amountPaise must be at least 100 (₹1)"}
	}

	localID := uuid.NewString()
	providerOrder, err := s.provider.CreateOrder(ctx, in.AmountPaise, localID)
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}

	var o model.PaymentOrder
	err = s.pool.QueryRow(ctx,
		`INSERT INTO payment_orders
		   (id, provider_order_id, payer_id, payee_id, amount_paise, payee_vpa, status)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), 'CREATED')
		 RETURNING `+orderColumns,
		localID, providerOrder.ID, payerID, in.PayeeID, in.AmountPaise, in.PayeeVPA,
	).Scan(
		&o.ID, &o.ProviderOrderID, &o.PayerID, &o.PayeeID, &o.AmountPaise,
		&o.PayeeVPA, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment order: %w", err)
	}
	return &o, nil
}

// Get returns a payment order by id for either party.
func (s *Service) Get(ctx context.Context, userID, orderID string) (*model.PaymentOrder, error) {
	var o model.PaymentOrder
	err := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+`
		 FROM payment_orders
		 WHERE id = $1 AND (payer_id = $2 OR payee_id = $2)`,
		orderID, userID,
	).Scan(
		&o.ID, &o.ProviderOrderID, &o.PayerID, &o.PayeeID, &o.AmountPaise,
		&o.PayeeVPA, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}
	return &o, nil
}

// settlements maps provider webhook events to local order statuses.
var settlements = map[string]string{
	"payment.captured": "PAID",
	"payment.failed":   "FAILED",
}

// Settle flips a CREATED order to its settled status for a provider webhook
// event. Unknown events and already-settled orders are ignored (webhooks are
// delivered at-least-once). The payee is notified on capture.
func (s *Service) Settle(ctx context.Context, providerOrderID, event string) error {
	status, ok := settlements[event]
	if !ok {
		slog.Debug("ignoring webhook event", "event", event)
		return nil
	}

	var o model.PaymentOrder
	err := s.pool.QueryRow(ctx,
		`UPDATE payment_orders
		 SET status = $1, updated_at = NOW()
		 WHERE provider_order_id = $2 AND status = 'CREATED'
		 RETURNING `+orderColumns,
		status, providerOrderID,
	).Scan(
		&o.ID, &o.ProviderOrderID, &o.PayerID, &o.PayeeID, &o.AmountPaise,
		&o.PayeeVPA, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return settleScanErr(providerOrderID, event, err)
	}

	if status == "PAID" {
		if err := s.notifier.Notify(ctx, o.PayeeID, "PAYMENT_RECEIVED", map[string]any{
			"orderId":     o.ID,
			"payerId":     o.PayerID,
			"amountPaise": o.AmountPaise,
		}); err != nil {
			slog.Warn("notify PAYMENT_RECEIVED failed", "err", err)
		}
	}

	return nil
}

// settleScanErr classifies a failed settlement update. No matching row means
// an unknown order or a duplicate delivery, both safe to drop; anything else
// must surface as an error so the provider redelivers the webhook.
func settleScanErr(providerOrderID, event string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		slog.Warn("webhook matched no settleable order", "providerOrderId", providerOrderID, "event", event)
		return nil
	}
	return fmt.Errorf("settle order %s: %w", providerOrderID, err)
}

// ExpireStale marks CREATED orders older than maxAgeHours as EXPIRED.
// Called by the cron sweep; returns the number of expired orders.
func (s *Service) ExpireStale(ctx context.Context, maxAgeHours int) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE payment_orders
		 SET status = 'EXPIRED', updated_at = NOW()
		 WHERE status = 'CREATED'
		   AND created_at < NOW() - make_interval(hours => $1)`,
		maxAgeHours,
	)
	if err != nil {
		return 0, fmt.Errorf("expire stale orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when an order is missing or not the caller's.
var ErrNotFound = fmt.Errorf("payment order not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
