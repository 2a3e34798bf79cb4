// Package notify persists user notifications and fans them out over Redis
// for the Gateway's SSE forwarding.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"nammakarya/marketplace-service/internal/model"
)

// Notifier stores notifications and publishes matching Redis events.
type Notifier struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
}

// NewNotifier returns a configured Notifier.
func NewNotifier(pool *pgxpool.Pool, rdb *redis.Client) *Notifier {
	return &Notifier{pool: pool, rdb: rdb}
}

// Notify inserts a notification row and publishes it on the EVENT_{kind}
// channel. The publish is best-effort: a failed publish is logged, not
// returned, since the row is already durable.
func (n *Notifier) Notify(ctx context.Context, userID, kind string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	_, err = n.pool.Exec(ctx,
		`INSERT INTO notifications (id, user_id, kind, payload, read)
		 VALUES ($1, $2, $3, $4::jsonb, false)`,
		uuid.NewString(), userID, kind, string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	event, _ := json.Marshal(map[string]any{
		"type":    "EVENT_" + kind,
		"userId":  userID,
		"payload": payload,
	})
	if err := n.rdb.Publish(ctx, "EVENT_"+kind, event).Err(); err != nil {
		slog.Warn("publish notification event failed", "kind", kind, "err", err)
	}

	return nil
}

// List returns the user's notifications, newest first. If unreadOnly is set,
// read notifications are excluded.
func (n *Notifier) List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	rows, err := n.pool.Query(ctx,
		`SELECT id, user_id, kind, payload, read, created_at
		 FROM notifications
		 WHERE user_id = $1 AND ($2 = false OR read = false)
		 ORDER BY created_at DESC
		 LIMIT 100`,
		userID, unreadOnly,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications query: %w", err)
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var nt model.Notification
		if err := rows.Scan(&nt.ID, &nt.UserID, &nt.Kind, &nt.Payload, &nt.Read, &nt.CreatedAt); err != nil {
			return nil, fmt.Errorf("list notifications scan: %w", err)
		}
		notifications = append(notifications, nt)
	}
	return notifications, rows.Err()
}

// MarkRead flags one notification as read, validating ownership.
func (n *Notifier) MarkRead(ctx context.Context, userID, notificationID string) error {
	tag, err := n.pool.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ErrNotFound is returned when a notification is missing or not the caller's.
var ErrNotFound = fmt.Errorf("notification not found")
