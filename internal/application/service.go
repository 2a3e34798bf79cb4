package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nammakarya/marketplace-service/internal/model"
)

// OpeningFiller decrements a listing's openings after a hire.
// Satisfied by *listing.Service.
type OpeningFiller interface {
	FillOpening(ctx context.Context, listingID string) error
}

// Notifier delivers a notification to a user. Satisfied by *notify.Notifier.
type Notifier interface {
	Notify(ctx context.Context, userID, kind string, payload map[string]any) error
}

// Service encapsulates all application business logic.
// It has no dependency on net/http — it can be used by any transport layer.
type Service struct {
	pool     *pgxpool.Pool
	filler   OpeningFiller
	notifier Notifier
}

// NewService returns a configured Service.
func NewService(pool *pgxpool.Pool, filler OpeningFiller, notifier Notifier) *Service {
	return &Service{pool: pool, filler: filler, notifier: notifier}
}

const appColumns = `id, listing_id, seeker_id, status, pitch, history_log, created_at, updated_at`

// Apply inserts a new application at APPLIED status for the given listing.
// Re-applying to the same listing is a no-op conflict error. The listing's
// hirer is notified (non-fatal).
func (s *Service) Apply(ctx context.Context, seekerID, listingID, pitch string) (*model.Application, error) {
	var hirerID, listingTitle, listingStatus string
	err := s.pool.QueryRow(ctx,
		`SELECT hirer_id, title, status FROM job_listings WHERE id = $1`,
		listingID,
	).Scan(&hirerID, &listingTitle, &listingStatus)
	if err != nil {
		return nil, ErrNotFound
	}
	if listingStatus != "OPEN" {
		return nil, &ValidationError{Msg: "listing is no longer open"}
	}
	if hirerID == seekerID {
		return nil, &ValidationError{Msg: "cannot apply to your own listing"}
	}

	var a model.Application
	err = s.pool.QueryRow(ctx,
		`INSERT INTO applications (id, listing_id, seeker_id, status, pitch, history_log)
		 VALUES ($1, $2, $3, 'APPLIED', NULLIF($4, ''), '[]'::jsonb)
		 ON CONFLICT (listing_id, seeker_id) DO NOTHING
		 RETURNING `+appColumns,
		uuid.NewString(), listingID, seekerID, pitch,
	).Scan(
		&a.ID, &a.ListingID, &a.SeekerID, &a.Status, &a.Pitch,
		&a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, &ValidationError{Msg: "already applied to this listing"}
	}

	// Notify the hirer (non-fatal).
	if err := s.notifier.Notify(ctx, hirerID, "APPLICATION_RECEIVED", map[string]any{
		"applicationId": a.ID,
		"listingId":     listingID,
		"listingTitle":  listingTitle,
		"seekerId":      seekerID,
	}); err != nil {
		slog.Warn("notify APPLICATION_RECEIVED failed", "err", err)
	}

	return &a, nil
}

// ListForSeeker returns the seeker's applications, newest first.
// If statusFilter is non-empty, only applications with that status are returned.
func (s *Service) ListForSeeker(ctx context.Context, seekerID, statusFilter string) ([]model.Application, error) {
	const base = `SELECT ` + appColumns + ` FROM applications WHERE seeker_id = $1`

	var (
		query string
		args  []any
	)
	if statusFilter != "" {
		if _, err := ParseStatus(statusFilter); err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		query = base + ` AND status = $2 ORDER BY updated_at DESC`
		args = []any{seekerID, statusFilter}
	} else {
		query = base + ` ORDER BY updated_at DESC`
		args = []any{seekerID}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listForSeeker query: %w", err)
	}
	defer rows.Close()

	apps := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(
			&a.ID, &a.ListingID, &a.SeekerID, &a.Status, &a.Pitch,
			&a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("listForSeeker scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// ListForListing returns all applications on a listing, validating that the
// caller owns the listing.
func (s *Service) ListForListing(ctx context.Context, hirerID, listingID string) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.listing_id, a.seeker_id, a.status, a.pitch,
		        a.history_log, a.created_at, a.updated_at
		 FROM applications a
		 JOIN job_listings l ON l.id = a.listing_id
		 WHERE a.listing_id = $1 AND l.hirer_id = $2
		 ORDER BY a.created_at DESC`,
		listingID, hirerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listForListing query: %w", err)
	}
	defer rows.Close()

	apps := make([]model.Application, 0)
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(
			&a.ID, &a.ListingID, &a.SeekerID, &a.Status, &a.Pitch,
			&a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("listForListing scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// Move transitions an application to a new status on behalf of userID.
//
// The seeker may only withdraw their own application; every other transition
// is reserved for the listing's hirer. Returns ErrNotFound when the
// application does not exist or the caller holds neither role.
func (s *Service) Move(ctx context.Context, userID, appID, newStatusStr string) (*model.Application, error) {
	newStatus, err := ParseStatus(newStatusStr)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	// Fetch current state plus both role ids (also validates existence).
	var (
		currentStatusStr string
		seekerID         string
		hirerID          string
		listingID        string
	)
	err = s.pool.QueryRow(ctx,
		`SELECT a.status, a.seeker_id, l.hirer_id, a.listing_id
		 FROM applications a
		 JOIN job_listings l ON l.id = a.listing_id
		 WHERE a.id = $1`,
		appID,
	).Scan(&currentStatusStr, &seekerID, &hirerID, &listingID)
	if err != nil {
		return nil, ErrNotFound
	}

	switch userID {
	case seekerID:
		if !SeekerMayRequest(newStatus) {
			return nil, &ValidationError{Msg: "seekers may only withdraw their application"}
		}
	case hirerID:
		if newStatus == StatusWithdrawn {
			return nil, &ValidationError{Msg: "only the seeker may withdraw"}
		}
	default:
		return nil, ErrNotFound
	}

	currentStatus, _ := ParseStatus(currentStatusStr)
	if !IsTransitionAllowed(currentStatus, newStatus) {
		return nil, &ValidationError{
			Msg: fmt.Sprintf("transition %s → %s is not allowed", currentStatus, newStatus),
		}
	}

	historyEntry, _ := json.Marshal(map[string]string{
		"from": string(currentStatus),
		"to":   string(newStatus),
		"by":   userID,
		"at":   time.Now().UTC().Format(time.RFC3339),
	})

	var a model.Application
	err = s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET status      = $1,
		     history_log = history_log || $2::jsonb,
		     updated_at  = NOW()
		 WHERE id = $3
		 RETURNING `+appColumns,
		string(newStatus),
		fmt.Sprintf("[%s]", historyEntry),
		appID,
	).Scan(
		&a.ID, &a.ListingID, &a.SeekerID, &a.Status, &a.Pitch,
		&a.HistoryLog, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("move update: %w", err)
	}

	// On HIRED: consume one listing opening (non-fatal).
	if IsHired(newStatus) {
		if err := s.filler.FillOpening(ctx, listingID); err != nil {
			slog.Warn("fillOpening failed", "listingId", listingID, "err", err)
		}
	}

	// Notify the seeker of hirer decisions (non-fatal).
	if userID == hirerID {
		if err := s.notifier.Notify(ctx, seekerID, "APPLICATION_STATUS_CHANGED", map[string]any{
			"applicationId": appID,
			"listingId":     listingID,
			"from":          string(currentStatus),
			"to":            string(newStatus),
		}); err != nil {
			slog.Warn("notify APPLICATION_STATUS_CHANGED failed", "err", err)
		}
	}

	return &a, nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when an application is missing or the caller has no
// role on it.
var ErrNotFound = fmt.Errorf("application not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
