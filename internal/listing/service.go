package listing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nammakarya/marketplace-service/internal/model"
)

// Service encapsulates all job-listing business logic.
// It has no dependency on net/http — it can be used by any transport layer.
type Service struct {
	pool         *pgxpool.Pool
	blockedTerms []string
}

// NewService returns a configured Service. blockedTerms may be nil to use
// DefaultBlockedTerms.
func NewService(pool *pgxpool.Pool, blockedTerms []string) *Service {
	if blockedTerms == nil {
		blockedTerms = DefaultBlockedTerms
	}
	return &Service{pool: pool, blockedTerms: blockedTerms}
}

// CreateInput is the validated shape of a new posting.
type CreateInput struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	City        string `json:"city"`
	Locality    string `json:"locality"`
	WageMin     *int   `json:"wageMin"`
	WageMax     *int   `json:"wageMax"`
	Openings    int    `json:"openings"`
}

// Create inserts a new OPEN listing after the moderation check.
func (s *Service) Create(ctx context.Context, hirerID string, in CreateInput) (*model.JobListing, error) {
	if in.Title == "" || in.Category == "" || in.City == "" {
		return nil, &ValidationError{Msg: "title, category and city are required"}
	}
	if in.Openings < 1 {
		in.Openings = 1
	}
	if ContainsBlockedTerm(in.Title, in.Description, s.blockedTerms) {
		return nil, &ValidationError{Msg: "listing contains a blocked term"}
	}

	var l model.JobListing
	err := s.pool.QueryRow(ctx,
		`INSERT INTO job_listings
		   (id, hirer_id, title, category, description, city, locality,
		    wage_min, wage_max, openings, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'OPEN')
		 RETURNING id, hirer_id, title, category, description, city, locality,
		           wage_min, wage_max, openings, status, created_at, updated_at`,
		uuid.NewString(), hirerID, in.Title, in.Category, in.Description,
		in.City, in.Locality, in.WageMin, in.WageMax, in.Openings,
	).Scan(
		&l.ID, &l.HirerID, &l.Title, &l.Category, &l.Description, &l.City,
		&l.Locality, &l.WageMin, &l.WageMax, &l.Openings, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return &l, nil
}

// BrowseFilters narrows the listing feed. Zero values are ignored.
type BrowseFilters struct {
	Category     string
	LocationTerm string
	IncludeAll   bool // when false, only OPEN listings are returned
}

// Browse returns listings newest first, optionally filtered by category and a
// case-insensitive location term matched against city and locality.
func (s *Service) Browse(ctx context.Context, f BrowseFilters) ([]model.JobListing, error) {
	const base = `
		SELECT id, hirer_id, title, category, description, city, locality,
		       wage_min, wage_max, openings, status, created_at, updated_at
		FROM job_listings
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR city ILIKE '%' || $2 || '%' OR locality ILIKE '%' || $2 || '%')
		  AND ($3 OR status = 'OPEN')
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, base, f.Category, f.LocationTerm, f.IncludeAll)
	if err != nil {
		return nil, fmt.Errorf("browse listings query: %w", err)
	}
	defer rows.Close()

	listings := make([]model.JobListing, 0)
	for rows.Next() {
		var l model.JobListing
		if err := rows.Scan(
			&l.ID, &l.HirerID, &l.Title, &l.Category, &l.Description, &l.City,
			&l.Locality, &l.WageMin, &l.WageMax, &l.Openings, &l.Status,
			&l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("browse listings scan: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// Get returns a single listing by id.
func (s *Service) Get(ctx context.Context, listingID string) (*model.JobListing, error) {
	var l model.JobListing
	err := s.pool.QueryRow(ctx,
		`SELECT id, hirer_id, title, category, description, city, locality,
		        wage_min, wage_max, openings, status, created_at, updated_at
		 FROM job_listings WHERE id = $1`,
		listingID,
	).Scan(
		&l.ID, &l.HirerID, &l.Title, &l.Category, &l.Description, &l.City,
		&l.Locality, &l.WageMin, &l.WageMax, &l.Openings, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}
	return &l, nil
}

// Close marks the hirer's listing CLOSED, validating ownership.
func (s *Service) Close(ctx context.Context, hirerID, listingID string) (*model.JobListing, error) {
	var l model.JobListing
	err := s.pool.QueryRow(ctx,
		`UPDATE job_listings
		 SET status = 'CLOSED', updated_at = NOW()
		 WHERE id = $1 AND hirer_id = $2
		 RETURNING id, hirer_id, title, category, description, city, locality,
		           wage_min, wage_max, openings, status, created_at, updated_at`,
		listingID, hirerID,
	).Scan(
		&l.ID, &l.HirerID, &l.Title, &l.Category, &l.Description, &l.City,
		&l.Locality, &l.WageMin, &l.WageMax, &l.Openings, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, ErrNotFound
	}
	return &l, nil
}

// FillOpening decrements the listing's openings after a hire and closes the
// listing when none remain. Used by the application package on HIRED.
func (s *Service) FillOpening(ctx context.Context, listingID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE job_listings
		 SET openings   = GREATEST(openings - 1, 0),
		     status     = CASE WHEN openings - 1 <= 0 THEN 'CLOSED' ELSE status END,
		     updated_at = NOW()
		 WHERE id = $1 AND status = 'OPEN'`,
		listingID,
	)
	if err != nil {
		return fmt.Errorf("fill opening: %w", err)
	}
	return nil
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when a listing is missing or not owned by the caller.
var ErrNotFound = fmt.Errorf("listing not found")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
