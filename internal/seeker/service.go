package seeker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"nammakarya/marketplace-service/internal/store"
)

// Store is the read side of the document store the service loads from. It is
// injected so the aggregation logic never reaches into an ambient handle.
type Store interface {
	FetchAll(ctx context.Context, collection string) ([]store.RawRecord, error)
}

// Writer is the form-submission side of the document store.
type Writer interface {
	Insert(ctx context.Context, collection string, fields map[string]any) (string, error)
}

// viewCacheKey holds the most recent combined view as JSON, for dashboard
// reads that tolerate slightly stale data.
const viewCacheKey = "seeker:combined-view"

// Service loads the two record sets, aggregates them, and caches the result.
type Service struct {
	store  Store
	writer Writer
	rdb    *redis.Client
}

// NewService returns a configured Service. rdb may be nil in tests; caching
// is then skipped.
func NewService(st Store, w Writer, rdb *redis.Client) *Service {
	return &Service{store: st, writer: w, rdb: rdb}
}

// Load fetches both collections and returns the aggregated combined view.
//
// A failed fetch never fails the load: the affected set is treated as empty,
// a human-readable warning is accumulated, and aggregation proceeds over
// whatever did load. Partial data is always preferable to no data here.
func (s *Service) Load(ctx context.Context) ([]CombinedView, []string) {
	var warnings []string

	professionals, err := s.store.FetchAll(ctx, store.CollectionProfessionalDetails)
	if err != nil {
		slog.Warn("professional details fetch failed", "err", err)
		warnings = append(warnings, fmt.Sprintf("could not load professional details: %v", err))
		professionals = nil
	}

	requirements, err := s.store.FetchAll(ctx, store.CollectionSeekerRequirements)
	if err != nil {
		slog.Warn("seeker requirements fetch failed", "err", err)
		warnings = append(warnings, fmt.Sprintf("could not load seeker requirements: %v", err))
		requirements = nil
	}

	return Aggregate(professionals, requirements), warnings
}

// RefreshCache rebuilds the combined view and stores it in Redis. Called by
// the cron refresher; load warnings are logged, not fatal.
func (s *Service) RefreshCache(ctx context.Context) error {
	views, warnings := s.Load(ctx)
	for _, w := range warnings {
		slog.Warn("view refresh partial load", "warning", w)
	}

	if s.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("marshal combined view: %w", err)
	}
	if err := s.rdb.Set(ctx, viewCacheKey, payload, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("cache combined view: %w", err)
	}
	return nil
}

// CachedView returns the last cached combined view, or ErrNoCachedView when
// the cache is cold or unavailable.
func (s *Service) CachedView(ctx context.Context) ([]CombinedView, error) {
	if s.rdb == nil {
		return nil, ErrNoCachedView
	}
	payload, err := s.rdb.Get(ctx, viewCacheKey).Bytes()
	if err != nil {
		return nil, ErrNoCachedView
	}
	var views []CombinedView
	if err := json.Unmarshal(payload, &views); err != nil {
		return nil, ErrNoCachedView
	}
	return views, nil
}

// SubmitProfessional stores a professional-details form submission, stamping
// the creator and creation time. The document body is otherwise preserved
// as-is.
func (s *Service) SubmitProfessional(ctx context.Context, userID string, fields map[string]any) (string, error) {
	return s.submit(ctx, store.CollectionProfessionalDetails, userID, fields)
}

// SubmitRequirement stores a seeker-requirement form submission.
func (s *Service) SubmitRequirement(ctx context.Context, userID string, fields map[string]any) (string, error) {
	return s.submit(ctx, store.CollectionSeekerRequirements, userID, fields)
}

func (s *Service) submit(ctx context.Context, collection, userID string, fields map[string]any) (string, error) {
	if len(fields) == 0 {
		return "", &ValidationError{Msg: "form body must not be empty"}
	}
	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	doc["createdBy"] = userID
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = map[string]any{"seconds": float64(time.Now().Unix())}
	}
	return s.writer.Insert(ctx, collection, doc)
}

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNoCachedView is returned when no combined view has been cached yet.
var ErrNoCachedView = fmt.Errorf("no cached combined view")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
