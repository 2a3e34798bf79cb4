package seeker_test

import (
	"context"
	"errors"
	"testing"

	"nammakarya/marketplace-service/internal/seeker"
	"nammakarya/marketplace-service/internal/store"
)

// fakeStore serves canned records per collection and can fail selectively.
type fakeStore struct {
	records map[string][]store.RawRecord
	fail    map[string]error

	inserted map[string][]map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:  make(map[string][]store.RawRecord),
		fail:     make(map[string]error),
		inserted: make(map[string][]map[string]any),
	}
}

func (f *fakeStore) FetchAll(_ context.Context, collection string) ([]store.RawRecord, error) {
	if err := f.fail[collection]; err != nil {
		return nil, err
	}
	return f.records[collection], nil
}

func (f *fakeStore) Insert(_ context.Context, collection string, fields map[string]any) (string, error) {
	f.inserted[collection] = append(f.inserted[collection], fields)
	return "doc-1", nil
}

// ── Load ───────────────────────────────────────────────────────────────────

func TestService_Load_BothCollections(t *testing.T) {
	fs := newFakeStore()
	fs.records[store.CollectionProfessionalDetails] = []store.RawRecord{
		rec("p1", map[string]any{"createdBy": "u1"}),
	}
	fs.records[store.CollectionSeekerRequirements] = []store.RawRecord{
		rec("r1", map[string]any{"createdBy": "u1"}),
	}
	svc := seeker.NewService(fs, fs, nil)

	views, warnings := svc.Load(context.Background())

	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if len(views) != 1 || !views[0].HasRequirement {
		t.Errorf("views = %+v, want one matched view", views)
	}
}

func TestService_Load_RequirementFetchFails(t *testing.T) {
	fs := newFakeStore()
	fs.records[store.CollectionProfessionalDetails] = []store.RawRecord{
		rec("p1", map[string]any{"createdBy": "u1"}),
	}
	fs.fail[store.CollectionSeekerRequirements] = errors.New("store unavailable")
	svc := seeker.NewService(fs, fs, nil)

	views, warnings := svc.Load(context.Background())

	if len(views) != 1 {
		t.Fatalf("views = %d, want 1 (professional-only partial view)", len(views))
	}
	if views[0].HasRequirement {
		t.Error("HasRequirement = true, want false when requirement fetch failed")
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", warnings)
	}
}

func TestService_Load_ProfessionalFetchFails(t *testing.T) {
	fs := newFakeStore()
	fs.fail[store.CollectionProfessionalDetails] = errors.New("store unavailable")
	fs.records[store.CollectionSeekerRequirements] = []store.RawRecord{
		rec("r1", map[string]any{"createdBy": "u1"}),
	}
	svc := seeker.NewService(fs, fs, nil)

	views, warnings := svc.Load(context.Background())

	// A professional record is mandatory for a view to exist at all.
	if len(views) != 0 {
		t.Errorf("views = %d, want 0 when professional fetch failed", len(views))
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one", warnings)
	}
}

func TestService_Load_BothFetchesFail(t *testing.T) {
	fs := newFakeStore()
	fs.fail[store.CollectionProfessionalDetails] = errors.New("down")
	fs.fail[store.CollectionSeekerRequirements] = errors.New("down")
	svc := seeker.NewService(fs, fs, nil)

	views, warnings := svc.Load(context.Background())

	if len(views) != 0 {
		t.Errorf("views = %d, want 0", len(views))
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want two accumulated messages", warnings)
	}
}

// ── Form submission ────────────────────────────────────────────────────────

func TestService_Submit_StampsCreator(t *testing.T) {
	fs := newFakeStore()
	svc := seeker.NewService(fs, fs, nil)

	id, err := svc.SubmitProfessional(context.Background(), "u7", map[string]any{"profession": "Mason"})
	if err != nil {
		t.Fatalf("SubmitProfessional() error: %v", err)
	}
	if id != "doc-1" {
		t.Errorf("id = %q, want doc-1", id)
	}

	docs := fs.inserted[store.CollectionProfessionalDetails]
	if len(docs) != 1 {
		t.Fatalf("inserted %d docs, want 1", len(docs))
	}
	if docs[0]["createdBy"] != "u7" {
		t.Errorf("createdBy = %v, want u7", docs[0]["createdBy"])
	}
	if _, ok := docs[0]["createdAt"]; !ok {
		t.Error("createdAt not stamped on submission")
	}
}

func TestService_Submit_RejectsEmptyBody(t *testing.T) {
	fs := newFakeStore()
	svc := seeker.NewService(fs, fs, nil)

	_, err := svc.SubmitRequirement(context.Background(), "u7", nil)

	var ve *seeker.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}
