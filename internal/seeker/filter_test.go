package seeker_test

import (
	"reflect"
	"testing"

	"nammakarya/marketplace-service/internal/seeker"
	"nammakarya/marketplace-service/internal/store"
)

func sampleViews() []seeker.CombinedView {
	professionals := []store.RawRecord{
		rec("p1", map[string]any{
			"createdBy":   "u1",
			"name":        "Ravi Naik",
			"profession":  "Plumber",
			"city":        "Kumta",
			"locality":    "Market Road",
			"skills":      []any{"pipe fitting", "welding"},
			"description": "Residential plumbing work",
			"createdAt":   map[string]any{"seconds": float64(300)},
		}),
		rec("p2", map[string]any{
			"createdBy":    "u2",
			"name":         "Shalini",
			"selectedJobs": []any{"Carpenter", "Painter"},
			"cityTown":     "Sirsi",
			"createdAt":    map[string]any{"seconds": float64(200)},
		}),
		rec("p3", map[string]any{
			"createdBy": "u3",
			"name":      "Manju",
			"city":      "Mangalore",
			"createdAt": map[string]any{"seconds": float64(100)},
		}),
	}
	requirements := []store.RawRecord{
		rec("r1", map[string]any{
			"createdBy":         "u1",
			"jobTitle":          "Pipeline technician",
			"preferredLocation": "Honnavar",
			"additionalInfo":    "Available weekends",
		}),
	}
	return seeker.Aggregate(professionals, requirements)
}

// ── Identity and determinism laws ──────────────────────────────────────────

func TestFilter_NeutralCriteriaIsIdentity(t *testing.T) {
	views := sampleViews()

	got := seeker.Filter(views, seeker.Criteria{})

	if !reflect.DeepEqual(got, views) {
		t.Errorf("Filter(neutral) changed the view list:\n got %+v\nwant %+v", got, views)
	}
}

func TestFilter_Deterministic(t *testing.T) {
	views := sampleViews()
	c := seeker.Criteria{SearchTerm: "a", LocationTerm: "r"}

	first := seeker.Filter(views, c)
	second := seeker.Filter(views, c)

	if !reflect.DeepEqual(first, second) {
		t.Error("Filter() returned different results for identical inputs")
	}
}

func TestFilter_PreservesAggregateOrder(t *testing.T) {
	views := sampleViews()

	got := seeker.Filter(views, seeker.Criteria{SearchTerm: "a"}) // matches several

	for i := 1; i < len(got); i++ {
		prev := seeker.CreationSeconds(got[i-1].Professional)
		cur := seeker.CreationSeconds(got[i].Professional)
		if prev < cur {
			t.Errorf("Filter() broke descending order at index %d", i)
		}
	}
}

// ── Search term ────────────────────────────────────────────────────────────

func TestFilter_SearchTerm(t *testing.T) {
	views := sampleViews()

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{"profession match, case-insensitive", "plumb", []string{"p1"}},
		{"job category entry match", "painter", []string{"p2"}},
		{"skill entry match", "welding", []string{"p1"}},
		{"description match", "residential", []string{"p1"}},
		{"requirement desired title match", "pipeline", []string{"p1"}},
		{"requirement additional info match", "weekends", []string{"p1"}},
		{"name match", "shalini", []string{"p2"}},
		{"no match", "electrician", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seeker.Filter(views, seeker.Criteria{SearchTerm: tt.term})
			assertViewIDs(t, got, tt.wantIDs)
		})
	}
}

// ── Location term ──────────────────────────────────────────────────────────

func TestFilter_LocationTerm(t *testing.T) {
	views := sampleViews()

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{"city match", "kumta", []string{"p1"}},
		{"legacy cityTown match", "sirsi", []string{"p2"}},
		{"locality match", "market", []string{"p1"}},
		{"requirement preferred location match", "honnavar", []string{"p1"}},
		{"no match excludes all", "bengaluru", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seeker.Filter(views, seeker.Criteria{LocationTerm: tt.term})
			assertViewIDs(t, got, tt.wantIDs)
		})
	}
}

func TestFilter_LocationExcludesNonMatching(t *testing.T) {
	// Scenario: searching "mangalore" must not keep the Kumta plumber.
	views := sampleViews()

	got := seeker.Filter(views, seeker.Criteria{LocationTerm: "mangalore"})

	assertViewIDs(t, got, []string{"p3"})
}

// ── Profession term ────────────────────────────────────────────────────────

func TestFilter_ProfessionTerm(t *testing.T) {
	views := sampleViews()

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{"scalar profession", "plumber", []string{"p1"}},
		{"job category entry", "carpenter", []string{"p2"}},
		{"requirement desired title", "technician", []string{"p1"}},
		{"no match", "driver", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seeker.Filter(views, seeker.Criteria{ProfessionTerm: tt.term})
			assertViewIDs(t, got, tt.wantIDs)
		})
	}
}

// ── Requirement presence ───────────────────────────────────────────────────

func TestFilter_RequirementPresence(t *testing.T) {
	views := sampleViews()

	tests := []struct {
		name     string
		presence seeker.RequirementPresence
		wantIDs  []string
	}{
		{"all", seeker.PresenceAll, []string{"p1", "p2", "p3"}},
		{"with requirement", seeker.PresenceWith, []string{"p1"}},
		{"without requirement", seeker.PresenceWithout, []string{"p2", "p3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seeker.Filter(views, seeker.Criteria{RequirementPresence: tt.presence})
			assertViewIDs(t, got, tt.wantIDs)
		})
	}
}

// ── Composition ────────────────────────────────────────────────────────────

func TestFilter_DimensionsCombineWithAND(t *testing.T) {
	views := sampleViews()

	// Search matches p1; location matches p2 only — intersection is empty.
	got := seeker.Filter(views, seeker.Criteria{SearchTerm: "plumb", LocationTerm: "sirsi"})
	assertViewIDs(t, got, []string{})

	// Both dimensions match p1.
	got = seeker.Filter(views, seeker.Criteria{SearchTerm: "plumb", LocationTerm: "kumta"})
	assertViewIDs(t, got, []string{"p1"})
}

// ── ParsePresence ──────────────────────────────────────────────────────────

func TestParsePresence(t *testing.T) {
	for _, s := range []string{"", "all", "with-requirement", "without-requirement"} {
		if _, err := seeker.ParsePresence(s); err != nil {
			t.Errorf("ParsePresence(%q) returned unexpected error: %v", s, err)
		}
	}
	if _, err := seeker.ParsePresence("sometimes"); err == nil {
		t.Error("ParsePresence(\"sometimes\") expected error, got nil")
	}
}

func assertViewIDs(t *testing.T, views []seeker.CombinedView, want []string) {
	t.Helper()
	got := make([]string, 0, len(views))
	for _, v := range views {
		got = append(got, v.Professional.ID)
	}
	if len(got) != len(want) {
		t.Fatalf("filtered ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filtered ids = %v, want %v", got, want)
		}
	}
}
