package application_test

import (
	"testing"

	"nammakarya/marketplace-service/internal/application"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"APPLIED", "SHORTLISTED", "HIRED", "REJECTED", "WITHDRAWN"}
	for _, s := range valid {
		got, err := application.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	_, err := application.ParseStatus("UNKNOWN")
	if err == nil {
		t.Error("ParseStatus(\"UNKNOWN\") expected error, got nil")
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	_, err := application.ParseStatus("")
	if err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

// ── IsHired ────────────────────────────────────────────────────────────────

func TestIsHired(t *testing.T) {
	if !application.IsHired(application.StatusHired) {
		t.Error("IsHired(HIRED) should return true")
	}
	for _, s := range []application.Status{
		application.StatusApplied,
		application.StatusShortlisted,
		application.StatusRejected,
		application.StatusWithdrawn,
	} {
		if application.IsHired(s) {
			t.Errorf("IsHired(%s) should return false", s)
		}
	}
}

// ── IsTransitionAllowed — valid (forward) transitions ─────────────────────

func TestIsTransitionAllowed_ValidForward(t *testing.T) {
	cases := []struct {
		from application.Status
		to   application.Status
	}{
		{application.StatusApplied, application.StatusShortlisted},
		{application.StatusShortlisted, application.StatusHired},
	}
	for _, c := range cases {
		if !application.IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be true", c.from, c.to)
		}
	}
}

// ── Rejection and withdrawal from any non-terminal state ──────────────────

func TestIsTransitionAllowed_ToRejected(t *testing.T) {
	for _, from := range []application.Status{
		application.StatusApplied,
		application.StatusShortlisted,
	} {
		if !application.IsTransitionAllowed(from, application.StatusRejected) {
			t.Errorf("IsTransitionAllowed(%s → REJECTED) should be true", from)
		}
	}
}

func TestIsTransitionAllowed_ToWithdrawn(t *testing.T) {
	for _, from := range []application.Status{
		application.StatusApplied,
		application.StatusShortlisted,
	} {
		if !application.IsTransitionAllowed(from, application.StatusWithdrawn) {
			t.Errorf("IsTransitionAllowed(%s → WITHDRAWN) should be true", from)
		}
	}
}

// ── Terminal states have no outgoing transitions ──────────────────────────

func TestIsTransitionAllowed_FromTerminal(t *testing.T) {
	terminals := []application.Status{
		application.StatusHired,
		application.StatusRejected,
		application.StatusWithdrawn,
	}
	targets := []application.Status{
		application.StatusApplied,
		application.StatusShortlisted,
		application.StatusHired,
		application.StatusRejected,
		application.StatusWithdrawn,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if application.IsTransitionAllowed(from, to) {
				t.Errorf("IsTransitionAllowed(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

// ── Skip-level and backwards movements are forbidden ──────────────────────

func TestIsTransitionAllowed_SkipLevel(t *testing.T) {
	if application.IsTransitionAllowed(application.StatusApplied, application.StatusHired) {
		t.Error("IsTransitionAllowed(APPLIED → HIRED) should be false (skip SHORTLISTED)")
	}
}

func TestIsTransitionAllowed_Backwards(t *testing.T) {
	if application.IsTransitionAllowed(application.StatusShortlisted, application.StatusApplied) {
		t.Error("IsTransitionAllowed(SHORTLISTED → APPLIED) should be false (backwards)")
	}
}

// ── Self-transitions are forbidden ────────────────────────────────────────

func TestIsTransitionAllowed_Self(t *testing.T) {
	all := []application.Status{
		application.StatusApplied, application.StatusShortlisted,
		application.StatusHired, application.StatusRejected, application.StatusWithdrawn,
	}
	for _, s := range all {
		if application.IsTransitionAllowed(s, s) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be false (self)", s, s)
		}
	}
}

// ── SeekerMayRequest ──────────────────────────────────────────────────────

func TestSeekerMayRequest(t *testing.T) {
	if !application.SeekerMayRequest(application.StatusWithdrawn) {
		t.Error("SeekerMayRequest(WITHDRAWN) should be true")
	}
	for _, s := range []application.Status{
		application.StatusApplied, application.StatusShortlisted,
		application.StatusHired, application.StatusRejected,
	} {
		if application.SeekerMayRequest(s) {
			t.Errorf("SeekerMayRequest(%s) should be false", s)
		}
	}
}
