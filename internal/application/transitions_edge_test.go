package application_test

// ── Additional edge-case tests ────────────────────────────────────────────
//
// This file extends transitions_test.go with cases around the string
// boundary of the state machine: the statuses arrive verbatim from JSON
// bodies, so parsing must stay strict.

import (
	"testing"

	"nammakarya/marketplace-service/internal/application"
)

// ParseStatus must be case-sensitive — lowercase variants must not be valid.
func TestParseStatus_CaseSensitive(t *testing.T) {
	lowercase := []string{"applied", "shortlisted", "hired", "rejected", "withdrawn"}
	for _, s := range lowercase {
		_, err := application.ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q) should reject lowercase value, got nil error", s)
		}
	}
}

// ParseStatus must reject whitespace-padded strings.
func TestParseStatus_WithWhitespace(t *testing.T) {
	padded := []string{" APPLIED", "APPLIED ", " APPLIED "}
	for _, s := range padded {
		_, err := application.ParseStatus(s)
		if err == nil {
			t.Errorf("ParseStatus(%q) should reject padded value, got nil error", s)
		}
	}
}

// All five constants must round-trip through ParseStatus without error.
func TestParseStatus_AllConstantsRoundTrip(t *testing.T) {
	all := []application.Status{
		application.StatusApplied,
		application.StatusShortlisted,
		application.StatusHired,
		application.StatusRejected,
		application.StatusWithdrawn,
	}
	for _, s := range all {
		got, err := application.ParseStatus(string(s))
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

// APPLIED is the mandatory initial state for any new application.
// Verify it is never reachable from any other state.
func TestIsTransitionAllowed_AppliedIsNeverReachable(t *testing.T) {
	sources := []application.Status{
		application.StatusShortlisted,
		application.StatusHired,
		application.StatusRejected,
		application.StatusWithdrawn,
	}
	for _, from := range sources {
		if application.IsTransitionAllowed(from, application.StatusApplied) {
			t.Errorf(
				"IsTransitionAllowed(%s → APPLIED) must be false: APPLIED is only an initial state",
				from,
			)
		}
	}
}
