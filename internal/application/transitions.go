// Package application defines the status state machine for job applications
// and the business logic around them.
//
// Valid status graph:
//
//	APPLIED ──► SHORTLISTED ──► HIRED
//	    │             │
//	    ├─────────────┴──► REJECTED   (hirer decision)
//	    └────────────────► WITHDRAWN  (seeker decision)
//
// HIRED, REJECTED and WITHDRAWN are terminal states.
package application

import "fmt"

// Status values mirror the application_status enum in PostgreSQL.
type Status string

const (
	StatusApplied     Status = "APPLIED"
	StatusShortlisted Status = "SHORTLISTED"
	StatusHired       Status = "HIRED"
	StatusRejected    Status = "REJECTED"
	StatusWithdrawn   Status = "WITHDRAWN"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusApplied:     {StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusShortlisted: {StatusHired, StatusRejected, StatusWithdrawn},
	// HIRED, REJECTED and WITHDRAWN are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusShortlisted, StatusHired, StatusRejected, StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsHired returns true when status is HIRED (triggers listing-opening fill).
func IsHired(s Status) bool { return s == StatusHired }

// SeekerMayRequest restricts which target states a seeker can set on their
// own application. Everything else belongs to the hirer.
func SeekerMayRequest(to Status) bool { return to == StatusWithdrawn }
