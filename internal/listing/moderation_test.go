package listing_test

import (
	"testing"

	"nammakarya/marketplace-service/internal/listing"
)

func TestContainsBlockedTerm(t *testing.T) {
	blocked := []string{"registration fee", "earn lakhs"}

	tests := []struct {
		name        string
		title       string
		description string
		want        bool
	}{
		{"clean posting", "Plumber needed", "Two days of bathroom repair work", false},
		{"term in title", "Earn Lakhs from home", "", true},
		{"term in description", "Helper", "Small Registration Fee applies", true},
		{"case-insensitive", "EARN LAKHS NOW", "", true},
		{"term split across fields does not match", "registration", "fee applies", false},
		{"empty inputs", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listing.ContainsBlockedTerm(tt.title, tt.description, blocked)
			if got != tt.want {
				t.Errorf("ContainsBlockedTerm(%q, %q) = %v, want %v", tt.title, tt.description, got, tt.want)
			}
		})
	}
}

func TestContainsBlockedTerm_NoTerms(t *testing.T) {
	if listing.ContainsBlockedTerm("anything", "at all", nil) {
		t.Error("ContainsBlockedTerm with empty term list should be false")
	}
}

func TestContainsBlockedTerm_SkipsEmptyTerm(t *testing.T) {
	if listing.ContainsBlockedTerm("anything", "at all", []string{""}) {
		t.Error("empty blocked term must not match everything")
	}
}
