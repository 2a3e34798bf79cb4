// Package listing implements hirer job postings: creation with moderation,
// browsing with filters, and closing.
package listing

import "strings"

// DefaultBlockedTerms is the moderation list applied to every new posting.
// Kept short on purpose; operators extend it via LISTING_BLOCKED_TERMS.
var DefaultBlockedTerms = []string{
	"registration fee",
	"pay to apply",
	"work from home guarantee",
	"earn lakhs",
}

// ContainsBlockedTerm returns true if any blocked term appears
// (case-insensitive) anywhere in the combined title + description text.
//
// Called before every insert — if true, the posting is rejected.
func ContainsBlockedTerm(title, description string, blocked []string) bool {
	if len(blocked) == 0 {
		return false
	}
	combined := strings.ToLower(title + " " + description)
	for _, term := range blocked {
		if term == "" {
			continue
		}
		if strings.Contains(combined, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
