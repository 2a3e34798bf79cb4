package seeker

import (
	"fmt"
	"strings"

	"nammakarya/marketplace-service/internal/store"
)

// RequirementPresence narrows views by whether a requirement was matched.
type RequirementPresence string

const (
	PresenceAll     RequirementPresence = "all"
	PresenceWith    RequirementPresence = "with-requirement"
	PresenceWithout RequirementPresence = "without-requirement"
)

// ParsePresence converts a raw string to a RequirementPresence. The empty
// string means "all".
func ParsePresence(s string) (RequirementPresence, error) {
	switch p := RequirementPresence(s); p {
	case "", PresenceAll:
		return PresenceAll, nil
	case PresenceWith, PresenceWithout:
		return p, nil
	}
	return "", fmt.Errorf("unknown requirement presence %q", s)
}

// Criteria is one set of live filter inputs. Zero values leave the
// corresponding dimension unfiltered.
type Criteria struct {
	RequirementPresence RequirementPresence
	SearchTerm          string
	LocationTerm        string
	ProfessionTerm      string
}

// Filter narrows views per the criteria: a logical AND across the four
// dimensions, each dimension an OR across its candidate fields,
// case-insensitive substring matching throughout. The aggregator's ordering
// is preserved; the input is never mutated. Deterministic for fixed inputs.
func Filter(views []CombinedView, c Criteria) []CombinedView {
	out := make([]CombinedView, 0, len(views))
	for _, v := range views {
		if !matchesPresence(v, c.RequirementPresence) {
			continue
		}
		if !matchesSearch(v, c.SearchTerm) {
			continue
		}
		if !matchesLocation(v, c.LocationTerm) {
			continue
		}
		if !matchesProfession(v, c.ProfessionTerm) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func matchesPresence(v CombinedView, p RequirementPresence) bool {
	switch p {
	case PresenceWith:
		return v.HasRequirement
	case PresenceWithout:
		return !v.HasRequirement
	}
	return true
}

// matchesSearch checks the free-text term against name, profession, every
// job-category entry, the description, every skill entry, and the
// requirement's desired title and additional info.
func matchesSearch(v CombinedView, term string) bool {
	if term == "" {
		return true
	}
	prof := &v.Professional
	fields := []string{
		Name(prof),
		Profession(prof),
		stringField(v.Professional, "description"),
	}
	fields = append(fields, listStrings(v.Professional, "selectedJobs")...)
	fields = append(fields, listStrings(v.Professional, "skills")...)
	if v.Requirement != nil {
		fields = append(fields,
			stringField(*v.Requirement, "jobTitle"),
			stringField(*v.Requirement, "additionalInfo"),
		)
	}
	return anyContains(fields, term)
}

// matchesLocation checks city, locality, and the requirement's preferred
// location.
func matchesLocation(v CombinedView, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{
		City(&v.Professional),
		stringField(v.Professional, "locality"),
	}
	if v.Requirement != nil {
		fields = append(fields, stringField(*v.Requirement, "preferredLocation"))
	}
	return anyContains(fields, term)
}

// matchesProfession checks the normalized profession, every job-category
// entry, and the requirement's desired title.
func matchesProfession(v CombinedView, term string) bool {
	if term == "" {
		return true
	}
	fields := []string{Profession(&v.Professional)}
	fields = append(fields, listStrings(v.Professional, "selectedJobs")...)
	if v.Requirement != nil {
		fields = append(fields, stringField(*v.Requirement, "jobTitle"))
	}
	return anyContains(fields, term)
}

func anyContains(fields []string, term string) bool {
	needle := strings.ToLower(term)
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func listStrings(rec store.RawRecord, key string) []string {
	list := listField(rec, key)
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
