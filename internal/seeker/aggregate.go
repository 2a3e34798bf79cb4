package seeker

import (
	"sort"

	"nammakarya/marketplace-service/internal/store"
)

// CombinedView joins one professional document with the zero-or-one
// requirement document sharing its identity. It is derived on every load and
// never persisted.
type CombinedView struct {
	Identity       string           `json:"identity"`
	Professional   store.RawRecord  `json:"professional"`
	Requirement    *store.RawRecord `json:"requirement,omitempty"`
	HasRequirement bool             `json:"hasRequirement"`
}

// Aggregate produces one CombinedView per professional record, attaching the
// requirement record whose resolved identity matches. Requirement records
// matching no professional are dropped. The output is ordered by the
// professional's creation time, newest first; records without a creation time
// sort to the end. Pure: neither input is mutated.
//
// When several requirement records resolve to the same identity, the one with
// the latest creation time wins; equal or missing timestamps fall back to the
// later-iterated record.
func Aggregate(professionals, requirements []store.RawRecord) []CombinedView {
	byIdentity := make(map[string]store.RawRecord, len(requirements))
	for _, req := range requirements {
		id := ResolveIdentity(req, KindRequirement)
		if prev, ok := byIdentity[id]; ok && CreationSeconds(prev) > CreationSeconds(req) {
			continue
		}
		byIdentity[id] = req
	}

	views := make([]CombinedView, 0, len(professionals))
	for _, prof := range professionals {
		id := ResolveIdentity(prof, KindProfessional)
		view := CombinedView{
			Identity:     id,
			Professional: prof,
		}
		if req, ok := byIdentity[id]; ok {
			view.Requirement = &req
			view.HasRequirement = true
		}
		views = append(views, view)
	}

	// Stable so ties preserve store order deterministically.
	sort.SliceStable(views, func(i, j int) bool {
		return CreationSeconds(views[i].Professional) > CreationSeconds(views[j].Professional)
	})

	return views
}
