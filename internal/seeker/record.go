// Package seeker contains the pure business logic for the seeker browse view:
// legacy field normalization, the profile/requirement match aggregation, and
// the in-memory filter pipeline.
//
// It is transport-agnostic: used by the HTTP handler (handler.go) and the
// cron refresher (scheduler package).
package seeker

import (
	"strconv"
	"strings"

	"nammakarya/marketplace-service/internal/store"
)

// Sentinels returned by the accessors when no candidate field is populated.
const (
	UnknownName  = "Unknown"
	NotSpecified = "Not specified"
)

// RecordKind selects the identity fallback chain for ResolveIdentity.
type RecordKind int

const (
	// KindProfessional — seeker availability documents (professional_details).
	KindProfessional RecordKind = iota
	// KindRequirement — seeker requirement documents (seeker_requirements).
	KindRequirement
)

// ResolveIdentity returns the join key for a record.
//
// Professionals: createdBy, else the record's own id.
// Requirements:  createdBy, else userId, else the record's own id.
func ResolveIdentity(rec store.RawRecord, kind RecordKind) string {
	if v := stringField(rec, "createdBy"); v != "" {
		return v
	}
	if kind == KindRequirement {
		if v := stringField(rec, "userId"); v != "" {
			return v
		}
	}
	return rec.ID
}

// ─── Canonical accessors ─────────────────────────────────────────────────────
//
// Documents were written by several generations of the profile forms, so the
// same concept may live under different field names. Each accessor tries its
// candidates in a fixed priority order and returns the first non-empty value;
// none of them ever panic, and all accept a nil record.

// Name returns the display name: "name", else the creator id, else "Unknown".
func Name(rec *store.RawRecord) string {
	if rec == nil {
		return UnknownName
	}
	if v := stringField(*rec, "name"); v != "" {
		return v
	}
	if v := stringField(*rec, "createdBy"); v != "" {
		return v
	}
	return UnknownName
}

// Profession returns "profession", else the joined "selectedJobs" list,
// else "Not specified".
func Profession(rec *store.RawRecord) string {
	if rec == nil {
		return NotSpecified
	}
	if v := stringField(*rec, "profession"); v != "" {
		return v
	}
	if v := joinList(listField(*rec, "selectedJobs")); v != "" {
		return v
	}
	return NotSpecified
}

// City returns "city", else the legacy "cityTown", else "Not specified".
func City(rec *store.RawRecord) string {
	if rec == nil {
		return NotSpecified
	}
	if v := stringField(*rec, "city"); v != "" {
		return v
	}
	if v := stringField(*rec, "cityTown"); v != "" {
		return v
	}
	return NotSpecified
}

// JobShift returns "jobShift", else the legacy "shift", else "Not specified".
func JobShift(rec *store.RawRecord) string {
	if rec == nil {
		return NotSpecified
	}
	if v := stringField(*rec, "jobShift"); v != "" {
		return v
	}
	if v := stringField(*rec, "shift"); v != "" {
		return v
	}
	return NotSpecified
}

// Experience joins a list-typed "experience" with ", ", passes a scalar
// through unchanged, and falls back to "Not specified". Works on either
// record kind.
func Experience(rec *store.RawRecord) string {
	if rec == nil {
		return NotSpecified
	}
	raw, ok := (*rec).Fields["experience"]
	if !ok || raw == nil {
		return NotSpecified
	}
	switch v := raw.(type) {
	case []any:
		if joined := joinList(v); joined != "" {
			return joined
		}
	case string:
		if v != "" {
			return v
		}
	default:
		if s := coerceString(raw); s != "" {
			return s
		}
	}
	return NotSpecified
}

// IncomeRange is the normalized expected-income interval.
type IncomeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Income returns the nested "incomeRange" {min,max} object when present, else
// the two legacy scalars "minIncome"/"maxIncome" (both required), else nil.
// Absence is nil, not a sentinel string.
func Income(rec *store.RawRecord) *IncomeRange {
	if rec == nil {
		return nil
	}
	if nested, ok := (*rec).Fields["incomeRange"].(map[string]any); ok {
		min, okMin := coerceNumber(nested["min"])
		max, okMax := coerceNumber(nested["max"])
		if okMin && okMax {
			return &IncomeRange{Min: min, Max: max}
		}
	}
	min, okMin := coerceNumber((*rec).Fields["minIncome"])
	max, okMax := coerceNumber((*rec).Fields["maxIncome"])
	if okMin && okMax {
		return &IncomeRange{Min: min, Max: max}
	}
	return nil
}

// CreationSeconds returns the record's numeric creation time
// (seconds-since-epoch), tolerating both the nested {"seconds": n} timestamp
// shape and a plain number. Missing or unreadable values yield 0.
func CreationSeconds(rec store.RawRecord) float64 {
	raw, ok := rec.Fields["createdAt"]
	if !ok || raw == nil {
		return 0
	}
	if nested, ok := raw.(map[string]any); ok {
		if n, ok := coerceNumber(nested["seconds"]); ok {
			return n
		}
		return 0
	}
	if n, ok := coerceNumber(raw); ok {
		return n
	}
	return 0
}

// ─── Field helpers ───────────────────────────────────────────────────────────

// stringField returns the field as a non-empty string, or "".
func stringField(rec store.RawRecord, key string) string {
	v, ok := rec.Fields[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// listField returns the field as a list, or nil.
func listField(rec store.RawRecord, key string) []any {
	l, _ := rec.Fields[key].([]any)
	return l
}

// joinList joins the non-empty string entries of a list with ", ".
func joinList(list []any) string {
	if len(list) == 0 {
		return ""
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if s := coerceString(item); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// coerceString renders a scalar field value as a string ("" when it isn't one).
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// coerceNumber reads a numeric field that may arrive as a JSON number or a
// numeric string.
func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		if t == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
