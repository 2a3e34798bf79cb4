package seeker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"nammakarya/marketplace-service/internal/web"
)

// Handler exposes the seeker browse view and the two profile forms.
//
// All routes expect an x-user-id header forwarded by the Gateway (the browse
// route is public and does not).
//
// Routes:
//
//	GET  /seekers              → filtered combined view (query: search,
//	                             location, profession, requirement, cached)
//	POST /seekers/professional → submit professional-details form
//	POST /seekers/requirement  → submit seeker-requirement form
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all seeker routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/seekers", h.handleSeekers)
	mux.HandleFunc("/seekers/", h.handleSeekerForm)
}

// handleSeekers handles GET /seekers
func (h *Handler) handleSeekers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.browse(w, r)
}

// handleSeekerForm handles POST /seekers/professional|requirement
func (h *Handler) handleSeekerForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		web.JSONError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch parts[1] {
	case "professional":
		h.submit(w, r, h.svc.SubmitProfessional)
	case "requirement":
		h.submit(w, r, h.svc.SubmitRequirement)
	default:
		web.JSONError(w, fmt.Sprintf("unknown form %q", parts[1]), http.StatusNotFound)
	}
}

// browseResponse is the JSON shape returned to the Gateway / web clients.
// Warnings carry partial-load messages; a half-failed load still returns
// whatever did load.
type browseResponse struct {
	Seekers  []CombinedView `json:"seekers"`
	Warnings []string       `json:"warnings,omitempty"`
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	presence, err := ParsePresence(q.Get("requirement"))
	if err != nil {
		web.JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// cached=true serves the cron-refreshed view without hitting the store;
	// a cold cache falls through to a live load.
	var (
		views    []CombinedView
		warnings []string
	)
	if q.Get("cached") == "true" {
		views, err = h.svc.CachedView(r.Context())
	}
	if q.Get("cached") != "true" || err != nil {
		views, warnings = h.svc.Load(r.Context())
	}

	filtered := Filter(views, Criteria{
		RequirementPresence: presence,
		SearchTerm:          q.Get("search"),
		LocationTerm:        q.Get("location"),
		ProfessionTerm:      q.Get("profession"),
	})

	web.JSONOK(w, browseResponse{Seekers: filtered, Warnings: warnings})
}

type submitFunc func(ctx context.Context, userID string, fields map[string]any) (string, error)

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, save submitFunc) {
	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		web.JSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	id, err := save(r.Context(), userID, fields)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			web.JSONError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		log.Printf("[seeker] form submit error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}

	web.JSON(w, http.StatusCreated, map[string]string{"id": id})
}
