package listing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"nammakarya/marketplace-service/internal/web"
)

// Handler implements the HTTP surface for job listings.
//
// Routes:
//
//	GET  /listings               → browse (query: category, location, all)
//	POST /listings               → create a listing (hirer)
//	GET  /listings/{id}          → fetch one listing
//	POST /listings/{id}/close    → close a listing (owner only)
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all listing routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/listings", h.handleListings)
	mux.HandleFunc("/listings/", h.handleListingAction)
}

// handleListings handles GET/POST /listings
func (h *Handler) handleListings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.browse(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleListingAction handles GET /listings/{id} and POST /listings/{id}/close
func (h *Handler) handleListingAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case len(parts) == 2 && r.Method == http.MethodGet:
		h.get(w, r, parts[1])
	case len(parts) == 3 && r.Method == http.MethodPost && parts[2] == "close":
		h.close(w, r, parts[1])
	case len(parts) == 3:
		web.JSONError(w, fmt.Sprintf("unknown action %q", parts[2]), http.StatusNotFound)
	default:
		web.JSONError(w, "invalid path", http.StatusNotFound)
	}
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, err := h.svc.Browse(r.Context(), BrowseFilters{
		Category:     q.Get("category"),
		LocationTerm: q.Get("location"),
		IncludeAll:   q.Get("all") == "true",
	})
	if err != nil {
		log.Printf("[listing] browse error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}
	web.JSONOK(w, listings)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	hirerID := web.UserID(w, r)
	if hirerID == "" {
		return
	}

	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		web.JSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	l, err := h.svc.Create(r.Context(), hirerID, in)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			web.JSONError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		log.Printf("[listing] create error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}
	web.JSON(w, http.StatusCreated, l)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, listingID string) {
	l, err := h.svc.Get(r.Context(), listingID)
	if err != nil {
		web.JSONError(w, "listing not found", http.StatusNotFound)
		return
	}
	web.JSONOK(w, l)
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request, listingID string) {
	hirerID := web.UserID(w, r)
	if hirerID == "" {
		return
	}

	l, err := h.svc.Close(r.Context(), hirerID, listingID)
	if err != nil {
		web.JSONError(w, "listing not found", http.StatusNotFound)
		return
	}
	web.JSONOK(w, l)
}
