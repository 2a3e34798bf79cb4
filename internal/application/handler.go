package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"nammakarya/marketplace-service/internal/web"
)

// Handler implements the HTTP surface for applications.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET  /applications                      → seeker's applications
//	                                          (query: status, listing)
//	POST /applications                      → apply to a listing
//	POST /applications/{id}/move            → transition status
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts all application routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/applications", h.handleApplications)
	mux.HandleFunc("/applications/", h.handleApplicationAction)
}

// handleApplications handles GET/POST /applications
func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.apply(w, r)
	default:
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleApplicationAction handles POST /applications/{id}/move
func (h *Handler) handleApplicationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		web.JSONError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch parts[2] {
	case "move":
		h.move(w, r, parts[1])
	default:
		web.JSONError(w, fmt.Sprintf("unknown action %q", parts[2]), http.StatusNotFound)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	// listing=<id> lists a hirer's incoming applications for that listing;
	// otherwise the caller's own applications are returned.
	if listingID := r.URL.Query().Get("listing"); listingID != "" {
		apps, err := h.svc.ListForListing(r.Context(), userID, listingID)
		if err != nil {
			log.Printf("[application] listForListing error: %v", err)
			web.JSONError(w, "database error", http.StatusInternalServerError)
			return
		}
		web.JSONOK(w, apps)
		return
	}

	apps, err := h.svc.ListForSeeker(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			web.JSONError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		log.Printf("[application] listForSeeker error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}
	web.JSONOK(w, apps)
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request) {
	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	var body struct {
		ListingID string `json:"listingId"`
		Pitch     string `json:"pitch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ListingID == "" {
		web.JSONError(w, "body must contain listingId", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Apply(r.Context(), userID, body.ListingID, body.Pitch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, app)
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request, appID string) {
	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	var body struct {
		NewStatus string `json:"newStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.NewStatus == "" {
		web.JSONError(w, "body must contain newStatus", http.StatusBadRequest)
		return
	}

	app, err := h.svc.Move(r.Context(), userID, appID, body.NewStatus)
	if err != nil {
		h.writeError(w, err)
		return
	}
	web.JSONOK(w, app)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		web.JSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		web.JSONError(w, ve.Msg, http.StatusBadRequest)
		return
	}
	log.Printf("[application] error: %v", err)
	web.JSONError(w, "database error", http.StatusInternalServerError)
}
