package notify

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"nammakarya/marketplace-service/internal/web"
)

// Handler implements the HTTP surface for notifications.
//
// All routes expect an x-user-id header forwarded by the Gateway.
//
// Routes:
//
//	GET  /notifications            → list (query: unread=true)
//	POST /notifications/{id}/read  → mark one notification read
type Handler struct {
	notifier *Notifier
}

// NewHandler returns a configured Handler.
func NewHandler(notifier *Notifier) *Handler {
	return &Handler{notifier: notifier}
}

// RegisterRoutes mounts all notification routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/notifications", h.handleNotifications)
	mux.HandleFunc("/notifications/", h.handleNotificationAction)
}

// handleNotifications handles GET /notifications
func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	list, err := h.notifier.List(r.Context(), userID, r.URL.Query().Get("unread") == "true")
	if err != nil {
		log.Printf("[notify] list error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}
	web.JSONOK(w, list)
}

// handleNotificationAction handles POST /notifications/{id}/read
func (h *Handler) handleNotificationAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[2] != "read" {
		web.JSONError(w, fmt.Sprintf("unknown action on %q", r.URL.Path), http.StatusNotFound)
		return
	}

	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	if err := h.notifier.MarkRead(r.Context(), userID, parts[1]); err != nil {
		if errors.Is(err, ErrNotFound) {
			web.JSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("[notify] markRead error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}
	web.JSONOK(w, map[string]bool{"read": true})
}
