package payment

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"nammakarya/marketplace-service/internal/web"
)

// SignatureHeader carries the provider's hex HMAC-SHA256 of the webhook body.
const SignatureHeader = "X-Provider-Signature"

// Handler implements the HTTP surface for payments.
//
// Routes:
//
//	POST /payments          → create a checkout intent (x-user-id required)
//	GET  /payments/{id}     → order status for either party
//	POST /payments/webhook  → provider webhook relay (signature-verified)
type Handler struct {
	svc           *Service
	webhookSecret string
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service, webhookSecret string) *Handler {
	return &Handler{svc: svc, webhookSecret: webhookSecret}
}

// RegisterRoutes mounts all payment routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/payments", h.handlePayments)
	mux.HandleFunc("/payments/", h.handlePaymentAction)
}

// handlePayments handles POST /payments
func (h *Handler) handlePayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.initiate(w, r)
}

// handlePaymentAction handles GET /payments/{id} and POST /payments/webhook
func (h *Handler) handlePaymentAction(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		web.JSONError(w, "invalid path", http.StatusNotFound)
		return
	}

	switch {
	case parts[1] == "webhook" && r.Method == http.MethodPost:
		h.webhook(w, r)
	case r.Method == http.MethodGet:
		h.get(w, r, parts[1])
	default:
		web.JSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) initiate(w http.ResponseWriter, r *http.Request) {
	payerID := web.UserID(w, r)
	if payerID == "" {
		return
	}

	var in InitiateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		web.JSONError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	order, err := h.svc.Initiate(r.Context(), payerID, in)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			web.JSONError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrProviderDisabled) {
			web.JSONError(w, "payments are not configured", http.StatusServiceUnavailable)
			return
		}
		log.Printf("[payment] initiate error: %v", err)
		web.JSONError(w, "payment provider error", http.StatusBadGateway)
		return
	}
	web.JSON(w, http.StatusCreated, order)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, orderID string) {
	userID := web.UserID(w, r)
	if userID == "" {
		return
	}

	order, err := h.svc.Get(r.Context(), userID, orderID)
	if err != nil {
		web.JSONError(w, "payment order not found", http.StatusNotFound)
		return
	}
	web.JSONOK(w, order)
}

// webhookEvent mirrors the provider's webhook envelope.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		OrderID string `json:"order_id"`
	} `json:"payload"`
}

func (h *Handler) webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		web.JSONError(w, "cannot read body", http.StatusBadRequest)
		return
	}

	if !VerifySignature(body, r.Header.Get(SignatureHeader), h.webhookSecret) {
		web.JSONError(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil || event.Payload.OrderID == "" {
		web.JSONError(w, "invalid webhook body", http.StatusBadRequest)
		return
	}

	if err := h.svc.Settle(r.Context(), event.Payload.OrderID, event.Event); err != nil {
		log.Printf("[payment] settle error: %v", err)
		web.JSONError(w, "database error", http.StatusInternalServerError)
		return
	}

	web.JSONOK(w, map[string]bool{"received": true})
}
