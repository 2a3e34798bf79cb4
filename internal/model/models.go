// Package model defines shared data structures for the marketplace service.
package model

import (
	"encoding/json"
	"time"
)

// JobListing is a hirer's posted job. Stored in job_listings; browsed and
// filtered by seekers.
type JobListing struct {
	ID          string    `json:"id"`
	HirerID     string    `json:"hirerId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	Locality    string    `json:"locality,omitempty"`
	WageMin     *int      `json:"wageMin,omitempty"`
	WageMax     *int      `json:"wageMax,omitempty"`
	Openings    int       `json:"openings"`
	Status      string    `json:"status"` // OPEN | CLOSED
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Application is a seeker's application to a listing, with its Kanban-style
// status and an append-only history log (JSONB).
type Application struct {
	ID         string          `json:"id"`
	ListingID  string          `json:"listingId"`
	SeekerID   string          `json:"seekerId"`
	Status     string          `json:"status"`
	Pitch      *string         `json:"pitch,omitempty"`
	HistoryLog json.RawMessage `json:"historyLog"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Notification is a single user-facing notification row. Payload carries the
// event-specific fields as raw JSON.
type Notification struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Read      bool            `json:"read"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PaymentOrder tracks one UPI checkout intent against the hosted provider.
type PaymentOrder struct {
	ID              string    `json:"id"`
	ProviderOrderID string    `json:"providerOrderId"`
	PayerID         string    `json:"payerId"`
	PayeeID         string    `json:"payeeId"`
	AmountPaise     int64     `json:"amountPaise"`
	PayeeVPA        string    `json:"payeeVpa,omitempty"`
	Status          string    `json:"status"` // CREATED | PAID | FAILED | EXPIRED
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
