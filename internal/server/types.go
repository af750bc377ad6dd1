package server

import (
	"github.com/rezonia/facturx-engine/internal/model"
)

// SerializeRequest is the request body for the serialize and generate
// endpoints
type SerializeRequest struct {
	Invoice model.Invoice `json:"invoice" binding:"required"`
	Seller  model.Party   `json:"seller" binding:"required"`
	Buyer   model.Party   `json:"buyer" binding:"required"`
}

// SerializeResponse is the response for the serialize endpoint
type SerializeResponse struct {
	Payload  string   `json:"payload"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}
