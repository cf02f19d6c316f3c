package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Helper functions for responding

// encodeBuffers holds scratch buffers for response encoding
var encodeBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

// respondJSON encodes payload before writing any headers, so an encoding
// failure can still become a 500
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped user-facing error
func respondServiceError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(logMsg, "error", err)
	} else {
		log.Warn(logMsg, "error", err)
	}
	respondError(w, statusCode, userMsg)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFoundErr = "Resource not found."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	// Submission messages
	ErrMsgTooManySpinsError    = "Too many spins in one batch"
	ErrMsgEmptyBatchError      = "Every spin needs at least one bet"
	ErrMsgIllegalBetError      = "Illegal bet"
	ErrMsgStakeMismatchError   = "Deposit does not match the sum of the bets"
	ErrMsgInvalidAmountError   = "Invalid amount"
	ErrMsgInvalidBettorError   = "Invalid bettor account"
	ErrMsgInvalidBudgetError   = "Invalid callback budget"
	ErrMsgUnknownAssetError    = "Unknown payout asset"
	ErrMsgInvalidTransferError = "Transfer message is not a spin batch"

	// Settlement messages
	ErrMsgSettlementNotFoundError = "Settlement not found"
	ErrMsgLedgerError             = "House ledger cannot accept this settlement"

	// Payment messages
	ErrMsgTokenNotSupportedError = "Token not supported"
	ErrMsgInsufficientFundsError = "Insufficient funds"
	ErrMsgPaymentFailedError     = "Payout could not be delivered"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrTooManySpins):
		return http.StatusBadRequest, ErrMsgTooManySpinsError
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest, ErrMsgEmptyBatchError
	case errors.Is(err, domain.ErrIllegalBet):
		return http.StatusBadRequest, ErrMsgIllegalBetError
	case errors.Is(err, domain.ErrStakeMismatch):
		return http.StatusBadRequest, ErrMsgStakeMismatchError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidBettor):
		return http.StatusBadRequest, ErrMsgInvalidBettorError
	case errors.Is(err, domain.ErrInvalidBudget):
		return http.StatusBadRequest, ErrMsgInvalidBudgetError
	case errors.Is(err, domain.ErrUnknownAsset):
		return http.StatusBadRequest, ErrMsgUnknownAssetError
	case errors.Is(err, domain.ErrInvalidTransferMsg):
		return http.StatusBadRequest, ErrMsgInvalidTransferError
	case errors.Is(err, domain.ErrTokenNotSupported):
		return http.StatusBadRequest, ErrMsgTokenNotSupportedError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgInsufficientFundsError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrSettlementNotFound):
		return http.StatusNotFound, ErrMsgSettlementNotFoundError
	case errors.Is(err, domain.ErrRequestRefused),
		errors.Is(err, domain.ErrOracleQueueFull),
		errors.Is(err, domain.ErrOracleStopped):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case domain.IsLedgerFatal(err):
		return http.StatusInternalServerError, ErrMsgLedgerError
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusInternalServerError, ErrMsgPaymentFailedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
