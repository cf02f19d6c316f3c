package handler

import (
	"context"
	"net/http"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/payment"
)

// Receiver accepts tokens sent to the house
type Receiver interface {
	Receive(ctx context.Context, tokenID, sender string, amount domain.Amount, msg string) (payment.Receipt, error)
}

type TokenHandler struct {
	receiver Receiver
	payments payment.Service
}

func NewTokenHandler(receiver Receiver, payments payment.Service) *TokenHandler {
	return &TokenHandler{
		receiver: receiver,
		payments: payments,
	}
}

// OnReceiveRequest is a token transfer notification
type OnReceiveRequest struct {
	TokenID  string        `json:"token_id" validate:"required,account_id"`
	SenderID string        `json:"sender_id" validate:"required,account_id"`
	Amount   domain.Amount `json:"amount" swaggertype:"string" example:"20"`
	Msg      string        `json:"msg"`
}

// OnReceiveResponse reports how much of the transfer must be returned to the sender
type OnReceiveResponse struct {
	payment.Receipt
	Error string `json:"error,omitempty"`
}

type BalanceResponse struct {
	TokenID string        `json:"token_id"`
	Account string        `json:"account"`
	Balance domain.Amount `json:"balance" swaggertype:"string"`
}

// HandleOnReceive processes tokens sent to the house
// @Summary Token transfer notification
// @Description An empty msg deposits the tokens. A msg holding a spin batch submits it with the tokens as stake. The residual is the amount to refund.
// @Tags token
// @Accept json
// @Produce json
// @Param request body OnReceiveRequest true "Transfer"
// @Success 200 {object} OnReceiveResponse
// @Failure 400 {object} OnReceiveResponse
// @Security ApiKeyAuth
// @Router /api/v1/token/on-receive [post]
func (h *TokenHandler) HandleOnReceive(w http.ResponseWriter, r *http.Request) {
	var req OnReceiveRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Token receive"); err != nil {
		return
	}

	receipt, err := h.receiver.Receive(r.Context(), req.TokenID, req.SenderID, req.Amount, req.Msg)
	if err != nil {
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		logger.FromContext(r.Context()).Warn(LogMsgOnReceiveFailed, "error", err, "residual", receipt.Residual)
		respondJSON(w, statusCode, OnReceiveResponse{Receipt: receipt, Error: userMsg})
		return
	}

	respondJSON(w, http.StatusOK, OnReceiveResponse{Receipt: receipt})
}

// HandleBalance returns an account's token balance
// @Summary Token balance
// @Tags token
// @Produce json
// @Param token_id query string true "Token ID"
// @Param account query string true "Account ID"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/token/balance [get]
func (h *TokenHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := GetQueryParam(r, w, QueryParamTokenID)
	if !ok {
		return
	}
	account, ok := GetQueryParam(r, w, QueryParamAccount)
	if !ok {
		return
	}

	balance, err := h.payments.Balance(r.Context(), tokenID, account)
	if err != nil {
		respondServiceError(w, r, LogMsgGetBalanceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{TokenID: tokenID, Account: account, Balance: balance})
}

// HandleListTransfers returns the payouts made to a recipient, newest first
// @Summary Payout history
// @Tags token
// @Produce json
// @Param recipient query string true "Recipient account"
// @Param limit query int false "Max records (default 50)"
// @Success 200 {array} domain.TransferRecord
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/payments/transfers [get]
func (h *TokenHandler) HandleListTransfers(w http.ResponseWriter, r *http.Request) {
	recipient, ok := GetQueryParam(r, w, QueryParamRecipient)
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w, payment.DefaultTransferListLimit, MaxTransferListLimit)
	if !ok {
		return
	}

	records, err := h.payments.ListTransfers(r.Context(), recipient, limit)
	if err != nil {
		respondServiceError(w, r, LogMsgListTransfersFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}
