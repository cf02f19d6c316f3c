package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
)

type RouletteHandler struct {
	service  settlement.Service
	decimals int32
}

func NewRouletteHandler(service settlement.Service, decimals int32) *RouletteHandler {
	return &RouletteHandler{
		service:  service,
		decimals: decimals,
	}
}

// SpinRequest is a batch submitted with the stake already deposited
type SpinRequest struct {
	Bettor         string              `json:"bettor" validate:"required,account_id"`
	Batch          domain.SpinBatch    `json:"batch" validate:"required,min=1,dive,min=1"`
	Asset          *domain.PayoutAsset `json:"asset,omitempty"`
	Stake          domain.Amount       `json:"stake" swaggertype:"string" example:"20"`
	CallbackBudget uint8               `json:"callback_budget,omitempty"`
}

type SpinResponse struct {
	Message      string                 `json:"message"`
	SettlementID uuid.UUID              `json:"settlement_id"`
	State        domain.SettlementState `json:"state"`
	CreatedAt    time.Time              `json:"created_at"`
}

// StatsResponse is the house ledger with the balance scaled for display
type StatsResponse struct {
	domain.LedgerStats
	HouseBalanceDisplay string `json:"house_balance_display"`
	PayoutTotalDisplay  string `json:"payout_total_display"`
}

// HandleSpin submits a batch for settlement
// @Summary Submit a spin batch
// @Description Escrows the stake and requests randomness. The result is fetched from the settlement endpoint.
// @Tags roulette
// @Accept json
// @Produce json
// @Param request body SpinRequest true "Spin batch"
// @Success 202 {object} SpinResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/roulette/spin [post]
func (h *RouletteHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spin"); err != nil {
		return
	}

	asset := domain.NativeAsset()
	if req.Asset != nil {
		asset = *req.Asset
	}

	pending, err := h.service.Spin(r.Context(), settlement.SpinRequest{
		Bettor:         req.Bettor,
		Batch:          req.Batch,
		Asset:          asset,
		Stake:          req.Stake,
		CallbackBudget: req.CallbackBudget,
	})
	if err != nil {
		respondServiceError(w, r, LogMsgSpinFailed, err)
		return
	}

	respondJSON(w, http.StatusAccepted, SpinResponse{
		Message:      MsgSpinAccepted,
		SettlementID: pending.ID,
		State:        pending.State,
		CreatedAt:    pending.CreatedAt,
	})
}

// HandleGetSettlement returns a pending or resolved settlement
// @Summary Get settlement
// @Tags roulette
// @Produce json
// @Param id path string true "Settlement ID"
// @Success 200 {object} domain.SettlementResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/roulette/settlements/{id} [get]
func (h *RouletteHandler) HandleGetSettlement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, URLParamSettlementID))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSettlementID)
		return
	}

	result, err := h.service.GetSettlement(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, LogMsgGetSettlementFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleStats returns the house ledger counters
// @Summary House ledger stats
// @Description Returns spins_total, bets_total, house_balance and payout_total.
// @Tags roulette
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 500 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/roulette/stats [get]
func (h *RouletteHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, r, LogMsgGetStatsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, StatsResponse{
		LedgerStats:         stats,
		HouseBalanceDisplay: stats.HouseBalance.Decimal(h.decimals).String(),
		PayoutTotalDisplay:  stats.PayoutTotal.Decimal(h.decimals).String(),
	})
}
