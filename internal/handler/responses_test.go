package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{domain.ErrTooManySpins, http.StatusBadRequest, ErrMsgTooManySpinsError},
		{fmt.Errorf("%w: spin 2", domain.ErrEmptyBatch), http.StatusBadRequest, ErrMsgEmptyBatchError},
		{fmt.Errorf("%w: straight 37", domain.ErrIllegalBet), http.StatusBadRequest, ErrMsgIllegalBetError},
		{domain.ErrStakeMismatch, http.StatusBadRequest, ErrMsgStakeMismatchError},
		{domain.ErrInvalidBettor, http.StatusBadRequest, ErrMsgInvalidBettorError},
		{domain.ErrUnknownAsset, http.StatusBadRequest, ErrMsgUnknownAssetError},
		{domain.ErrInvalidTransferMsg, http.StatusBadRequest, ErrMsgInvalidTransferError},
		{domain.ErrTokenNotSupported, http.StatusBadRequest, ErrMsgTokenNotSupportedError},
		{domain.ErrInvalidInput, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{fmt.Errorf("get: %w", domain.ErrSettlementNotFound), http.StatusNotFound, ErrMsgSettlementNotFoundError},
		{domain.ErrOracleQueueFull, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{fmt.Errorf("settle: %w", domain.ErrHouseEmpty), http.StatusInternalServerError, ErrMsgLedgerError},
		{domain.ErrPayoutOverflow, http.StatusInternalServerError, ErrMsgLedgerError},
		{domain.ErrPaymentFailed, http.StatusInternalServerError, ErrMsgPaymentFailedError},
		{errors.New("pq: relation does not exist"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
