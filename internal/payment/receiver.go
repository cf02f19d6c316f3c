package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
	"github.com/osse101/RouletteHouse_Go/internal/settlement"
)

// Spinner is the part of the settlement service a token transfer can reach
type Spinner interface {
	Spin(ctx context.Context, req settlement.SpinRequest) (*domain.PendingSettlement, error)
}

// SpinMessage is the transfer message that turns a token transfer into a
// spin. A bare JSON array is read as the batch with the default budget.
type SpinMessage struct {
	Batch          domain.SpinBatch `json:"batch"`
	CallbackBudget uint8            `json:"callback_budget,omitempty"`
}

// Receipt describes what happened to an incoming token transfer
type Receipt struct {
	Residual   domain.Amount             `json:"residual"`
	Deposited  bool                      `json:"deposited"`
	Settlement *domain.PendingSettlement `json:"settlement,omitempty"`
}

// TokenReceiver handles tokens sent to the house
type TokenReceiver struct {
	payments Service
	spinner  Spinner
}

// NewTokenReceiver creates a receiver that deposits plain transfers and
// forwards transfers carrying a batch to spinner
func NewTokenReceiver(payments Service, spinner Spinner) *TokenReceiver {
	return &TokenReceiver{payments: payments, spinner: spinner}
}

// OnReceive accepts amount of tokenID from sender. The returned residual is
// the part of amount the sender gets back.
func (r *TokenReceiver) OnReceive(ctx context.Context, tokenID, sender string, amount domain.Amount, msg string) (domain.Amount, error) {
	receipt, err := r.Receive(ctx, tokenID, sender, amount, msg)
	return receipt.Residual, err
}

// Receive is OnReceive with the full receipt
func (r *TokenReceiver) Receive(ctx context.Context, tokenID, sender string, amount domain.Amount, msg string) (Receipt, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOnReceiveCalled, "token_id", tokenID, "sender", sender, "amount", amount, "has_msg", msg != "")

	refund := Receipt{Residual: amount}
	if !r.payments.SupportsToken(tokenID) {
		log.Warn(LogMsgTokenNotSupported, "token_id", tokenID, "sender", sender)
		return refund, fmt.Errorf("%w: %s", domain.ErrTokenNotSupported, tokenID)
	}

	if len(bytes.TrimSpace([]byte(msg))) == 0 {
		if err := r.payments.Deposit(ctx, tokenID, sender, amount); err != nil {
			return refund, err
		}
		return Receipt{Deposited: true}, nil
	}

	spinMsg, err := ParseSpinMessage(msg)
	if err != nil {
		return refund, err
	}

	pending, err := r.spinner.Spin(ctx, settlement.SpinRequest{
		Bettor:         sender,
		Batch:          spinMsg.Batch,
		Asset:          domain.TokenAsset(tokenID),
		Stake:          amount,
		CallbackBudget: spinMsg.CallbackBudget,
	})
	if err != nil {
		log.Warn(LogMsgSpinRejected, "token_id", tokenID, "sender", sender, "error", err)
		return refund, fmt.Errorf("%s: %w", ErrContextSpinRejected, err)
	}

	log.Info(LogMsgSpinForwarded, "settlement_id", pending.ID, "sender", sender)
	return Receipt{Settlement: pending}, nil
}

// ParseSpinMessage decodes a transfer message into a spin request
func ParseSpinMessage(msg string) (SpinMessage, error) {
	data := bytes.TrimSpace([]byte(msg))

	var out SpinMessage
	var err error
	if len(data) > 0 && data[0] == '[' {
		err = json.Unmarshal(data, &out.Batch)
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&out)
	}
	if err != nil {
		return SpinMessage{}, fmt.Errorf("%w: %v", domain.ErrInvalidTransferMsg, err)
	}
	if out.Batch == nil {
		return SpinMessage{}, fmt.Errorf("%w: missing batch", domain.ErrInvalidTransferMsg)
	}
	return out, nil
}
