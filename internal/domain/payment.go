package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferRecord is one outgoing payment, native or token.
type TransferRecord struct {
	ID        uuid.UUID   `json:"id"`
	Asset     PayoutAsset `json:"asset"`
	Recipient string      `json:"recipient"`
	Amount    Amount      `json:"amount"`
	CreatedAt time.Time   `json:"created_at"`
}

// TokenBalance is an account's balance of one token.
type TokenBalance struct {
	TokenID string `json:"token_id"`
	Account string `json:"account"`
	Balance Amount `json:"balance"`
}
